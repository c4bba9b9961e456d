package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedassist/clinic-api/internal/model"
)

func testConfig() Config {
	return DefaultConfig(time.UTC)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func appt(day time.Time, start string, duration int, status model.AppointmentStatus) *model.Appointment {
	a := &model.Appointment{
		DoctorID:        uuid.New(),
		PatientID:       uuid.New(),
		Date:            day,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
	a.ID = uuid.New()
	return a
}

func block(start, end time.Time, reason string) *model.TimeBlock {
	b := &model.TimeBlock{StartsAt: start, EndsAt: end, Reason: reason}
	b.ID = uuid.New()
	return b
}

func availableTimes(slots []Slot) []string {
	var times []string
	for _, s := range slots {
		if s.Available {
			times = append(times, s.Time)
		}
	}
	return times
}

func TestGenerateSlots_EmptyWeekday(t *testing.T) {
	monday := date(2025, time.June, 9)

	slots := GenerateSlots(testConfig(), monday, nil, nil, nil, 0)

	want := []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	assert.Equal(t, want, availableTimes(slots))
	assert.Len(t, slots, 9, "lunch slot must not be emitted")
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Empty(t, s.Reason)
	}
}

func TestGenerateSlots_ActiveTemplate(t *testing.T) {
	monday := date(2025, time.June, 9)
	tmpl := &model.ScheduleTemplate{
		DayOfWeek: int(time.Monday),
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  true,
	}

	slots := GenerateSlots(testConfig(), monday, tmpl, nil, nil, 0)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, availableTimes(slots))
}

func TestGenerateSlots_InactiveTemplateFallsBack(t *testing.T) {
	monday := date(2025, time.June, 9)
	tmpl := &model.ScheduleTemplate{
		DayOfWeek: int(time.Monday),
		StartTime: "09:00",
		EndTime:   "12:00",
		IsActive:  false,
	}

	slots := GenerateSlots(testConfig(), monday, tmpl, nil, nil, 0)

	assert.Len(t, availableTimes(slots), 9, "inactive template must fall back to the default schedule")
}

func TestGenerateSlots_Weekend(t *testing.T) {
	sunday := date(2025, time.June, 8)

	slots := GenerateSlots(testConfig(), sunday, nil, nil, nil, 0)
	assert.Empty(t, slots)
}

func TestGenerateSlots_SaturdayTemplate(t *testing.T) {
	saturday := date(2025, time.June, 14)
	tmpl := &model.ScheduleTemplate{
		DayOfWeek: int(time.Saturday),
		StartTime: "08:00",
		EndTime:   "12:00",
		IsActive:  true,
	}

	slots := GenerateSlots(testConfig(), saturday, tmpl, nil, nil, 0)

	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00"}, availableTimes(slots))
}

func TestGenerateSlots_OccupiedSlot(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:00", 30, model.AppointmentStatusConfirmed),
	}

	slots := GenerateSlots(testConfig(), monday, nil, appts, nil, 0)

	require.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[1].Time)
	assert.False(t, slots[1].Available)
	assert.Equal(t, ReasonOccupied, slots[1].Reason)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[2].Available)
}

func TestGenerateSlots_CancelledAppointmentIgnored(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:00", 60, model.AppointmentStatusCancelled),
	}

	slots := GenerateSlots(testConfig(), monday, nil, appts, nil, 0)

	for _, s := range slots {
		assert.True(t, s.Available, "cancelled appointments must not occupy slots")
	}
}

func TestGenerateSlots_Blocked(t *testing.T) {
	day := date(2025, time.June, 10) // Tuesday
	blocks := []*model.TimeBlock{
		block(day.Add(9*time.Hour), day.Add(10*time.Hour), "staff meeting"),
	}

	slots := GenerateSlots(testConfig(), day, nil, nil, blocks, 0)

	require.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[1].Time)
	assert.False(t, slots[1].Available)
	assert.Equal(t, ReasonBlocked, slots[1].Reason)
}

func TestGenerateSlots_BlockedBeatsOccupied(t *testing.T) {
	day := date(2025, time.June, 10)
	appts := []*model.Appointment{
		appt(day, "09:00", 30, model.AppointmentStatusConfirmed),
	}
	blocks := []*model.TimeBlock{
		block(day.Add(9*time.Hour), day.Add(10*time.Hour), "vacation"),
	}

	slots := GenerateSlots(testConfig(), day, nil, appts, blocks, 0)

	require.Len(t, slots, 9)
	assert.Equal(t, ReasonBlocked, slots[1].Reason)
}

func TestGenerateSlots_MultiDayBlock(t *testing.T) {
	day := date(2025, time.June, 10)
	blocks := []*model.TimeBlock{
		block(date(2025, time.June, 9), date(2025, time.June, 12), "conference"),
	}

	slots := GenerateSlots(testConfig(), day, nil, nil, blocks, 0)

	require.Len(t, slots, 9)
	for _, s := range slots {
		assert.False(t, s.Available)
		assert.Equal(t, ReasonBlocked, s.Reason)
	}
}

func TestGenerateSlots_CustomSlotDuration(t *testing.T) {
	monday := date(2025, time.June, 9)
	tmpl := &model.ScheduleTemplate{
		DayOfWeek: int(time.Monday),
		StartTime: "14:00",
		EndTime:   "16:00",
		IsActive:  true,
	}

	slots := GenerateSlots(testConfig(), monday, tmpl, nil, nil, 30)

	assert.Equal(t, []string{"14:00", "14:30", "15:00", "15:30"}, availableTimes(slots))
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "10:00", 30, model.AppointmentStatusPending),
	}
	blocks := []*model.TimeBlock{
		block(monday.Add(14*time.Hour), monday.Add(15*time.Hour), ""),
	}

	first := GenerateSlots(testConfig(), monday, nil, appts, blocks, 0)
	second := GenerateSlots(testConfig(), monday, nil, appts, blocks, 0)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_AppointmentOtherDayIgnored(t *testing.T) {
	monday := date(2025, time.June, 9)
	tuesday := date(2025, time.June, 10)
	appts := []*model.Appointment{
		appt(tuesday, "09:00", 60, model.AppointmentStatusConfirmed),
	}

	slots := GenerateSlots(testConfig(), monday, nil, appts, nil, 0)

	for _, s := range slots {
		assert.True(t, s.Available)
	}
}
