package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedassist/clinic-api/internal/model"
)

func fullyBook(day time.Time) []*model.Appointment {
	var appts []*model.Appointment
	for _, start := range []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"} {
		appts = append(appts, appt(day, start, 60, model.AppointmentStatusConfirmed))
	}
	return appts
}

func TestFindAvailableSlots_SameDay(t *testing.T) {
	monday := date(2025, time.June, 9)

	slots := FindAvailableSlots(testConfig(), monday, 3, WeekTemplate{}, nil, nil, 0)

	require.Len(t, slots, 3)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "09:00", slots[1].Time)
	assert.Equal(t, "10:00", slots[2].Time)
	for _, s := range slots {
		assert.True(t, monday.Equal(s.Date))
		assert.True(t, s.Available)
	}
}

func TestFindAvailableSlots_SkipsFullyBookedDay(t *testing.T) {
	monday := date(2025, time.June, 9)
	tuesday := date(2025, time.June, 10)

	slots := FindAvailableSlots(testConfig(), monday, 3, WeekTemplate{}, fullyBook(monday), nil, 0)

	require.Len(t, slots, 3)
	for _, s := range slots {
		assert.True(t, tuesday.Equal(s.Date), "fully booked Monday must be skipped")
	}
	assert.Equal(t, "08:00", slots[0].Time)
}

func TestFindAvailableSlots_SpansDays(t *testing.T) {
	friday := date(2025, time.June, 13)
	monday := date(2025, time.June, 16)

	// Friday has one free slot left; the rest must come from Monday,
	// skipping the weekend.
	appts := fullyBook(friday)[:8]

	slots := FindAvailableSlots(testConfig(), friday, 3, WeekTemplate{}, appts, nil, 0)

	require.Len(t, slots, 3)
	assert.True(t, friday.Equal(slots[0].Date))
	assert.Equal(t, "17:00", slots[0].Time)
	assert.True(t, monday.Equal(slots[1].Date))
	assert.Equal(t, "08:00", slots[1].Time)
	assert.True(t, monday.Equal(slots[2].Date))
	assert.Equal(t, "09:00", slots[2].Time)
}

func TestFindAvailableSlots_OrderedByDateThenTime(t *testing.T) {
	monday := date(2025, time.June, 9)

	slots := FindAvailableSlots(testConfig(), monday, 12, WeekTemplate{}, nil, nil, 0)

	require.Len(t, slots, 12)
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Date.Equal(cur.Date) {
			assert.Less(t, prev.Time, cur.Time)
		} else {
			assert.True(t, prev.Date.Before(cur.Date))
		}
	}
}

func TestFindAvailableSlots_HorizonExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 5
	cfg.Default.Weekdays = nil // doctor with no schedule at all

	slots := FindAvailableSlots(cfg, date(2025, time.June, 9), 3, WeekTemplate{}, nil, nil, 0)

	assert.Empty(t, slots, "an exhausted horizon returns an empty result, not an error")
}

func TestFindAvailableSlots_FewerThanRequested(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 1

	monday := date(2025, time.June, 9)
	appts := fullyBook(monday)[:7] // two slots left in the horizon

	slots := FindAvailableSlots(cfg, monday, 5, WeekTemplate{}, appts, nil, 0)

	assert.Len(t, slots, 2)
}

func TestFindAvailableSlots_VacationBlockSkipsDays(t *testing.T) {
	monday := date(2025, time.June, 9)
	blocks := []*model.TimeBlock{
		block(monday, date(2025, time.June, 11), "vacation"),
	}

	slots := FindAvailableSlots(testConfig(), monday, 2, WeekTemplate{}, nil, blocks, 0)

	require.Len(t, slots, 2)
	wednesday := date(2025, time.June, 11)
	for _, s := range slots {
		assert.True(t, wednesday.Equal(s.Date))
	}
}

func TestFindAvailableSlots_ZeroCount(t *testing.T) {
	assert.Nil(t, FindAvailableSlots(testConfig(), date(2025, time.June, 9), 0, WeekTemplate{}, nil, nil, 0))
}

func TestNewWeekTemplate(t *testing.T) {
	templates := []*model.ScheduleTemplate{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "08:00", EndTime: "12:00", IsActive: false},
		{DayOfWeek: 9, StartTime: "08:00", EndTime: "12:00", IsActive: true},
	}

	week := NewWeekTemplate(templates)

	assert.NotNil(t, week[1])
	assert.Nil(t, week[2], "inactive rows are dropped")
	for i := 3; i < 7; i++ {
		assert.Nil(t, week[i])
	}
}

func TestFindAvailableSlots_HonorsWeekTemplate(t *testing.T) {
	monday := date(2025, time.June, 9)
	week := NewWeekTemplate([]*model.ScheduleTemplate{
		{DayOfWeek: int(time.Monday), StartTime: "16:00", EndTime: "18:00", IsActive: true},
	})

	slots := FindAvailableSlots(testConfig(), monday, 2, week, nil, nil, 0)

	require.Len(t, slots, 2)
	assert.Equal(t, "16:00", slots[0].Time)
	assert.Equal(t, "17:00", slots[1].Time)
}
