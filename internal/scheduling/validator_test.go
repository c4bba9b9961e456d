package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedassist/clinic-api/internal/model"
)

func conflictKinds(r ValidationResult) []ConflictKind {
	var kinds []ConflictKind
	for _, c := range r.Conflicts {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}

func TestValidateBooking_Valid(t *testing.T) {
	monday := date(2025, time.June, 9)

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:00",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, nil, nil)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Conflicts)
}

func TestValidateBooking_LunchBreak(t *testing.T) {
	monday := date(2025, time.June, 9)

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:      monday,
		Time:      "12:00",
		PatientID: uuid.New(),
	}, nil, nil, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []ConflictKind{ConflictOutsideHours}, conflictKinds(result))
}

func TestValidateBooking_StraddlesLunch(t *testing.T) {
	monday := date(2025, time.June, 9)

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "11:30",
		PatientID:       uuid.New(),
		DurationMinutes: 60,
	}, nil, nil, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []ConflictKind{ConflictOutsideHours}, conflictKinds(result))
}

func TestValidateBooking_ClosingBoundary(t *testing.T) {
	monday := date(2025, time.June, 9)

	// 17:30 + 30min ends exactly at 18:00, which is legal: the working
	// window end is exclusive.
	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "17:30",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, nil, nil)
	assert.True(t, result.Valid)

	result = ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "17:45",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, nil, nil)
	assert.False(t, result.Valid)
}

func TestValidateBooking_Weekend(t *testing.T) {
	sunday := date(2025, time.June, 8)

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:      sunday,
		Time:      "09:00",
		PatientID: uuid.New(),
	}, nil, nil, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []ConflictKind{ConflictWeekend}, conflictKinds(result))
}

func TestValidateBooking_OccupiedSlot(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:00", 30, model.AppointmentStatusConfirmed),
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:00",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, appts, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []ConflictKind{ConflictOccupiedSlot}, conflictKinds(result))
}

func TestValidateBooking_AdjacentAppointmentsDoNotConflict(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:00", 30, model.AppointmentStatusConfirmed),
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:30",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, appts, nil)

	assert.True(t, result.Valid, "back-to-back bookings are legal with half-open intervals")
}

func TestValidateBooking_PartialOverlap(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:00", 60, model.AppointmentStatusPending),
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:45",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, appts, nil)

	assert.False(t, result.Valid)
	assert.Contains(t, conflictKinds(result), ConflictOccupiedSlot)
}

func TestValidateBooking_CancelledAppointmentIgnored(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:00", 30, model.AppointmentStatusCancelled),
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:00",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, nil, appts, nil)

	assert.True(t, result.Valid)
}

func TestValidateBooking_Blocked(t *testing.T) {
	day := date(2025, time.June, 10)
	blocks := []*model.TimeBlock{
		block(day.Add(9*time.Hour), day.Add(10*time.Hour), "vacation"),
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            day,
		Time:            "09:15",
		PatientID:       uuid.New(),
		DurationMinutes: 15,
	}, nil, nil, blocks)

	assert.False(t, result.Valid)
	require.Equal(t, []ConflictKind{ConflictBlocked}, conflictKinds(result))
	assert.Contains(t, result.Conflicts[0].Message, "vacation")
}

func TestValidateBooking_DuplicatePatientIsSoft(t *testing.T) {
	monday := date(2025, time.June, 9)
	patientID := uuid.New()

	existing := appt(monday, "09:00", 30, model.AppointmentStatusConfirmed)
	existing.PatientID = patientID

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "14:00",
		PatientID:       patientID,
		DurationMinutes: 30,
	}, nil, []*model.Appointment{existing}, nil)

	assert.True(t, result.Valid, "a soft conflict alone must not invalidate the booking")
	require.Equal(t, []ConflictKind{ConflictDuplicatePatient}, conflictKinds(result))
	assert.Equal(t, SeveritySoft, result.Conflicts[0].Severity)
	assert.True(t, result.OnlySoft())
}

func TestValidateBooking_AccumulatesConflicts(t *testing.T) {
	monday := date(2025, time.June, 9)
	patientID := uuid.New()

	existing := appt(monday, "09:00", 30, model.AppointmentStatusConfirmed)
	existing.PatientID = patientID
	blocks := []*model.TimeBlock{
		block(monday.Add(9*time.Hour), monday.Add(10*time.Hour), ""),
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:00",
		PatientID:       patientID,
		DurationMinutes: 30,
	}, nil, []*model.Appointment{existing}, blocks)

	assert.False(t, result.Valid)
	assert.Equal(t, []ConflictKind{ConflictBlocked, ConflictOccupiedSlot, ConflictDuplicatePatient},
		conflictKinds(result), "all checks must run, in order, without short-circuiting")
	assert.Len(t, result.Messages(), 3)
}

func TestValidateBooking_DefaultDuration(t *testing.T) {
	monday := date(2025, time.June, 9)
	appts := []*model.Appointment{
		appt(monday, "09:15", 15, model.AppointmentStatusConfirmed),
	}

	// Duration omitted: defaults to 30 minutes, which overlaps 09:15.
	result := ValidateBooking(testConfig(), BookingRequest{
		Date:      monday,
		Time:      "09:00",
		PatientID: uuid.New(),
	}, nil, appts, nil)

	assert.False(t, result.Valid)
	assert.Contains(t, conflictKinds(result), ConflictOccupiedSlot)
}

func TestValidateBooking_ExcludeIDSkipsOwnRow(t *testing.T) {
	monday := date(2025, time.June, 9)
	patientID := uuid.New()

	existing := appt(monday, "09:00", 30, model.AppointmentStatusConfirmed)
	existing.PatientID = patientID

	// Rescheduling the same appointment onto its own old slot must not
	// conflict with itself, nor count as a duplicate.
	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:00",
		PatientID:       patientID,
		DurationMinutes: 30,
		ExcludeID:       &existing.ID,
	}, nil, []*model.Appointment{existing}, nil)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Conflicts)
}

func TestValidateBooking_InvalidTimeFormat(t *testing.T) {
	monday := date(2025, time.June, 9)

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:      monday,
		Time:      "9 o'clock",
		PatientID: uuid.New(),
	}, nil, nil, nil)

	assert.False(t, result.Valid)
}

func TestValidateBooking_TemplateOverridesDefault(t *testing.T) {
	monday := date(2025, time.June, 9)
	tmpl := &model.ScheduleTemplate{
		DayOfWeek: int(time.Monday),
		StartTime: "14:00",
		EndTime:   "18:00",
		IsActive:  true,
	}

	result := ValidateBooking(testConfig(), BookingRequest{
		Date:            monday,
		Time:            "09:00",
		PatientID:       uuid.New(),
		DurationMinutes: 30,
	}, tmpl, nil, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []ConflictKind{ConflictOutsideHours}, conflictKinds(result))
}
