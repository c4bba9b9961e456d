package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/model"
)

type ConflictKind string

const (
	ConflictWeekend          ConflictKind = "weekend"
	ConflictOutsideHours     ConflictKind = "outside_hours"
	ConflictBlocked          ConflictKind = "blocked"
	ConflictOccupiedSlot     ConflictKind = "occupied_slot"
	ConflictDuplicatePatient ConflictKind = "duplicate_patient"
)

// Severity separates real scheduling conflicts from advisory business
// policy. duplicate_patient is the only soft kind: the same patient booked
// twice on one day is suspicious but not physically impossible.
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

type Conflict struct {
	Kind     ConflictKind `json:"kind"`
	Severity Severity     `json:"severity"`
	Message  string       `json:"message"`
}

// ValidationResult reports every conflict found, in check order. Valid is
// false only when at least one hard conflict exists; callers decide how to
// treat soft conflicts.
type ValidationResult struct {
	Valid     bool       `json:"valid"`
	Conflicts []Conflict `json:"conflicts"`
}

// Messages returns the human-readable message of every conflict, hard and
// soft, in check order.
func (r ValidationResult) Messages() []string {
	if len(r.Conflicts) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		msgs = append(msgs, c.Message)
	}
	return msgs
}

// HasHard reports whether any hard conflict was recorded.
func (r ValidationResult) HasHard() bool {
	for _, c := range r.Conflicts {
		if c.Severity == SeverityHard {
			return true
		}
	}
	return false
}

// OnlySoft reports whether conflicts exist but none of them are hard.
func (r ValidationResult) OnlySoft() bool {
	return len(r.Conflicts) > 0 && !r.HasHard()
}

// BookingRequest is a proposed (date, time, duration, patient) to validate.
// ExcludeID skips one appointment in the overlap and duplicate checks, used
// when re-validating a reschedule against the appointment's own old row.
type BookingRequest struct {
	Date            time.Time
	Time            string
	PatientID       uuid.UUID
	DurationMinutes int
	ExcludeID       *uuid.UUID
}

// ValidateBooking checks a proposed booking against the doctor's schedule,
// existing appointments and time blocks. All checks run; the result carries
// the complete list of violations rather than the first one. The function
// never mutates its inputs and performs no I/O.
func ValidateBooking(cfg Config, req BookingRequest, tmpl *model.ScheduleTemplate, appts []*model.Appointment, blocks []*model.TimeBlock) ValidationResult {
	var conflicts []Conflict

	loc := cfg.location()
	date := dayStart(req.Date, loc)

	dur := req.DurationMinutes
	if dur <= 0 {
		dur = model.DefaultAppointmentDuration
	}

	start, err := ParseClock(req.Time)
	if err != nil {
		return ValidationResult{Conflicts: []Conflict{{
			Kind:     ConflictOutsideHours,
			Severity: SeverityHard,
			Message:  err.Error(),
		}}}
	}
	end := start + dur

	day, working := cfg.resolveDay(date, tmpl)
	if !working {
		conflicts = append(conflicts, Conflict{
			Kind:     ConflictWeekend,
			Severity: SeverityHard,
			Message:  fmt.Sprintf("the doctor does not attend on %s", date.Weekday()),
		})
	} else if !withinWorkingHours(day, start, end) {
		conflicts = append(conflicts, Conflict{
			Kind:     ConflictOutsideHours,
			Severity: SeverityHard,
			Message: fmt.Sprintf("%s-%s is outside working hours (%s-%s)",
				FormatClock(start), FormatClock(end), FormatClock(day.Start), FormatClock(day.End)),
		})
	}

	for _, b := range intersectingBlocks(date, start, end, blocks, loc) {
		msg := "time is blocked on the doctor's agenda"
		if b.Reason != "" {
			msg = fmt.Sprintf("time is blocked on the doctor's agenda: %s", b.Reason)
		}
		conflicts = append(conflicts, Conflict{
			Kind:     ConflictBlocked,
			Severity: SeverityHard,
			Message:  msg,
		})
	}

	for _, a := range appts {
		if skipAppointment(a, req.ExcludeID) || !sameDay(a.Date, date, loc) {
			continue
		}
		aStart, err := ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		aDur := a.DurationMinutes
		if aDur <= 0 {
			aDur = model.DefaultAppointmentDuration
		}
		if overlaps(start, end, aStart, aStart+aDur) {
			conflicts = append(conflicts, Conflict{
				Kind:     ConflictOccupiedSlot,
				Severity: SeverityHard,
				Message: fmt.Sprintf("slot conflicts with an existing appointment at %s",
					a.StartTime),
			})
			break
		}
	}

	for _, a := range appts {
		if skipAppointment(a, req.ExcludeID) || !sameDay(a.Date, date, loc) {
			continue
		}
		if a.PatientID == req.PatientID {
			conflicts = append(conflicts, Conflict{
				Kind:     ConflictDuplicatePatient,
				Severity: SeveritySoft,
				Message:  "patient already has an appointment on this date",
			})
			break
		}
	}

	hard := false
	for _, c := range conflicts {
		if c.Severity == SeverityHard {
			hard = true
			break
		}
	}
	return ValidationResult{Valid: !hard, Conflicts: conflicts}
}

// withinWorkingHours reports whether [start, end) fits entirely inside the
// working window minus the break. The end boundary is exclusive, so a
// booking finishing exactly at closing time is legal.
func withinWorkingHours(day daySchedule, start, end int) bool {
	if start < day.Start || end > day.End {
		return false
	}
	if day.hasBreak() && overlaps(start, end, day.BreakStart, day.BreakEnd) {
		return false
	}
	return true
}

func skipAppointment(a *model.Appointment, excludeID *uuid.UUID) bool {
	if a.IsCancelled() {
		return true
	}
	return excludeID != nil && a.ID == *excludeID
}

// intersectingBlocks returns the blocks whose interval intersects
// [start, end) minutes on date.
func intersectingBlocks(date time.Time, start, end int, blocks []*model.TimeBlock, loc *time.Location) []*model.TimeBlock {
	base := dayStart(date, loc)
	s := base.Add(time.Duration(start) * time.Minute)
	e := base.Add(time.Duration(end) * time.Minute)

	var out []*model.TimeBlock
	for _, b := range blocks {
		if s.Before(b.EndsAt) && b.StartsAt.Before(e) {
			out = append(out, b)
		}
	}
	return out
}
