package scheduling

import (
	"time"

	"github.com/pedassist/clinic-api/internal/model"
)

// GenerateSlots produces every bookable slot for date, stepped by
// slotMinutes (or the configured default when zero). Slots overlapping the
// lunch break are not emitted; slots taken by an appointment or a time block
// are emitted with Available false and a single reason, blocked taking
// priority over occupied. Cancelled appointments never occupy a slot.
//
// The function is pure: identical inputs always yield identical output.
func GenerateSlots(cfg Config, date time.Time, tmpl *model.ScheduleTemplate, appts []*model.Appointment, blocks []*model.TimeBlock, slotMinutes int) []Slot {
	day, ok := cfg.resolveDay(date, tmpl)
	if !ok {
		return nil
	}

	loc := cfg.location()
	step := cfg.slotMinutes(slotMinutes)
	date = dayStart(date, loc)

	busy := busyIntervals(date, appts, loc)
	blocked := blockIntervals(date, blocks, loc)

	var slots []Slot
	for t := day.Start; t+step <= day.End; t += step {
		if day.hasBreak() && overlaps(t, t+step, day.BreakStart, day.BreakEnd) {
			continue
		}

		slot := Slot{Date: date, Time: FormatClock(t), Available: true}
		switch {
		case overlapsAny(t, t+step, blocked):
			slot.Available = false
			slot.Reason = ReasonBlocked
		case overlapsAny(t, t+step, busy):
			slot.Available = false
			slot.Reason = ReasonOccupied
		}
		slots = append(slots, slot)
	}
	return slots
}

// busyIntervals extracts the occupied minute ranges for date from the
// non-cancelled appointments that fall on it.
func busyIntervals(date time.Time, appts []*model.Appointment, loc *time.Location) []interval {
	var out []interval
	for _, a := range appts {
		if a.IsCancelled() || !sameDay(a.Date, date, loc) {
			continue
		}
		start, err := ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		dur := a.DurationMinutes
		if dur <= 0 {
			dur = model.DefaultAppointmentDuration
		}
		out = append(out, interval{Start: start, End: start + dur})
	}
	return out
}

func overlapsAny(start, end int, ivs []interval) bool {
	for _, iv := range ivs {
		if overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}
