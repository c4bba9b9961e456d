package scheduling

import (
	"time"

	"github.com/pedassist/clinic-api/internal/model"
)

// SlotReason explains why a slot is unavailable.
type SlotReason string

const (
	ReasonOccupied     SlotReason = "occupied"
	ReasonBlocked      SlotReason = "blocked"
	ReasonOutsideHours SlotReason = "outside_hours"
	ReasonWeekend      SlotReason = "weekend"
	ReasonNoSchedule   SlotReason = "no_schedule"
)

// Slot is a candidate appointment start time within a day. Slots are derived
// on demand and never persisted.
type Slot struct {
	Date      time.Time  `json:"date"`
	Time      string     `json:"time"`
	Available bool       `json:"available"`
	Reason    SlotReason `json:"reason,omitempty"`
}

// daySchedule is the resolved working window for one calendar day, in
// minutes from midnight. BreakStart == BreakEnd means no break.
type daySchedule struct {
	Start      int
	End        int
	BreakStart int
	BreakEnd   int
}

func (d daySchedule) hasBreak() bool {
	return d.BreakEnd > d.BreakStart
}

// resolveDay determines the working window for date. An active template row
// wins; otherwise the configured default schedule applies on its weekdays.
// ok is false when the doctor does not work that day at all.
func (c Config) resolveDay(date time.Time, tmpl *model.ScheduleTemplate) (daySchedule, bool) {
	if tmpl != nil && tmpl.IsActive {
		start, err := ParseClock(tmpl.StartTime)
		if err != nil {
			return daySchedule{}, false
		}
		end, err := ParseClock(tmpl.EndTime)
		if err != nil || end <= start {
			return daySchedule{}, false
		}
		day := daySchedule{Start: start, End: end}
		// The lunch break is clinic-wide config, applied only where it
		// actually falls inside the template's window.
		if c.Default.BreakEnd > c.Default.BreakStart &&
			c.Default.BreakStart >= start && c.Default.BreakEnd <= end {
			day.BreakStart = c.Default.BreakStart
			day.BreakEnd = c.Default.BreakEnd
		}
		return day, true
	}

	weekday := date.In(c.location()).Weekday()
	if !c.Default.Weekdays[weekday] {
		return daySchedule{}, false
	}
	return daySchedule{
		Start:      c.Default.Start,
		End:        c.Default.End,
		BreakStart: c.Default.BreakStart,
		BreakEnd:   c.Default.BreakEnd,
	}, true
}
