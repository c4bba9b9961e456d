package scheduling

import (
	"time"

	"github.com/pedassist/clinic-api/internal/model"
)

// WeekTemplate holds a doctor's active template per day of week, indexed by
// time.Weekday. Nil entries fall back to the configured default schedule.
type WeekTemplate [7]*model.ScheduleTemplate

// NewWeekTemplate indexes template rows by day of week, keeping only active
// rows within range.
func NewWeekTemplate(templates []*model.ScheduleTemplate) WeekTemplate {
	var week WeekTemplate
	for _, t := range templates {
		if t.IsActive && t.DayOfWeek >= 0 && t.DayOfWeek < 7 {
			week[t.DayOfWeek] = t
		}
	}
	return week
}

// FindAvailableSlots scans forward from the given date, one calendar day at
// a time, collecting available slots until count are found or the search
// horizon is exhausted. Slots come back ordered by date then time of day. A
// shorter-than-requested result (possibly empty) is expected when the doctor
// has little or no availability; it is never an error.
func FindAvailableSlots(cfg Config, from time.Time, count int, week WeekTemplate, appts []*model.Appointment, blocks []*model.TimeBlock, slotMinutes int) []Slot {
	if count <= 0 {
		return nil
	}

	loc := cfg.location()
	date := dayStart(from, loc)

	var found []Slot
	for day := 0; day < cfg.horizonDays(); day++ {
		tmpl := week[int(date.Weekday())]
		for _, slot := range GenerateSlots(cfg, date, tmpl, appts, blocks, slotMinutes) {
			if !slot.Available {
				continue
			}
			found = append(found, slot)
			if len(found) == count {
				return found
			}
		}
		date = date.AddDate(0, 0, 1)
	}
	return found
}
