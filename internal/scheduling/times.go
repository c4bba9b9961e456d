package scheduling

import (
	"fmt"
	"time"

	"github.com/pedassist/clinic-api/internal/model"
)

const minutesPerDay = 24 * 60

// ParseClock converts a "HH:MM" time-of-day string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// dayStart returns midnight of date in loc.
func dayStart(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// sameDay reports whether a and b fall on the same calendar day in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// interval is a half-open [Start, End) range in minutes from midnight.
type interval struct {
	Start int
	End   int
}

// blockIntervals converts the time blocks that intersect date into
// minute-of-day intervals clipped to that day.
func blockIntervals(date time.Time, blocks []*model.TimeBlock, loc *time.Location) []interval {
	start := dayStart(date, loc)
	end := start.AddDate(0, 0, 1)

	var out []interval
	for _, b := range blocks {
		if !b.StartsAt.Before(end) || !b.EndsAt.After(start) {
			continue
		}
		bs, be := 0, minutesPerDay
		if b.StartsAt.After(start) {
			bs = minuteOfDay(b.StartsAt, loc)
		}
		if b.EndsAt.Before(end) {
			be = minuteOfDay(b.EndsAt, loc)
		}
		out = append(out, interval{Start: bs, End: be})
	}
	return out
}

func minuteOfDay(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}
