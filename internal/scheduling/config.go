package scheduling

import "time"

// Config carries the clinic-wide scheduling parameters. All date math in
// this package runs against Config.Location, never against the ambient
// server timezone.
type Config struct {
	Location    *time.Location
	SlotMinutes int
	HorizonDays int
	Default     DefaultSchedule
}

// DefaultSchedule is the fallback applied whenever a doctor has no active
// weekly template for a given day. Times are minutes from midnight. A zero
// break (BreakStart == BreakEnd) means no break.
type DefaultSchedule struct {
	Weekdays   map[time.Weekday]bool
	Start      int
	End        int
	BreakStart int
	BreakEnd   int
}

// DefaultConfig returns the stock clinic schedule: 08:00-18:00 Monday
// through Friday with a 12:00-13:00 lunch break and 60-minute slots.
func DefaultConfig(loc *time.Location) Config {
	if loc == nil {
		loc = time.UTC
	}
	return Config{
		Location:    loc,
		SlotMinutes: 60,
		HorizonDays: 60,
		Default: DefaultSchedule{
			Weekdays: map[time.Weekday]bool{
				time.Monday:    true,
				time.Tuesday:   true,
				time.Wednesday: true,
				time.Thursday:  true,
				time.Friday:    true,
			},
			Start:      8 * 60,
			End:        18 * 60,
			BreakStart: 12 * 60,
			BreakEnd:   13 * 60,
		},
	}
}

func (c Config) slotMinutes(requested int) int {
	if requested > 0 {
		return requested
	}
	if c.SlotMinutes > 0 {
		return c.SlotMinutes
	}
	return 60
}

func (c Config) horizonDays() int {
	if c.HorizonDays > 0 {
		return c.HorizonDays
	}
	return 60
}

func (c Config) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}
