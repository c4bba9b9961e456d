package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleTemplate is a doctor's recurring working hours for one day of the
// week. Day-of-week follows time.Weekday numbering: 0 is Sunday, 6 is
// Saturday. At most one active template may exist per (doctor, day-of-week).
type ScheduleTemplate struct {
	Base
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

// TimeBlock is an ad-hoc interval of unavailability, independent of the
// weekly template. The interval is half-open: [StartsAt, EndsAt).
type TimeBlock struct {
	Base
	DoctorID uuid.UUID `db:"doctor_id" json:"doctor_id"`
	StartsAt time.Time `db:"starts_at" json:"starts_at"`
	EndsAt   time.Time `db:"ends_at" json:"ends_at"`
	Reason   string    `db:"reason" json:"reason"`
}

type UpsertScheduleTemplateRequest struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required,clock"`
	EndTime   string `json:"end_time" binding:"required,clock"`
	IsActive  *bool  `json:"is_active"`
}

type CreateTimeBlockRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Reason   string    `json:"reason" binding:"max=500"`
}
