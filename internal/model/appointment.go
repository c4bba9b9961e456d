package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeReturn       AppointmentType = "return"
	AppointmentTypeUrgent       AppointmentType = "urgent"
)

const DefaultAppointmentDuration = 30

// Appointment is a scheduled encounter. Date carries the calendar day only
// (midnight in the clinic's timezone); StartTime is the time of day in
// "HH:MM" form. Appointments are never hard-deleted: cancellation moves the
// status to cancelled and keeps the row.
type Appointment struct {
	Base
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	Date            time.Time         `db:"appointment_date" json:"appointment_date"`
	StartTime       string            `db:"start_time" json:"appointment_time"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Type            AppointmentType   `db:"appointment_type" json:"appointment_type"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CheckedInAt     *time.Time        `db:"checked_in_at" json:"checked_in_at,omitempty"`
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" binding:"required"`
	Date            string    `json:"appointment_date" binding:"required"`
	StartTime       string    `json:"appointment_time" binding:"required,clock"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	Type            string    `json:"appointment_type" binding:"required,oneof=consultation return urgent"`
	Notes           string    `json:"notes" binding:"max=2000"`
	AllowDuplicate  bool      `json:"allow_duplicate"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"appointment_date" binding:"required"`
	StartTime string `json:"appointment_time" binding:"required,clock"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type CheckAvailabilityRequest struct {
	Date      string     `json:"date" binding:"required"`
	Time      string     `json:"time" binding:"required,clock"`
	Duration  int        `json:"duration" binding:"omitempty,min=1,max=480"`
	ExcludeID *uuid.UUID `json:"exclude_id"`
}

type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	DateFrom  time.Time
	DateTo    time.Time
}
