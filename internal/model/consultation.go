package model

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationStatus string

const (
	ConsultationStatusOpen      ConsultationStatus = "open"
	ConsultationStatusCompleted ConsultationStatus = "completed"
)

// Consultation is the clinical record attached to a single appointment.
type Consultation struct {
	Base
	AppointmentID  uuid.UUID          `db:"appointment_id" json:"appointment_id"`
	DoctorID       uuid.UUID          `db:"doctor_id" json:"doctor_id"`
	PatientID      uuid.UUID          `db:"patient_id" json:"patient_id"`
	ChiefComplaint string             `db:"chief_complaint" json:"chief_complaint"`
	Notes          string             `db:"notes" json:"notes,omitempty"`
	Diagnosis      string             `db:"diagnosis" json:"diagnosis,omitempty"`
	Status         ConsultationStatus `db:"status" json:"status"`
	CompletedAt    *time.Time         `db:"completed_at" json:"completed_at,omitempty"`
}

type StartConsultationRequest struct {
	AppointmentID  uuid.UUID `json:"appointment_id" binding:"required"`
	ChiefComplaint string    `json:"chief_complaint" binding:"max=1000"`
}

type UpdateConsultationRequest struct {
	ChiefComplaint *string `json:"chief_complaint"`
	Notes          *string `json:"notes"`
	Diagnosis      *string `json:"diagnosis"`
}
