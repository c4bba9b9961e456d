package model

import (
	"time"

	"github.com/google/uuid"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	DoctorID      uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	Name          string        `db:"name" json:"name"`
	BirthDate     time.Time     `db:"birth_date" json:"birth_date"`
	Gender        string        `db:"gender" json:"gender"`
	GuardianName  string        `db:"guardian_name" json:"guardian_name"`
	GuardianPhone string        `db:"guardian_phone" json:"guardian_phone"`
	GuardianEmail string        `db:"guardian_email" json:"guardian_email,omitempty"`
	Allergies     string        `db:"allergies" json:"allergies,omitempty"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	Status        PatientStatus `db:"status" json:"status"`
}

// Age is the patient's age in whole years and remaining months,
// computed against an explicit reference time.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

type CreatePatientRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	BirthDate     string `json:"birth_date" binding:"required"`
	Gender        string `json:"gender" binding:"omitempty,oneof=male female other"`
	GuardianName  string `json:"guardian_name" binding:"required,max=200"`
	GuardianPhone string `json:"guardian_phone" binding:"required,max=30"`
	GuardianEmail string `json:"guardian_email" binding:"omitempty,email"`
	Allergies     string `json:"allergies" binding:"max=1000"`
	Notes         string `json:"notes" binding:"max=2000"`
}

type UpdatePatientRequest struct {
	Name          *string `json:"name"`
	Gender        *string `json:"gender"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	GuardianEmail *string `json:"guardian_email"`
	Allergies     *string `json:"allergies"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
}

type PatientFilters struct {
	DoctorID   uuid.UUID
	SearchTerm string
	Status     PatientStatus
}
