package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/model"
)

// ErrNotFound is returned when a query matches no row.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	// ScheduleRepository covers both halves of a doctor's availability
	// configuration: the weekly templates and the ad-hoc time blocks.
	ScheduleRepository interface {
		UpsertTemplate(ctx context.Context, tmpl *model.ScheduleTemplate) error
		GetActiveTemplate(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*model.ScheduleTemplate, error)
		ListTemplates(ctx context.Context, doctorID uuid.UUID) ([]*model.ScheduleTemplate, error)
		CreateBlock(ctx context.Context, block *model.TimeBlock) error
		DeleteBlock(ctx context.Context, doctorID, blockID uuid.UUID) error
		ListBlocksInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.TimeBlock, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListForDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*model.Appointment, error)
		ListForRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
	}

	ConsultationRepository interface {
		Create(ctx context.Context, consultation *model.Consultation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error)
		GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Consultation, error)
		Update(ctx context.Context, consultation *model.Consultation) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error)
	}
)
