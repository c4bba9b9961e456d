package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
)

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	query := `
		INSERT INTO consultations (
			id, appointment_id, doctor_id, patient_id, chief_complaint,
			notes, diagnosis, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	consultation.ID = uuid.New()
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.AppointmentID,
		consultation.DoctorID,
		consultation.PatientID,
		consultation.ChiefComplaint,
		consultation.Notes,
		consultation.Diagnosis,
		consultation.Status,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

func (r *consultationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id, chief_complaint,
			   notes, diagnosis, status, completed_at, created_at, updated_at
		FROM consultations
		WHERE id = $1
	`
	var consultation model.Consultation
	err := r.db.GetContext(ctx, &consultation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return &consultation, nil
}

func (r *consultationRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Consultation, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id, chief_complaint,
			   notes, diagnosis, status, completed_at, created_at, updated_at
		FROM consultations
		WHERE appointment_id = $1
	`
	var consultation model.Consultation
	err := r.db.GetContext(ctx, &consultation, query, appointmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation by appointment: %w", err)
	}
	return &consultation, nil
}

func (r *consultationRepository) Update(ctx context.Context, consultation *model.Consultation) error {
	query := `
		UPDATE consultations
		SET chief_complaint = $1, notes = $2, diagnosis = $3, status = $4,
			completed_at = $5, updated_at = $6
		WHERE id = $7
	`
	consultation.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		consultation.ChiefComplaint,
		consultation.Notes,
		consultation.Diagnosis,
		consultation.Status,
		consultation.CompletedAt,
		consultation.UpdatedAt,
		consultation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *consultationRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Consultation, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id, chief_complaint,
			   notes, diagnosis, status, completed_at, created_at, updated_at
		FROM consultations
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var consultations []*model.Consultation
	err := r.db.SelectContext(ctx, &consultations, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}
