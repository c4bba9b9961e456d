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

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, doctor_id, patient_id, appointment_date, start_time,
			duration_minutes, status, appointment_type, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.DoctorID,
		appointment.PatientID,
		appointment.Date,
		appointment.StartTime,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.Type,
		appointment.Notes,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, appointment_date, start_time,
			   duration_minutes, status, appointment_type, notes,
			   cancel_reason, checked_in_at, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET appointment_date = $1, start_time = $2, duration_minutes = $3,
			status = $4, notes = $5, cancel_reason = $6, checked_in_at = $7,
			updated_at = $8
		WHERE id = $9
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.Date,
		appointment.StartTime,
		appointment.DurationMinutes,
		appointment.Status,
		appointment.Notes,
		appointment.CancelReason,
		appointment.CheckedInAt,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
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

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, appointment_date, start_time,
			   duration_minutes, status, appointment_type, notes,
			   cancel_reason, checked_in_at, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
	`
	args := []interface{}{filters.DoctorID}
	argCount := 2

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if !filters.DateFrom.IsZero() {
		query += fmt.Sprintf(" AND appointment_date >= $%d", argCount)
		args = append(args, filters.DateFrom)
		argCount++
	}

	if !filters.DateTo.IsZero() {
		query += fmt.Sprintf(" AND appointment_date <= $%d", argCount)
		args = append(args, filters.DateTo)
		argCount++
	}

	query += " ORDER BY appointment_date ASC, start_time ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, appointment_date, start_time,
			   duration_minutes, status, appointment_type, notes,
			   cancel_reason, checked_in_at, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date = $2
		AND status != 'cancelled'
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for date: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, appointment_date, start_time,
			   duration_minutes, status, appointment_type, notes,
			   cancel_reason, checked_in_at, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_date >= $2
		AND appointment_date <= $3
		AND status != 'cancelled'
		ORDER BY appointment_date ASC, start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for range: %w", err)
	}
	return appointments, nil
}
