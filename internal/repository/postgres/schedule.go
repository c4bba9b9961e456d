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

// UpsertTemplate replaces the template row for (doctor, day-of-week). The
// unique constraint on (doctor_id, day_of_week) keeps at most one row per
// day; activation state lives on that single row.
func (r *scheduleRepository) UpsertTemplate(ctx context.Context, tmpl *model.ScheduleTemplate) error {
	query := `
		INSERT INTO schedule_templates (
			id, doctor_id, day_of_week, start_time, end_time, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (doctor_id, day_of_week) DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`
	if tmpl.ID == uuid.Nil {
		tmpl.ID = uuid.New()
		tmpl.CreatedAt = time.Now()
	}
	tmpl.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tmpl.ID,
		tmpl.DoctorID,
		tmpl.DayOfWeek,
		tmpl.StartTime,
		tmpl.EndTime,
		tmpl.IsActive,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule template: %w", err)
	}
	return nil
}

func (r *scheduleRepository) GetActiveTemplate(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*model.ScheduleTemplate, error) {
	query := `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active,
			   created_at, updated_at
		FROM schedule_templates
		WHERE doctor_id = $1 AND day_of_week = $2 AND is_active = true
	`
	var tmpl model.ScheduleTemplate
	err := r.db.GetContext(ctx, &tmpl, query, doctorID, dayOfWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule template: %w", err)
	}
	return &tmpl, nil
}

func (r *scheduleRepository) ListTemplates(ctx context.Context, doctorID uuid.UUID) ([]*model.ScheduleTemplate, error) {
	query := `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_active,
			   created_at, updated_at
		FROM schedule_templates
		WHERE doctor_id = $1
		ORDER BY day_of_week ASC
	`
	var templates []*model.ScheduleTemplate
	err := r.db.SelectContext(ctx, &templates, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule templates: %w", err)
	}
	return templates, nil
}

func (r *scheduleRepository) CreateBlock(ctx context.Context, block *model.TimeBlock) error {
	query := `
		INSERT INTO time_blocks (
			id, doctor_id, starts_at, ends_at, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	block.ID = uuid.New()
	block.CreatedAt = time.Now()
	block.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		block.ID,
		block.DoctorID,
		block.StartsAt,
		block.EndsAt,
		block.Reason,
		block.CreatedAt,
		block.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create time block: %w", err)
	}
	return nil
}

func (r *scheduleRepository) DeleteBlock(ctx context.Context, doctorID, blockID uuid.UUID) error {
	query := `
		DELETE FROM time_blocks
		WHERE id = $1 AND doctor_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, blockID, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete time block: %w", err)
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

// ListBlocksInRange returns the blocks whose half-open interval intersects
// [from, to).
func (r *scheduleRepository) ListBlocksInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.TimeBlock, error) {
	query := `
		SELECT id, doctor_id, starts_at, ends_at, reason, created_at, updated_at
		FROM time_blocks
		WHERE doctor_id = $1
		AND starts_at < $3
		AND ends_at > $2
		ORDER BY starts_at ASC
	`
	var blocks []*model.TimeBlock
	err := r.db.SelectContext(ctx, &blocks, query, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time blocks: %w", err)
	}
	return blocks, nil
}
