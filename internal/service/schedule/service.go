package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
	"github.com/pedassist/clinic-api/internal/scheduling"
)

const (
	templateCacheTTL     = 5 * time.Minute
	templateCacheCleanup = 15 * time.Minute
)

// Service manages a doctor's weekly templates and time blocks. Templates are
// read on every availability request and change rarely, so the week view is
// cached per doctor.
type Service struct {
	repo  repository.ScheduleRepository
	cache *cache.Cache
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(templateCacheTTL, templateCacheCleanup),
	}
}

// WeekTemplate returns the doctor's active templates indexed by day of week.
func (s *Service) WeekTemplate(ctx context.Context, doctorID uuid.UUID) (scheduling.WeekTemplate, error) {
	key := doctorID.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(scheduling.WeekTemplate), nil
	}

	templates, err := s.repo.ListTemplates(ctx, doctorID)
	if err != nil {
		return scheduling.WeekTemplate{}, fmt.Errorf("failed to load week template: %w", err)
	}

	week := scheduling.NewWeekTemplate(templates)
	s.cache.Set(key, week, cache.DefaultExpiration)
	return week, nil
}

// ActiveTemplate returns the active template for one day of week, or nil
// when none exists (the caller falls back to the default schedule).
func (s *Service) ActiveTemplate(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*model.ScheduleTemplate, error) {
	week, err := s.WeekTemplate(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("day of week out of range: %d", dayOfWeek)
	}
	return week[dayOfWeek], nil
}

func (s *Service) UpsertTemplate(ctx context.Context, doctorID uuid.UUID, req *model.UpsertScheduleTemplateRequest) (*model.ScheduleTemplate, error) {
	start, err := scheduling.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := scheduling.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	if end <= start {
		return nil, fmt.Errorf("start time must be before end time")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tmpl := &model.ScheduleTemplate{
		DoctorID:  doctorID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  active,
	}
	if err := s.repo.UpsertTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to save schedule template: %w", err)
	}

	s.cache.Delete(doctorID.String())
	return tmpl, nil
}

func (s *Service) ListTemplates(ctx context.Context, doctorID uuid.UUID) ([]*model.ScheduleTemplate, error) {
	templates, err := s.repo.ListTemplates(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule templates: %w", err)
	}
	return templates, nil
}

func (s *Service) CreateBlock(ctx context.Context, doctorID uuid.UUID, req *model.CreateTimeBlockRequest) (*model.TimeBlock, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, fmt.Errorf("block start must be before its end")
	}

	block := &model.TimeBlock{
		DoctorID: doctorID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Reason:   req.Reason,
	}
	if err := s.repo.CreateBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create time block: %w", err)
	}
	return block, nil
}

func (s *Service) DeleteBlock(ctx context.Context, doctorID, blockID uuid.UUID) error {
	if err := s.repo.DeleteBlock(ctx, doctorID, blockID); err != nil {
		return fmt.Errorf("failed to delete time block: %w", err)
	}
	return nil
}

// BlocksInRange returns the blocks intersecting [from, to).
func (s *Service) BlocksInRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*model.TimeBlock, error) {
	blocks, err := s.repo.ListBlocksInRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load time blocks: %w", err)
	}
	return blocks, nil
}
