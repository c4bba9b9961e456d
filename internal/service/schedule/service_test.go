package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
)

type countingScheduleRepo struct {
	templates     []*model.ScheduleTemplate
	listCalls     int
	upsertedLast  *model.ScheduleTemplate
	createdBlocks []*model.TimeBlock
}

func (f *countingScheduleRepo) UpsertTemplate(_ context.Context, t *model.ScheduleTemplate) error {
	f.upsertedLast = t
	f.templates = append(f.templates, t)
	return nil
}

func (f *countingScheduleRepo) GetActiveTemplate(_ context.Context, _ uuid.UUID, dayOfWeek int) (*model.ScheduleTemplate, error) {
	for _, t := range f.templates {
		if t.DayOfWeek == dayOfWeek && t.IsActive {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *countingScheduleRepo) ListTemplates(_ context.Context, _ uuid.UUID) ([]*model.ScheduleTemplate, error) {
	f.listCalls++
	return f.templates, nil
}

func (f *countingScheduleRepo) CreateBlock(_ context.Context, b *model.TimeBlock) error {
	f.createdBlocks = append(f.createdBlocks, b)
	return nil
}

func (f *countingScheduleRepo) DeleteBlock(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *countingScheduleRepo) ListBlocksInRange(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*model.TimeBlock, error) {
	return nil, nil
}

func TestWeekTemplateIsCached(t *testing.T) {
	repo := &countingScheduleRepo{templates: []*model.ScheduleTemplate{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}}
	svc := NewService(repo)
	doctorID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		week, err := svc.WeekTemplate(ctx, doctorID)
		require.NoError(t, err)
		require.NotNil(t, week[1])
	}
	assert.Equal(t, 1, repo.listCalls, "repeated reads hit the cache")
}

func TestUpsertTemplateInvalidatesCache(t *testing.T) {
	repo := &countingScheduleRepo{}
	svc := NewService(repo)
	doctorID := uuid.New()
	ctx := context.Background()

	week, err := svc.WeekTemplate(ctx, doctorID)
	require.NoError(t, err)
	assert.Nil(t, week[2])

	_, err = svc.UpsertTemplate(ctx, doctorID, &model.UpsertScheduleTemplateRequest{
		DayOfWeek: 2,
		StartTime: "08:00",
		EndTime:   "14:00",
	})
	require.NoError(t, err)

	week, err = svc.WeekTemplate(ctx, doctorID)
	require.NoError(t, err)
	require.NotNil(t, week[2], "the upsert must be visible immediately")
	assert.Equal(t, "14:00", week[2].EndTime)
	assert.True(t, week[2].IsActive, "templates default to active")
}

func TestUpsertTemplateRejectsInvertedWindow(t *testing.T) {
	svc := NewService(&countingScheduleRepo{})

	_, err := svc.UpsertTemplate(context.Background(), uuid.New(), &model.UpsertScheduleTemplateRequest{
		DayOfWeek: 1,
		StartTime: "17:00",
		EndTime:   "09:00",
	})
	assert.Error(t, err)
}

func TestCreateBlockRejectsInvertedInterval(t *testing.T) {
	svc := NewService(&countingScheduleRepo{})
	start := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.CreateBlock(context.Background(), uuid.New(), &model.CreateTimeBlockRequest{
		StartsAt: start,
		EndsAt:   start,
		Reason:   "conference",
	})
	assert.Error(t, err)
}
