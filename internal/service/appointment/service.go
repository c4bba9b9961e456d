package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pedassist/clinic-api/internal/email"
	"github.com/pedassist/clinic-api/internal/model"
	redisclient "github.com/pedassist/clinic-api/internal/redis"
	"github.com/pedassist/clinic-api/internal/repository"
	"github.com/pedassist/clinic-api/internal/scheduling"
	"github.com/pedassist/clinic-api/internal/service/schedule"
)

const suggestedSlotCount = 3

var (
	ErrSlotBeingBooked    = errors.New("slot is currently being booked, please retry")
	ErrInvalidTransition  = errors.New("invalid appointment status transition")
	ErrAlreadyCancelled   = errors.New("appointment is already cancelled")
	ErrCompletedImmutable = errors.New("completed appointments cannot be changed")
)

// ValidationError carries the full conflict report plus alternative slots,
// so the handler can build the 400 response the booking UI expects.
type ValidationError struct {
	Result      scheduling.ValidationResult
	Suggestions []scheduling.Slot
}

func (e *ValidationError) Error() string {
	return "appointment time is not available: " + strings.Join(e.Result.Messages(), "; ")
}

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	scheduleSvc *schedule.Service
	locker      redisclient.Locker
	emailSvc    email.Service
	cfg         scheduling.Config
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository,
	scheduleSvc *schedule.Service, locker redisclient.Locker, emailSvc email.Service,
	cfg scheduling.Config) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		scheduleSvc: scheduleSvc,
		locker:      locker,
		emailSvc:    emailSvc,
		cfg:         cfg,
	}
}

// ParseDate interprets a YYYY-MM-DD string as midnight in the clinic's
// timezone.
func (s *Service) ParseDate(value string) (time.Time, error) {
	loc := s.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return date, nil
}

// CreateAppointment validates the requested time and persists the booking.
// On conflict it returns a *ValidationError with suggested alternatives. The
// insert runs under a per-slot lock and re-validates against fresh rows, so
// two concurrent requests for the same slot cannot both succeed.
func (s *Service) CreateAppointment(ctx context.Context, doctorID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	date, err := s.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient.DoctorID != doctorID {
		return nil, repository.ErrNotFound
	}

	booking := scheduling.BookingRequest{
		Date:            date,
		Time:            req.StartTime,
		PatientID:       req.PatientID,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.validate(ctx, doctorID, date, booking, req.AllowDuplicate); err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = model.DefaultAppointmentDuration
	}

	apt := &model.Appointment{
		DoctorID:        doctorID,
		PatientID:       req.PatientID,
		Date:            date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Status:          model.AppointmentStatusPending,
		Type:            model.AppointmentType(req.Type),
		Notes:           req.Notes,
	}

	err = s.locker.WithBookingLock(ctx, doctorID, date, req.StartTime, func(lockCtx context.Context) error {
		// Re-check inside the critical section: another request may have
		// taken the slot between validation and lock acquisition.
		if err := s.validate(lockCtx, doctorID, date, booking, req.AllowDuplicate); err != nil {
			return err
		}
		return s.repo.Create(lockCtx, apt)
	})
	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return nil, ErrSlotBeingBooked
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, patient, apt, false)
	return apt, nil
}

// validate runs the scheduling core against freshly loaded rows and
// translates conflicts into a *ValidationError with alternatives.
func (s *Service) validate(ctx context.Context, doctorID uuid.UUID, date time.Time, booking scheduling.BookingRequest, allowDuplicate bool) error {
	tmpl, appts, blocks, err := s.dayInputs(ctx, doctorID, date)
	if err != nil {
		return err
	}

	result := scheduling.ValidateBooking(s.cfg, booking, tmpl, appts, blocks)
	if result.Valid && (allowDuplicate || !result.OnlySoft()) {
		return nil
	}

	suggestions, err := s.FindAvailableSlots(ctx, doctorID, date, suggestedSlotCount, booking.DurationMinutes)
	if err != nil {
		log.Warn().Err(err).
			Str("doctor_id", doctorID.String()).
			Str("date", date.Format("2006-01-02")).
			Msg("failed to compute suggested slots")
	}
	return &ValidationError{Result: result, Suggestions: suggestions}
}

// dayInputs loads the three collections the scheduling core needs for one
// calendar day.
func (s *Service) dayInputs(ctx context.Context, doctorID uuid.UUID, date time.Time) (*model.ScheduleTemplate, []*model.Appointment, []*model.TimeBlock, error) {
	tmpl, err := s.scheduleSvc.ActiveTemplate(ctx, doctorID, int(date.Weekday()))
	if err != nil {
		return nil, nil, nil, err
	}

	appts, err := s.repo.ListForDate(ctx, doctorID, date)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	blocks, err := s.scheduleSvc.BlocksInRange(ctx, doctorID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, nil, nil, err
	}

	return tmpl, appts, blocks, nil
}

// GetDaySlots returns every slot for the date plus suggested alternatives
// drawn from the following days.
func (s *Service) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date time.Time, suggestedCount int) ([]scheduling.Slot, []scheduling.Slot, error) {
	tmpl, appts, blocks, err := s.dayInputs(ctx, doctorID, date)
	if err != nil {
		return nil, nil, err
	}

	slots := scheduling.GenerateSlots(s.cfg, date, tmpl, appts, blocks, 0)

	var suggested []scheduling.Slot
	if suggestedCount > 0 {
		suggested, err = s.FindAvailableSlots(ctx, doctorID, date, suggestedCount, 0)
		if err != nil {
			return nil, nil, err
		}
	}
	return slots, suggested, nil
}

// FindAvailableSlots scans forward from date for the next count free slots.
func (s *Service) FindAvailableSlots(ctx context.Context, doctorID uuid.UUID, from time.Time, count, durationMinutes int) ([]scheduling.Slot, error) {
	week, err := s.scheduleSvc.WeekTemplate(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	horizon := s.cfg.HorizonDays
	if horizon <= 0 {
		horizon = 60
	}
	to := from.AddDate(0, 0, horizon)

	appts, err := s.repo.ListForRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	blocks, err := s.scheduleSvc.BlocksInRange(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}

	return scheduling.FindAvailableSlots(s.cfg, from, count, week, appts, blocks, durationMinutes), nil
}

// CheckAvailability reports whether the proposed time is bookable, with the
// full list of conflict messages when it is not.
func (s *Service) CheckAvailability(ctx context.Context, doctorID uuid.UUID, req *model.CheckAvailabilityRequest) (bool, []string, error) {
	date, err := s.ParseDate(req.Date)
	if err != nil {
		return false, nil, err
	}

	tmpl, appts, blocks, err := s.dayInputs(ctx, doctorID, date)
	if err != nil {
		return false, nil, err
	}

	result := scheduling.ValidateBooking(s.cfg, scheduling.BookingRequest{
		Date:            date,
		Time:            req.Time,
		DurationMinutes: req.Duration,
		ExcludeID:       req.ExcludeID,
	}, tmpl, appts, blocks)

	return result.Valid, result.Messages(), nil
}

func (s *Service) GetAppointment(ctx context.Context, doctorID, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if apt.DoctorID != doctorID {
		return nil, repository.ErrNotFound
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Reschedule moves an appointment to a new date/time, re-validating against
// every other non-cancelled appointment of that doctor.
func (s *Service) Reschedule(ctx context.Context, doctorID, id uuid.UUID, req *model.RescheduleAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.GetAppointment(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}
	if apt.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return nil, ErrCompletedImmutable
	}

	date, err := s.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	booking := scheduling.BookingRequest{
		Date:            date,
		Time:            req.StartTime,
		PatientID:       apt.PatientID,
		DurationMinutes: apt.DurationMinutes,
		ExcludeID:       &apt.ID,
	}
	if err := s.validate(ctx, doctorID, date, booking, true); err != nil {
		return nil, err
	}

	apt.Date = date
	apt.StartTime = req.StartTime

	err = s.locker.WithBookingLock(ctx, doctorID, date, req.StartTime, func(lockCtx context.Context) error {
		if err := s.validate(lockCtx, doctorID, date, booking, true); err != nil {
			return err
		}
		return s.repo.Update(lockCtx, apt)
	})
	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return nil, ErrSlotBeingBooked
	}
	if err != nil {
		return nil, err
	}
	return apt, nil
}

// statusOrder defines the forward-only lifecycle. Cancellation is handled
// separately.
var statusOrder = map[model.AppointmentStatus]int{
	model.AppointmentStatusPending:    0,
	model.AppointmentStatusConfirmed:  1,
	model.AppointmentStatusInProgress: 2,
	model.AppointmentStatusCompleted:  3,
}

// AdvanceStatus moves the appointment one or more steps forward in its
// lifecycle. Backward moves and transitions out of cancelled are rejected.
func (s *Service) AdvanceStatus(ctx context.Context, doctorID, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	apt, err := s.GetAppointment(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}
	if apt.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}

	from, ok := statusOrder[apt.Status]
	to, okTarget := statusOrder[target]
	if !ok || !okTarget || to <= from {
		return nil, ErrInvalidTransition
	}

	apt.Status = target
	if target == model.AppointmentStatusInProgress && apt.CheckedInAt == nil {
		now := time.Now()
		apt.CheckedInAt = &now
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return apt, nil
}

// CancelAppointment soft-deletes: the row stays, with status cancelled and
// the free-text reason recorded.
func (s *Service) CancelAppointment(ctx context.Context, doctorID, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.GetAppointment(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}
	if apt.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return nil, ErrCompletedImmutable
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancelReason = &reason

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if patient, perr := s.patientRepo.Get(ctx, apt.PatientID); perr == nil {
		s.notify(ctx, patient, apt, true)
	}
	return apt, nil
}

func (s *Service) notify(ctx context.Context, patient *model.Patient, apt *model.Appointment, cancelled bool) {
	if patient.GuardianEmail == "" {
		return
	}

	var err error
	if cancelled {
		err = s.emailSvc.SendAppointmentCancellation(ctx, patient.GuardianEmail, patient, apt)
	} else {
		err = s.emailSvc.SendAppointmentConfirmation(ctx, patient.GuardianEmail, patient, apt)
	}
	if err != nil {
		log.Warn().Err(err).
			Str("appointment_id", apt.ID.String()).
			Str("patient_id", patient.ID.String()).
			Msg("failed to send appointment notification")
	}
}
