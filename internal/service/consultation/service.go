package consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
	appointmentSvc "github.com/pedassist/clinic-api/internal/service/appointment"
)

var (
	ErrAlreadyStarted   = errors.New("a consultation already exists for this appointment")
	ErrAlreadyCompleted = errors.New("consultation is already completed")
)

type Service struct {
	repo   repository.ConsultationRepository
	aptSvc *appointmentSvc.Service
}

func NewService(repo repository.ConsultationRepository, aptSvc *appointmentSvc.Service) *Service {
	return &Service{repo: repo, aptSvc: aptSvc}
}

// StartConsultation opens the clinical record for an appointment and moves
// the appointment to in_progress, stamping the check-in time.
func (s *Service) StartConsultation(ctx context.Context, doctorID uuid.UUID, req *model.StartConsultationRequest) (*model.Consultation, error) {
	if _, err := s.repo.GetByAppointment(ctx, req.AppointmentID); err == nil {
		return nil, ErrAlreadyStarted
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	apt, err := s.aptSvc.AdvanceStatus(ctx, doctorID, req.AppointmentID, model.AppointmentStatusInProgress)
	if err != nil {
		return nil, err
	}

	consultation := &model.Consultation{
		AppointmentID:  apt.ID,
		DoctorID:       doctorID,
		PatientID:      apt.PatientID,
		ChiefComplaint: req.ChiefComplaint,
		Status:         model.ConsultationStatusOpen,
	}
	if err := s.repo.Create(ctx, consultation); err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}
	return consultation, nil
}

func (s *Service) GetConsultation(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	if consultation.DoctorID != doctorID {
		return nil, repository.ErrNotFound
	}
	return consultation, nil
}

func (s *Service) UpdateConsultation(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdateConsultationRequest) (*model.Consultation, error) {
	consultation, err := s.GetConsultation(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}
	if consultation.Status == model.ConsultationStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	if req.ChiefComplaint != nil {
		consultation.ChiefComplaint = *req.ChiefComplaint
	}
	if req.Notes != nil {
		consultation.Notes = *req.Notes
	}
	if req.Diagnosis != nil {
		consultation.Diagnosis = *req.Diagnosis
	}

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, fmt.Errorf("failed to update consultation: %w", err)
	}
	return consultation, nil
}

// CompleteConsultation closes the record and advances the appointment to
// completed.
func (s *Service) CompleteConsultation(ctx context.Context, doctorID, id uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.GetConsultation(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}
	if consultation.Status == model.ConsultationStatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	now := time.Now()
	consultation.Status = model.ConsultationStatusCompleted
	consultation.CompletedAt = &now

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, fmt.Errorf("failed to complete consultation: %w", err)
	}

	if _, err := s.aptSvc.AdvanceStatus(ctx, doctorID, consultation.AppointmentID, model.AppointmentStatusCompleted); err != nil {
		return nil, err
	}
	return consultation, nil
}

// ListForPatient returns the patient's consultation history, restricted to
// the requesting doctor's own records.
func (s *Service) ListForPatient(ctx context.Context, doctorID, patientID uuid.UUID) ([]*model.Consultation, error) {
	consultations, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}

	owned := make([]*model.Consultation, 0, len(consultations))
	for _, c := range consultations {
		if c.DoctorID == doctorID {
			owned = append(owned, c)
		}
	}
	return owned, nil
}
