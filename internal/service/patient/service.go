package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
)

type Service struct {
	repo repository.PatientRepository
	loc  *time.Location
}

func NewService(repo repository.PatientRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc}
}

func (s *Service) CreatePatient(ctx context.Context, doctorID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error) {
	birthDate, err := time.ParseInLocation("2006-01-02", req.BirthDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q: expected YYYY-MM-DD", req.BirthDate)
	}
	if birthDate.After(time.Now().In(s.loc)) {
		return nil, fmt.Errorf("birth date cannot be in the future")
	}

	patient := &model.Patient{
		DoctorID:      doctorID,
		Name:          req.Name,
		BirthDate:     birthDate,
		Gender:        req.Gender,
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		GuardianEmail: req.GuardianEmail,
		Allergies:     req.Allergies,
		Notes:         req.Notes,
		Status:        model.PatientStatusActive,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, doctorID, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	if patient.DoctorID != doctorID {
		return nil, repository.ErrNotFound
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, doctorID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.GetPatient(ctx, doctorID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.GuardianName != nil {
		patient.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		patient.GuardianPhone = *req.GuardianPhone
	}
	if req.GuardianEmail != nil {
		patient.GuardianEmail = *req.GuardianEmail
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	if req.Status != nil {
		patient.Status = model.PatientStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Age computes the patient's age in whole years and remaining months as of
// the given reference time, in the clinic's timezone.
func (s *Service) Age(patient *model.Patient, at time.Time) model.Age {
	birth := patient.BirthDate.In(s.loc)
	now := at.In(s.loc)
	if now.Before(birth) {
		return model.Age{}
	}

	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	return model.Age{Years: years, Months: months}
}
