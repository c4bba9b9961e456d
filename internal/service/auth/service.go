package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedassist/clinic-api/internal/model"
	"github.com/pedassist/clinic-api/internal/repository"
	"github.com/pedassist/clinic-api/pkg/auth"
	"github.com/pedassist/clinic-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	doctorRepo repository.DoctorRepository
	jwtSvc     auth.JWTService
	hasher     security.PasswordHasher
}

func NewService(doctorRepo repository.DoctorRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		doctorRepo: doctorRepo,
		jwtSvc:     jwtSvc,
		hasher:     hasher,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(doctor.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	doctor.LastLoginAt = &now
	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	return s.generateTokens(doctor)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, claims.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	return s.generateTokens(doctor)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

func (s *Service) generateTokens(doctor *model.Doctor) (*model.TokenResponse, error) {
	access, expiresAt, err := s.jwtSvc.GenerateAccessToken(doctor.ID, doctor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwtSvc.GenerateRefreshToken(doctor.ID, doctor.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}
