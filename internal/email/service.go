package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/pedassist/clinic-api/internal/config"
	"github.com/pedassist/clinic-api/internal/model"
)

// Service sends guardian-facing appointment notifications. Sending is
// best-effort: callers log failures but never fail the booking over them.
type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to string, patient *model.Patient, apt *model.Appointment) error
	SendAppointmentCancellation(ctx context.Context, to string, patient *model.Patient, apt *model.Appointment) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to string, patient *model.Patient, apt *model.Appointment) error {
	subject := fmt.Sprintf("Appointment confirmed for %s", patient.Name)
	body := fmt.Sprintf(
		"Hello %s,<br><br>The appointment for %s is scheduled on <b>%s</b> at <b>%s</b>.<br><br>Please arrive 10 minutes early.",
		patient.GuardianName, patient.Name, apt.Date.Format("02/01/2006"), apt.StartTime,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendAppointmentCancellation(ctx context.Context, to string, patient *model.Patient, apt *model.Appointment) error {
	subject := fmt.Sprintf("Appointment cancelled for %s", patient.Name)
	body := fmt.Sprintf(
		"Hello %s,<br><br>The appointment for %s on %s at %s has been cancelled.<br>Please contact the clinic to rebook.",
		patient.GuardianName, patient.Name, apt.Date.Format("02/01/2006"), apt.StartTime,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopService is used when SMTP is not configured.
type NoopService struct{}

func (NoopService) SendAppointmentConfirmation(context.Context, string, *model.Patient, *model.Appointment) error {
	return nil
}

func (NoopService) SendAppointmentCancellation(context.Context, string, *model.Patient, *model.Appointment) error {
	return nil
}
