package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pedassist/clinic-api/internal/config"
	"github.com/pedassist/clinic-api/internal/email"
	appointmentHandler "github.com/pedassist/clinic-api/internal/handler/appointment"
	authHandler "github.com/pedassist/clinic-api/internal/handler/auth"
	consultationHandler "github.com/pedassist/clinic-api/internal/handler/consultation"
	healthHandler "github.com/pedassist/clinic-api/internal/handler/health"
	patientHandler "github.com/pedassist/clinic-api/internal/handler/patient"
	scheduleHandler "github.com/pedassist/clinic-api/internal/handler/schedule"
	"github.com/pedassist/clinic-api/internal/middleware"
	redisclient "github.com/pedassist/clinic-api/internal/redis"
	"github.com/pedassist/clinic-api/internal/repository/postgres"
	"github.com/pedassist/clinic-api/internal/router"
	"github.com/pedassist/clinic-api/internal/scheduling"
	appointmentService "github.com/pedassist/clinic-api/internal/service/appointment"
	authService "github.com/pedassist/clinic-api/internal/service/auth"
	consultationService "github.com/pedassist/clinic-api/internal/service/consultation"
	patientService "github.com/pedassist/clinic-api/internal/service/patient"
	scheduleService "github.com/pedassist/clinic-api/internal/service/schedule"
	"github.com/pedassist/clinic-api/pkg/auth"
	"github.com/pedassist/clinic-api/pkg/security"
)

const bookingLockTTL = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redisclient.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	schedCfg, err := buildSchedulingConfig(cfg.Scheduling)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scheduling configuration")
	}

	// Repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.Expiry(), cfg.JWT.RefreshExpiry())
	authSvc := authService.NewService(doctorRepo, jwtSvc, security.NewBcryptHasher(0))
	patientSvc := patientService.NewService(patientRepo, schedCfg.Location)
	scheduleSvc := scheduleService.NewService(scheduleRepo)

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	}

	locker := redisclient.NewRedisBookingLocker(redisClient, bookingLockTTL)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, scheduleSvc, locker, emailSvc, schedCfg)
	consultationSvc := consultationService.NewService(consultationRepo, appointmentSvc)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		scheduleHandler.NewHandler(scheduleSvc),
		consultationHandler.NewHandler(consultationSvc),
		healthHandler.NewHandler(db, redisClient),
		router.RouterConfig{
			RateLimit:     50,
			RateBurst:     100,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "clinic_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// buildSchedulingConfig turns the yaml-level schedule strings into the
// parsed form the scheduling package works with.
func buildSchedulingConfig(cfg config.SchedulingConfig) (scheduling.Config, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return scheduling.Config{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	out := scheduling.DefaultConfig(loc)
	if cfg.SlotMinutes > 0 {
		out.SlotMinutes = cfg.SlotMinutes
	}
	if cfg.HorizonDays > 0 {
		out.HorizonDays = cfg.HorizonDays
	}

	for _, clock := range []struct {
		value  string
		target *int
	}{
		{cfg.DayStart, &out.Default.Start},
		{cfg.DayEnd, &out.Default.End},
		{cfg.LunchStart, &out.Default.BreakStart},
		{cfg.LunchEnd, &out.Default.BreakEnd},
	} {
		if clock.value == "" {
			continue
		}
		minutes, err := scheduling.ParseClock(clock.value)
		if err != nil {
			return scheduling.Config{}, fmt.Errorf("invalid schedule time %q: %w", clock.value, err)
		}
		*clock.target = minutes
	}

	if out.Default.End <= out.Default.Start {
		return scheduling.Config{}, fmt.Errorf("day_end must be after day_start")
	}
	return out, nil
}
