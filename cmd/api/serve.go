package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/healthapp-api/internal/calendar"
	"github.com/jwalitptl/healthapp-api/internal/config"
	appointmentHandler "github.com/jwalitptl/healthapp-api/internal/handler/appointment"
	assignmentHandler "github.com/jwalitptl/healthapp-api/internal/handler/assignment"
	auditHandler "github.com/jwalitptl/healthapp-api/internal/handler/audit"
	authHandler "github.com/jwalitptl/healthapp-api/internal/handler/auth"
	consultationHandler "github.com/jwalitptl/healthapp-api/internal/handler/consultation"
	doctorHandler "github.com/jwalitptl/healthapp-api/internal/handler/doctor"
	healthHandler "github.com/jwalitptl/healthapp-api/internal/handler/health"
	patientHandler "github.com/jwalitptl/healthapp-api/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/healthapp-api/internal/handler/prescription"
	reportHandler "github.com/jwalitptl/healthapp-api/internal/handler/report"
	"github.com/jwalitptl/healthapp-api/internal/middleware"
	"github.com/jwalitptl/healthapp-api/internal/repository/postgres"
	"github.com/jwalitptl/healthapp-api/internal/router"
	"github.com/jwalitptl/healthapp-api/internal/service/appointment"
	"github.com/jwalitptl/healthapp-api/internal/service/assignment"
	"github.com/jwalitptl/healthapp-api/internal/service/audit"
	authService "github.com/jwalitptl/healthapp-api/internal/service/auth"
	"github.com/jwalitptl/healthapp-api/internal/service/consultation"
	"github.com/jwalitptl/healthapp-api/internal/service/directory"
	"github.com/jwalitptl/healthapp-api/internal/service/patient"
	"github.com/jwalitptl/healthapp-api/internal/service/prescription"
	"github.com/jwalitptl/healthapp-api/internal/service/report"
	"github.com/jwalitptl/healthapp-api/pkg/auth"
	"github.com/jwalitptl/healthapp-api/pkg/logger"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
	"github.com/jwalitptl/healthapp-api/pkg/security"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newLogger(cfg *config.Config, service string) zerolog.Logger {
	l := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Pretty:  cfg.Log.Pretty,
		Service: service,
	})
	log.Logger = l
	return l
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := newLogger(cfg, "healthapp-api")

	if logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(cfg.Metrics.Namespace, registry)

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	pharmacyRepo := postgres.NewPharmacyRepository(db)
	profileRepo := postgres.NewDoctorProfileRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	caregiverRepo := postgres.NewCaregiverRepository(db)
	diseaseRepo := postgres.NewChronicDiseaseRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	reportRepo := postgres.NewTestReportRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	auditor := audit.NewService(auditRepo, logger)
	authSvc := authService.NewService(patientRepo, doctorRepo, pharmacyRepo, security.NewBcryptHasher(0), jwtSvc, cfg.Admin, logger)
	assignmentSvc := assignment.NewService(assignmentRepo, doctorRepo, patientRepo, logger)
	directorySvc := directory.NewService(doctorRepo, profileRepo, cfg.Cache.DoctorTTL, cfg.Cache.CleanupInterval, auditor, m, logger)
	patientSvc := patient.NewService(patientRepo, caregiverRepo, diseaseRepo, assignmentSvc, logger)
	appointmentSvc := appointment.NewService(appointmentRepo, doctorRepo, auditor, m, logger)
	// Token refreshes outlive the signal context so in-flight bookings can finish during shutdown.
	calendarClient, err := calendar.NewGoogleClient(parent, cfg.Calendar, m, logger)
	if err != nil {
		return err
	}
	consultationSvc := consultation.NewService(consultationRepo, doctorRepo, calendarClient, auditor, m, logger)
	prescriptionSvc := prescription.NewService(prescriptionRepo, appointmentRepo, auditor, logger)
	reportSvc := report.NewService(reportRepo, assignmentRepo, auditor, m, logger)

	if err := middleware.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	r := router.NewRouter(
		middleware.NewAuthMiddleware(jwtSvc),
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db, registry),
		[]router.Handler{
			doctorHandler.NewHandler(directorySvc),
			patientHandler.NewHandler(patientSvc),
			assignmentHandler.NewHandler(assignmentSvc),
			appointmentHandler.NewHandler(appointmentSvc),
			consultationHandler.NewHandler(consultationSvc),
			prescriptionHandler.NewHandler(prescriptionSvc),
			reportHandler.NewHandler(reportSvc),
			auditHandler.NewHandler(auditor),
		},
		m,
		logger,
		router.RouterConfig{
			RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:      cfg.RateLimit.Burst,
			RateIdleExpiry: cfg.RateLimit.IdleExpiry,
			CORSConfig:     middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins),
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			RequestTimeout: cfg.Server.WriteTimeout,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info().Msg("server exited")
	return nil
}
