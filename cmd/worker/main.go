package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/healthapp-api/internal/config"
	"github.com/jwalitptl/healthapp-api/internal/email"
	"github.com/jwalitptl/healthapp-api/internal/repository/postgres"
	internalworker "github.com/jwalitptl/healthapp-api/internal/worker"
	"github.com/jwalitptl/healthapp-api/pkg/logger"
	"github.com/jwalitptl/healthapp-api/pkg/messaging"
	"github.com/jwalitptl/healthapp-api/pkg/messaging/redis"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
	"github.com/jwalitptl/healthapp-api/pkg/worker"
)

func main() {
	var (
		configPath string
		healthAddr string
	)

	root := &cobra.Command{
		Use:           "healthapp-worker",
		Short:         "Relays outbox events and mails the laboratory",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, healthAddr)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default ./config.yaml)")
	root.Flags().StringVar(&healthAddr, "health-addr", ":8081", "address for liveness and metrics endpoints")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("worker failed")
		os.Exit(1)
	}
}

func run(parent context.Context, cfg *config.Config, healthAddr string) error {
	l := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Pretty:  cfg.Log.Pretty,
		Service: "healthapp-worker",
	})
	log.Logger = l

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

	rawBroker, err := redis.NewRedisBroker(ctx, redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, l)
	if err != nil {
		return err
	}
	broker := messaging.NewBrokerAdapter(rawBroker)
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	processor, err := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		Lease:         cfg.Outbox.Lease,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
		MaxDeliveries: cfg.Outbox.MaxDeliveries,
	}, l, m)
	if err != nil {
		return fmt.Errorf("invalid outbox configuration: %w", err)
	}
	cleanup := internalworker.NewOutboxCleanupWorker(outboxRepo, cfg.Outbox.RetentionDays, cfg.Outbox.CleanupInterval, l, m)

	if cfg.SMTP.LabAddress != "" {
		mailer := email.NewLabMailer(
			broker,
			email.NewSMTPService(cfg.SMTP, m, l),
			cfg.SMTP.LabAddress,
			postgres.NewPatientRepository(db),
			postgres.NewDoctorRepository(db),
			l,
		)
		if err := mailer.Start(ctx); err != nil {
			return err
		}
	} else {
		l.Warn().Msg("smtp.lab_address not set, lab notifications will not be mailed")
	}

	health := startHealthServer(healthAddr, registry, l)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanup.Start(ctx)
	}()

	<-ctx.Done()
	l.Info().Msg("shutting down worker")
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return health.Shutdown(shutdownCtx)
}

func startHealthServer(addr string, gatherer prometheus.Gatherer, l zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("health server failed")
		}
	}()
	return srv
}
