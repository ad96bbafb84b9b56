package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/repository"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
)

// OutboxCleanupWorker deletes processed outbox events older than the retention window.
type OutboxCleanupWorker struct {
	repo            repository.OutboxRepository
	retentionDays   int
	cleanupInterval time.Duration
	logger          zerolog.Logger
	metrics         *metrics.Metrics
	now             func() time.Time
}

func NewOutboxCleanupWorker(
	repo repository.OutboxRepository,
	retentionDays int,
	cleanupInterval time.Duration,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *OutboxCleanupWorker {
	return &OutboxCleanupWorker{
		repo:            repo,
		retentionDays:   retentionDays,
		cleanupInterval: cleanupInterval,
		logger:          logger.With().Str("component", "outbox-cleanup").Logger(),
		metrics:         metrics,
		now:             time.Now,
	}
}

func (w *OutboxCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Cleanup(ctx); err != nil {
				w.logger.Error().Err(err).Msg("outbox cleanup failed")
			}
		}
	}
}

func (w *OutboxCleanupWorker) Cleanup(ctx context.Context) (int64, error) {
	cutoff := w.now().AddDate(0, 0, -w.retentionDays)

	rows, err := w.repo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup outbox events: %w", err)
	}

	w.metrics.OutboxEventsPurged.Add(float64(rows))
	w.logger.Info().Int64("deleted", rows).Time("cutoff", cutoff).Msg("cleaned up processed outbox events")
	return rows, nil
}
