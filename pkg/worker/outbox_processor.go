package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/pkg/messaging"
	"github.com/jwalitptl/healthapp-api/pkg/metrics"
	"github.com/jwalitptl/healthapp-api/pkg/repository"
)

type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	// Lease keeps claimed events away from other processors while they are published.
	Lease         time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	// MaxDeliveries is the number of polls an event may fail before it is marked failed.
	MaxDeliveries int
}

type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.MessageBroker
	config  OutboxProcessorConfig
	logger  zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.MessageBroker,
	config OutboxProcessorConfig,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) (*OutboxProcessor, error) {
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		return nil, fmt.Errorf("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		return nil, fmt.Errorf("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay <= 0 {
		return nil, fmt.Errorf("RetryDelay must be greater than 0")
	}
	if config.MaxDeliveries <= 0 {
		config.MaxDeliveries = 1
	}
	if config.Lease <= 0 {
		config.Lease = 30 * time.Second
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		config:  config,
		logger:  logger.With().Str("component", "outbox-processor").Logger(),
		metrics: metrics,
		now:     time.Now,
	}, nil
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info().Msg("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("shutting down outbox processor")
			return
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error().Err(err).Msg("failed to process events")
			}
		}
	}
}

// ProcessBatch publishes one batch of due events and returns how many were delivered.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) (int, error) {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.ClaimPendingEvents(ctx, p.config.BatchSize, p.config.Lease)
	if err != nil {
		return 0, fmt.Errorf("failed to claim pending events: %w", err)
	}

	delivered := 0
	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.Error().Err(err).
				Str("event_id", event.ID.String()).
				Str("event_type", event.EventType).
				Msg("failed to process event")
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	attempts := 0
	publish := func() error {
		attempts++
		return p.broker.Publish(ctx, messaging.Topic(event.EventType), event.Payload)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.config.RetryDelay
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.config.RetryAttempts-1)), ctx)

	err := backoff.Retry(publish, policy)
	if attempts > 1 {
		p.metrics.OutboxRetries.WithLabelValues(event.EventType).Add(float64(attempts - 1))
	}
	if err != nil {
		return p.recordFailure(ctx, event, err)
	}

	p.metrics.OutboxEventsProcessed.Inc()
	if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusProcessed, nil, nil); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

// recordFailure schedules another delivery with a growing delay, or marks the event failed once
// MaxDeliveries is reached.
func (p *OutboxProcessor) recordFailure(ctx context.Context, event *model.OutboxEvent, cause error) error {
	errStr := cause.Error()

	if event.RetryCount+1 >= p.config.MaxDeliveries {
		p.metrics.OutboxEventsFailed.Inc()
		if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusFailed, &errStr, nil); err != nil {
			p.logger.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to update event status")
		}
		return cause
	}

	delay := p.config.RetryDelay * time.Duration(1<<uint(event.RetryCount))
	retryAt := p.now().Add(delay)
	if err := p.repo.UpdateStatus(ctx, event.ID, model.OutboxStatusRetry, &errStr, &retryAt); err != nil {
		p.logger.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to update event status")
	}
	return cause
}
