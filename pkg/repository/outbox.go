package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/healthapp-api/internal/model"
)

// OutboxRepository is the slice of the outbox store the publisher needs.
type OutboxRepository interface {
	ClaimPendingEvents(ctx context.Context, limit int, lease time.Duration) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
}
