package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

const maxListLimit = 500

type Service struct {
	repo   repository.AuditRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo repository.AuditRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "audit").Logger(),
		now:    time.Now,
	}
}

// Entry describes one audited change.
type Entry struct {
	EntityType string
	EntityID   int64
	Action     string
	Actor      model.Actor
	From       string
	To         string
	Metadata   interface{}
}

// Record persists e. The audited change has already been committed, so a failed write is logged
// and never returned to the caller.
func (s *Service) Record(ctx context.Context, e Entry) {
	if err := s.Log(ctx, e); err != nil {
		s.logger.Error().Err(err).
			Str("entity_type", e.EntityType).
			Int64("entity_id", e.EntityID).
			Str("action", e.Action).
			Msg("failed to write audit log")
	}
}

// Log creates an audit log entry
func (s *Service) Log(ctx context.Context, e Entry) error {
	var metadata json.RawMessage
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
		metadata = raw
	}

	entry := &model.AuditLog{
		ID:         uuid.New(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		ActorRole:  e.Actor.Role,
		ActorID:    e.Actor.ID,
		FromStatus: optional(e.From),
		ToStatus:   optional(e.To),
		Metadata:   metadata,
		CreatedAt:  s.now().UTC(),
	}
	return s.repo.Create(ctx, entry)
}

func (s *Service) List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error) {
	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, apperrors.BadRequest("limit must be between 1 and 500", nil)
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return logs, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
