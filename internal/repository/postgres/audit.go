package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/healthapp-api/internal/model"
	"github.com/jwalitptl/healthapp-api/internal/repository"
)

const defaultAuditLimit = 100

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{NewBaseRepository(db)}
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	metadata := log.Metadata
	if metadata == nil {
		metadata = []byte("{}")
	}

	query := `
		INSERT INTO audit_logs (
			id, entity_type, entity_id, action, actor_role, actor_id,
			from_status, to_status, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.EntityType,
		log.EntityID,
		log.Action,
		log.ActorRole,
		log.ActorID,
		log.FromStatus,
		log.ToStatus,
		[]byte(metadata),
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}

	ds := r.dialect.From("audit_logs").
		Select("id", "entity_type", "entity_id", "action", "actor_role", "actor_id",
			"from_status", "to_status", "metadata", "created_at").
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		Prepared(true)

	where := goqu.Ex{}
	if filter.EntityType != "" {
		where["entity_type"] = filter.EntityType
	}
	if filter.EntityID > 0 {
		where["entity_id"] = filter.EntityID
	}
	if len(where) > 0 {
		ds = ds.Where(where)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit query: %w", err)
	}

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return nonNil(logs), nil
}
