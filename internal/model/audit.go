package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   int64           `json:"entity_id" db:"entity_id"`
	Action     string          `json:"action" db:"action"`
	ActorRole  Role            `json:"actor_role" db:"actor_role"`
	ActorID    int64           `json:"actor_id" db:"actor_id"`
	FromStatus *string         `json:"from_status,omitempty" db:"from_status"`
	ToStatus   *string         `json:"to_status,omitempty" db:"to_status"`
	Metadata   json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type AuditFilter struct {
	EntityType string
	EntityID   int64
	Limit      int
}

const (
	// Action types
	AuditActionTransition   = "transition"
	AuditActionStatusChange = "status_change"
	AuditActionCreate       = "create"
	AuditActionDelete       = "delete"

	// Entity types
	AuditEntityAppointment     = "appointment"
	AuditEntityConsultation    = "consultation"
	AuditEntityPrescription    = "prescription"
	AuditEntityDoctor          = "doctor"
	AuditEntityTestReport      = "test_report"
	AuditEntityLabNotification = "lab_notification"
)
