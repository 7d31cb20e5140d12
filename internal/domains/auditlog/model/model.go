package model

import (
	"encoding/json"
	"fmt"
	"time"

	"pms/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "audit_logs"
	EntityName = "audit log"

	FieldID = "id"
)

const (
	EventNightAuditRun = "night_audit_run"
)

// AuditLog is an append-only record of an operator action.
type AuditLog struct {
	ID         string         `db:"id"`
	EventType  string         `db:"event_type"`
	EntityType string         `db:"entity_type"`
	EntityID   string         `db:"entity_id"`
	Actor      string         `db:"actor"`
	Payload    types.JSONText `db:"payload"`
	CreatedAt  time.Time      `db:"created_at"`
}

func New(eventType, entityType, entityID, actor string, payload any) (AuditLog, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return AuditLog{}, fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	return AuditLog{
		ID:         uuid.NewString(),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Payload:    types.JSONText(raw),
		CreatedAt:  timezone.Now(),
	}, nil
}
