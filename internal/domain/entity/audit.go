package entity

import (
	"encoding/json"
	"time"
)

// Eventos de auditoría.
const (
	AuditCreated   = "created"
	AuditVoided    = "voided"
	AuditCompleted = "completed"
	AuditPaid      = "paid"
)

// Tipos de entidad auditada.
const (
	AuditEntityDocument   = "document"
	AuditEntityPayment    = "payment"
	AuditEntityAdjustment = "adjustment"
	AuditEntitySequence   = "fiscal_sequence"
	AuditEntityProduct    = "product"
)

// AuditEntry fila de auditoría escrita en la misma transacción del cambio.
type AuditEntry struct {
	ID         string
	EntityKind string
	EntityID   string
	Event      string
	OldValues  json.RawMessage
	NewValues  json.RawMessage
	UserID     string
	IP         string
	UserAgent  string
	CreatedAt  time.Time
}

// NewAuditEntry arma una entrada con los datos del actor; old/new se serializan a JSON.
func NewAuditEntry(id string, actor ActorContext, kind, entityID, event string, oldValues, newValues any, now time.Time) *AuditEntry {
	return &AuditEntry{
		ID:         id,
		EntityKind: kind,
		EntityID:   entityID,
		Event:      event,
		OldValues:  marshalAudit(oldValues),
		NewValues:  marshalAudit(newValues),
		UserID:     actor.UserID,
		IP:         actor.IP,
		UserAgent:  actor.UserAgent,
		CreatedAt:  now,
	}
}

func marshalAudit(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
