package database

import (
	"time"

	"github.com/devusSs/court-kraken/internal/types"
)

// Service layer for the audit log storage.
type Service interface {
	Ping() error
	Close() error
	Migrate() error

	AddAuditEvent(AuditEvent) (AuditEvent, error)
	GetAuditEvents(action types.EventType, limit int) ([]AuditEvent, error)
}

// Model for audit events like disemvowel, gimp or webhook deliveries.
//
// Data holds a JSON encoded types.AuditData.
type AuditEvent struct {
	ID        int             `db:"id"`
	Type      types.EventType `db:"event_type"`
	Data      string          `db:"event_data"`
	Timestamp time.Time       `db:"event_time"`
}
