package repository

import (
	"context"
	"time"
)

// LoggedEvent is a persisted domain event, kept so operators can audit
// checkout activity and detect silently degraded side effects.
type LoggedEvent struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventLog defines the interface for event persistence
type EventLog interface {
	LogEvent(ctx context.Context, eventType string, payload map[string]interface{}) error
	GetEventsByType(ctx context.Context, eventType string, limit int) ([]LoggedEvent, error)
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
