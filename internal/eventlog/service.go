package eventlog

import (
	"context"
	"encoding/json"

	"github.com/slabworks/cardstand/internal/event"
	"github.com/slabworks/cardstand/internal/logger"
	"github.com/slabworks/cardstand/internal/repository"
)

// Service persists domain events so operators can audit checkout
// activity after the fact
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new event logging service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CheckoutStarted,
		event.ReservationReleased,
		event.OrderCompleted,
		event.NotificationFailed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent processes and logs events to the database
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := payloadAsMap(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotLoggable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), payload); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type)
	return nil
}

// payloadAsMap normalizes typed event payloads to maps. Payloads are
// either maps already or structs that marshal to JSON objects.
func payloadAsMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
