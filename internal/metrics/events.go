package metrics

import (
	"context"

	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/event"
	"github.com/slabworks/cardstand/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CheckoutStarted,
		event.ReservationReleased,
		event.OrderCompleted,
		event.NotificationFailed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CheckoutStarted:
		payload, err := event.DecodePayload[domain.CheckoutStartedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		CheckoutsStarted.Inc()
		CardsReserved.Add(float64(len(payload.CardIDs)))

	case event.ReservationReleased:
		payload, err := event.DecodePayload[domain.ReservationReleasedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ReservationsReleased.WithLabelValues(payload.Reason).Add(float64(len(payload.CardIDs)))

	case event.OrderCompleted:
		payload, err := event.DecodePayload[domain.OrderCompletedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		OrdersCompleted.Inc()
		CardsSold.Add(float64(len(payload.CardIDs)))
		RevenueCents.Add(float64(payload.AmountCents))

	case event.NotificationFailed:
		NotificationFailures.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
