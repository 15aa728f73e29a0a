package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slabworks/cardstand/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published by the shop
const (
	CheckoutStarted     Type = domain.EventTypeCheckoutStarted
	ReservationReleased Type = domain.EventTypeReservationReleased
	OrderCompleted      Type = domain.EventTypeOrderCompleted
	NotificationFailed  Type = domain.EventTypeNotificationFailed
)

// Release reasons carried on reservation.released events
const (
	ReleaseReasonGatewayFailure = "gateway_failure"
	ReleaseReasonExpired        = "expired"
	ReleaseReasonConflict       = "conflict"
)

// Type-safe event constructors

// NewCheckoutStartedEvent creates an event for a freshly opened checkout session
func NewCheckoutStartedEvent(sessionID string, cardIDs []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CheckoutStarted,
		Payload: domain.CheckoutStartedPayload{
			SessionID: sessionID,
			CardIDs:   cardIDs,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewReservationReleasedEvent creates an event for cards returned to the shop
func NewReservationReleasedEvent(cardIDs []string, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ReservationReleased,
		Payload: domain.ReservationReleasedPayload{
			CardIDs: cardIDs,
			Reason:  reason,
		},
		Metadata: map[string]interface{}{
			"reason": reason,
		},
	}
}

// NewOrderCompletedEvent creates an event for a fulfilled order
func NewOrderCompletedEvent(orderID, confirmationCode string, cardIDs []string, amountCents int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OrderCompleted,
		Payload: domain.OrderCompletedPayload{
			OrderID:          orderID,
			ConfirmationCode: confirmationCode,
			CardIDs:          cardIDs,
			AmountCents:      amountCents,
		},
		Metadata: nil,
	}
}

// NewNotificationFailedEvent creates an event for a confirmation mail that
// could not be delivered. The order itself has already committed.
func NewNotificationFailedEvent(recipient, orderID string, cause error) Event {
	payload := domain.NotificationFailedPayload{
		Recipient: recipient,
		OrderID:   orderID,
	}
	if cause != nil {
		payload.Error = cause.Error()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     NotificationFailed,
		Payload:  payload,
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; slow consumers belong on the worker pool.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
