package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "order.completed")
const (
	// EventTypeCheckoutStarted is published when a checkout session is created
	// and its cards reserved.
	EventTypeCheckoutStarted = "checkout.started"

	// EventTypeReservationReleased is published when pending reservations are
	// released, either after a gateway failure or by the expiry sweep.
	EventTypeReservationReleased = "reservation.released"

	// EventTypeOrderCompleted is published when a paid checkout session has
	// been fulfilled.
	EventTypeOrderCompleted = "order.completed"

	// EventTypeNotificationFailed is published when a confirmation email could
	// not be sent. The sale has already committed, so this is the only signal
	// operators get about silent notification degradation.
	EventTypeNotificationFailed = "notification.failed"
)

// CheckoutStartedPayload is the typed payload for checkout.started events.
type CheckoutStartedPayload struct {
	SessionID string   `json:"session_id"`
	CardIDs   []string `json:"card_ids"`
	Timestamp int64    `json:"timestamp"`
}

// ReservationReleasedPayload is the typed payload for reservation.released events.
type ReservationReleasedPayload struct {
	CardIDs []string `json:"card_ids"`
	Reason  string   `json:"reason"` // "gateway_failure", "expired" or "conflict"
}

// OrderCompletedPayload is the typed payload for order.completed events.
type OrderCompletedPayload struct {
	OrderID          string   `json:"order_id"`
	ConfirmationCode string   `json:"confirmation_code"`
	CardIDs          []string `json:"card_ids"`
	AmountCents      int64    `json:"amount_cents"`
}

// NotificationFailedPayload is the typed payload for notification.failed events.
type NotificationFailedPayload struct {
	Recipient string `json:"recipient"`
	OrderID   string `json:"order_id"`
	Error     string `json:"error"`
}
