package payment

import "context"

// LineItem is one purchasable row on a checkout session.
type LineItem struct {
	Name        string
	Description string
	AmountCents int64
	Quantity    int64
}

// SessionRequest carries everything needed to open a hosted checkout
// session. CardIDs travel as session metadata so the completed-payment
// webhook can map the session back to inventory.
type SessionRequest struct {
	LineItems  []LineItem
	Currency   string
	CardIDs    []string
	SuccessURL string
	CancelURL  string
}

// Session is the created hosted session the buyer gets redirected to.
type Session struct {
	ID  string
	URL string
}

// CompletedCheckout is the normalized view of a paid session extracted
// from a verified webhook event.
type CompletedCheckout struct {
	SessionID       string
	PaymentStatus   string
	AmountCents     int64
	BuyerEmail      string
	BuyerName       string
	ShippingAddress string
	CardIDs         []string
}

// Event is a verified webhook delivery. Checkout is populated only for
// completed checkout sessions; other event types carry just the Type so
// callers can acknowledge and ignore them.
type Event struct {
	Type     string
	Checkout *CompletedCheckout
}

// Gateway abstracts the payment processor so services and tests do not
// depend on the Stripe SDK directly.
type Gateway interface {
	// CreateSession opens a hosted checkout session and returns its
	// redirect URL.
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)

	// VerifyEvent checks the webhook signature over the raw payload and
	// decodes the event. Returns domain.ErrSignatureInvalid when the
	// signature does not verify.
	VerifyEvent(payload []byte, sigHeader string) (*Event, error)
}
