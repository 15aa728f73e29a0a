package domain

import "time"

// CardStatus governs whether a card can be purchased.
type CardStatus string

const (
	// StatusAvailable means the card can enter a new checkout.
	StatusAvailable CardStatus = "available"
	// StatusPending means the card is held by an in-flight checkout
	// until PendingUntil elapses.
	StatusPending CardStatus = "pending"
	// StatusSold is terminal. A sold card never returns to the shop
	// through the checkout flow.
	StatusSold CardStatus = "sold"
)

// Card represents a single listed trading card. Cards are unique,
// non-fungible inventory: two copies of the same print are two rows.
type Card struct {
	ID           string     `json:"id" db:"card_id"`
	Name         string     `json:"name" db:"card_name"`
	SetName      string     `json:"set_name" db:"set_name"`
	Condition    string     `json:"condition" db:"condition"`
	Grading      string     `json:"grading,omitempty" db:"grading"`
	PriceCents   int64      `json:"price_cents" db:"price_cents"`
	Status       CardStatus `json:"status" db:"status"`
	PendingUntil *time.Time `json:"pending_until,omitempty" db:"pending_until"`
	ImageKey     string     `json:"image_key,omitempty" db:"image_key"`
	Tags         []string   `json:"tags,omitempty" db:"tags"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// AvailableAt reports whether the card can be reserved at the given
// instant. A pending card whose reservation window has lapsed reads as
// available even though the row has not been rewritten yet (lazy
// reconciliation); the corrective write happens on the next reserve or
// sweep.
func (c *Card) AvailableAt(now time.Time) bool {
	switch c.Status {
	case StatusAvailable:
		return true
	case StatusPending:
		return c.PendingUntil == nil || !c.PendingUntil.After(now)
	default:
		return false
	}
}

// Purchasable reports whether the card could ever be sold: it must have
// a positive price and not already be sold.
func (c *Card) Purchasable() bool {
	return c.Status != StatusSold && c.PriceCents > 0
}
