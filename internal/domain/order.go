package domain

import "time"

// ShippingNotProvided is the display value used when the payment
// processor delivers no shipping address.
const ShippingNotProvided = "Not provided"

// Order is the durable record written when a checkout session is paid.
// It exists so the operator can fulfil and audit sales; the checkout
// flow itself never reads orders back.
type Order struct {
	ID               string    `json:"id" db:"order_id"`
	SessionID        string    `json:"session_id" db:"session_id"`
	ConfirmationCode string    `json:"confirmation_code" db:"confirmation_code"`
	BuyerEmail       string    `json:"buyer_email" db:"buyer_email"`
	BuyerName        string    `json:"buyer_name" db:"buyer_name"`
	ShippingAddress  string    `json:"shipping_address" db:"shipping_address"`
	AmountCents      int64     `json:"amount_cents" db:"amount_cents"`
	CardIDs          []string  `json:"card_ids" db:"card_ids"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
