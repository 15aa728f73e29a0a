package notify

import (
	"context"

	"github.com/slabworks/cardstand/internal/domain"
)

// Notifier delivers order notifications. Failures are reported to the
// caller but never block fulfillment; the order record is the source of
// truth, mail is best effort.
type Notifier interface {
	// SendBuyerConfirmation mails the order confirmation to the buyer.
	SendBuyerConfirmation(ctx context.Context, order *domain.Order, cards []domain.Card) error

	// SendOperatorNotification mails the shop operator about a new sale.
	SendOperatorNotification(ctx context.Context, order *domain.Order, cards []domain.Card) error
}
