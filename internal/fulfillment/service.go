package fulfillment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/event"
	"github.com/slabworks/cardstand/internal/logger"
	"github.com/slabworks/cardstand/internal/metrics"
	"github.com/slabworks/cardstand/internal/notify"
	"github.com/slabworks/cardstand/internal/payment"
	"github.com/slabworks/cardstand/internal/repository"
)

// paymentStatusPaid is the gateway's payment status for settled sessions.
const paymentStatusPaid = "paid"

// confirmationCodeBytes sizes the random confirmation code (2 hex chars per byte).
const confirmationCodeBytes = 4

// Service turns verified payment webhooks into fulfilled orders: cards
// flip to sold, an order row is written, and notifications go out.
type Service interface {
	// ProcessWebhook verifies and applies one webhook delivery. Returns
	// domain.ErrSignatureInvalid for forged deliveries; redelivered
	// events for already-fulfilled sessions succeed without side effects.
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error

	// Shutdown waits for in-flight notification sends.
	Shutdown(ctx context.Context) error
}

type service struct {
	gateway   payment.Gateway
	catalog   repository.Catalog
	orders    repository.Order
	notifier  notify.Notifier
	publisher event.Bus
	wg        sync.WaitGroup
}

// NewService creates a new fulfillment service. notifier may be nil when
// no SMTP is configured; orders then complete without mail.
func NewService(gateway payment.Gateway, catalog repository.Catalog, orders repository.Order, notifier notify.Notifier, publisher event.Bus) Service {
	return &service{
		gateway:   gateway,
		catalog:   catalog,
		orders:    orders,
		notifier:  notifier,
		publisher: publisher,
	}
}

func (s *service) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	log := logger.FromContext(ctx)

	ev, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		if errors.Is(err, domain.ErrSignatureInvalid) {
			metrics.WebhookRejected.Inc()
			log.Warn("Webhook signature rejected")
		}
		return err
	}

	metrics.WebhookEvents.WithLabelValues(ev.Type).Inc()

	if ev.Checkout == nil {
		log.Debug("Ignoring webhook event", "type", ev.Type)
		return nil
	}

	checkout := ev.Checkout
	log = log.With("session_id", checkout.SessionID)

	if checkout.PaymentStatus != paymentStatusPaid {
		log.Info("Session completed without settled payment", "payment_status", checkout.PaymentStatus)
		return nil
	}

	// Redelivery check before any write. The unique session constraint
	// on orders backstops this if two deliveries race past it.
	if existing, err := s.orders.GetOrderBySessionID(ctx, checkout.SessionID); err == nil {
		log.Info("Session already fulfilled", "order_id", existing.ID)
		return nil
	} else if !errors.Is(err, domain.ErrOrderNotFound) {
		return fmt.Errorf("failed to check for existing order: %w", err)
	}

	if len(checkout.CardIDs) == 0 {
		log.Error("Paid session carries no card ids")
		return fmt.Errorf("%w: session %s has no card ids", domain.ErrMalformedPayload, checkout.SessionID)
	}

	sold, err := s.catalog.MarkCardsSold(ctx, checkout.CardIDs)
	if err != nil {
		log.Error("Failed to mark cards sold", "error", err)
		return fmt.Errorf("failed to mark cards sold: %w", err)
	}
	if len(sold) != len(checkout.CardIDs) {
		// cards deleted or already sold since the session opened; the
		// order still records what the buyer paid for
		log.Warn("Some session cards could not be flipped",
			"requested", len(checkout.CardIDs), "flipped", len(sold))
	}

	order := &domain.Order{
		SessionID:        checkout.SessionID,
		ConfirmationCode: newConfirmationCode(),
		BuyerEmail:       checkout.BuyerEmail,
		BuyerName:        checkout.BuyerName,
		ShippingAddress:  checkout.ShippingAddress,
		AmountCents:      checkout.AmountCents,
		CardIDs:          checkout.CardIDs,
	}
	if order.ShippingAddress == "" {
		order.ShippingAddress = domain.ShippingNotProvided
	}

	created, err := s.orders.InsertOrder(ctx, order)
	if err != nil {
		log.Error("Failed to insert order", "error", err)
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := s.publisher.Publish(ctx, event.NewOrderCompletedEvent(
		created.ID, created.ConfirmationCode, created.CardIDs, created.AmountCents)); err != nil {
		log.Warn("Failed to publish order event", "error", err)
	}

	log.Info("Order fulfilled",
		"order_id", created.ID,
		"confirmation_code", created.ConfirmationCode,
		"cards", len(created.CardIDs),
		"amount_cents", created.AmountCents)

	if s.notifier != nil {
		s.wg.Add(1)
		go s.sendNotifications(context.Background(), created)
	}

	return nil
}

// sendNotifications mails the buyer and the operator. The order has
// already committed, so failures are logged and published, never
// propagated.
// NOTE: Caller must call s.wg.Add(1) before launching this in a goroutine
func (s *service) sendNotifications(ctx context.Context, order *domain.Order) {
	defer s.wg.Done()
	log := logger.FromContext(ctx).With("order_id", order.ID)

	cards, err := s.catalog.GetCardsByIDs(ctx, order.CardIDs)
	if err != nil {
		log.Warn("Failed to load cards for notification", "error", err)
		cards = nil
	}

	// A session without a buyer email is a normal guest path, not a
	// delivery failure; only the operator gets mailed.
	if order.BuyerEmail == "" {
		log.Info("Order has no buyer email, skipping confirmation")
	} else if err := s.notifier.SendBuyerConfirmation(ctx, order, cards); err != nil {
		log.Warn("Failed to send buyer confirmation", "recipient", order.BuyerEmail, "error", err)
		s.publishNotificationFailure(ctx, order.BuyerEmail, order.ID, err)
	}

	if err := s.notifier.SendOperatorNotification(ctx, order, cards); err != nil {
		log.Warn("Failed to send operator notification", "error", err)
		s.publishNotificationFailure(ctx, "operator", order.ID, err)
	}
}

func (s *service) publishNotificationFailure(ctx context.Context, recipient, orderID string, cause error) {
	if err := s.publisher.Publish(ctx, event.NewNotificationFailedEvent(recipient, orderID, cause)); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish notification failure", "error", err)
	}
}

func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info("Fulfillment service shutting down, waiting for notifications...")
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// newConfirmationCode returns a short random hex code for buyer-facing
// order references. Uniqueness is probabilistic; the order id remains
// the real key.
func newConfirmationCode() string {
	b := make([]byte, confirmationCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
