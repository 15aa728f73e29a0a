package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/slabworks/cardstand/internal/clock"
	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/event"
	"github.com/slabworks/cardstand/internal/logger"
	"github.com/slabworks/cardstand/internal/metrics"
	"github.com/slabworks/cardstand/internal/payment"
	"github.com/slabworks/cardstand/internal/repository"
)

// Failure reasons recorded on the checkouts_failed counter
const (
	failReasonNotFound    = "card_not_found"
	failReasonUnavailable = "card_unavailable"
	failReasonReserved    = "card_reserved"
	failReasonGateway     = "gateway"
	failReasonDatabase    = "database"
)

// Config carries the checkout settings the coordinator needs.
type Config struct {
	// ReservationWindow is how long cards stay held for an open session.
	ReservationWindow time.Duration

	// Currency is the ISO 4217 code used for session line items.
	Currency string

	SuccessURL string
	CancelURL  string
}

// Service coordinates card reservation with checkout session creation.
// Cards are reserved before the session is created; a session that the
// gateway refuses costs nothing but a released hold, while the reverse
// order would sell oversold sessions.
type Service interface {
	// CheckoutItem opens a checkout session for a single card and
	// returns the redirect URL.
	CheckoutItem(ctx context.Context, cardID string) (string, error)

	// CheckoutCart opens a checkout session for a cart. Duplicate lines
	// are merged before reservation.
	CheckoutCart(ctx context.Context, lines []domain.CartLine) (string, error)
}

type service struct {
	repo      repository.Catalog
	gateway   payment.Gateway
	publisher event.Bus
	clk       clock.Clock
	cfg       Config
}

// NewService creates a new checkout service
func NewService(repo repository.Catalog, gateway payment.Gateway, publisher event.Bus, clk clock.Clock, cfg Config) Service {
	return &service{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		clk:       clk,
		cfg:       cfg,
	}
}

func (s *service) CheckoutItem(ctx context.Context, cardID string) (string, error) {
	return s.CheckoutCart(ctx, []domain.CartLine{{CardID: cardID, Quantity: 1}})
}

func (s *service) CheckoutCart(ctx context.Context, lines []domain.CartLine) (string, error) {
	log := logger.FromContext(ctx)

	merged, err := domain.MergeCartLines(lines)
	if err != nil {
		return "", err
	}
	ids := domain.CardIDs(merged)

	log.Info("Checkout requested", "card_ids", ids)

	cards, err := s.loadCards(ctx, ids)
	if err != nil {
		return "", err
	}

	// Reserve before talking to the gateway. The conditional update is
	// the only arbiter: whatever raced us since the read above simply
	// wins or loses here.
	pendingUntil := s.clk.Now().Add(s.cfg.ReservationWindow)
	reserved, err := s.repo.ReserveCards(ctx, ids, pendingUntil)
	if err != nil {
		log.Error("Failed to reserve cards", "error", err)
		metrics.CheckoutsFailed.WithLabelValues(failReasonDatabase).Inc()
		return "", fmt.Errorf("failed to reserve cards: %w", err)
	}
	if len(reserved) != len(ids) {
		// partial grab: hand back what we took and report the conflict
		s.release(ctx, reserved, event.ReleaseReasonConflict)
		metrics.CheckoutsFailed.WithLabelValues(failReasonReserved).Inc()
		log.Info("Checkout lost reservation race", "requested", len(ids), "granted", len(reserved))
		return "", domain.ErrCardReserved
	}

	session, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		LineItems:  buildLineItems(cards, merged),
		Currency:   s.cfg.Currency,
		CardIDs:    ids,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	})
	if err != nil {
		log.Error("Gateway rejected checkout session", "error", err)
		s.release(ctx, ids, event.ReleaseReasonGatewayFailure)
		metrics.CheckoutsFailed.WithLabelValues(failReasonGateway).Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	if err := s.publisher.Publish(ctx, event.NewCheckoutStartedEvent(session.ID, ids)); err != nil {
		log.Warn("Failed to publish checkout event", "session_id", session.ID, "error", err)
	}

	log.Info("Checkout session created", "session_id", session.ID, "cards", len(ids))
	return session.URL, nil
}

// loadCards fetches and validates the requested cards. Lapsed pending
// holds are fine here; the reservation update settles them.
func (s *service) loadCards(ctx context.Context, ids []string) ([]domain.Card, error) {
	log := logger.FromContext(ctx)

	cards, err := s.repo.GetCardsByIDs(ctx, ids)
	if err != nil {
		log.Error("Failed to load cards", "error", err)
		metrics.CheckoutsFailed.WithLabelValues(failReasonDatabase).Inc()
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	if len(cards) != len(ids) {
		found := make(map[string]bool, len(cards))
		for _, c := range cards {
			found[c.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				metrics.CheckoutsFailed.WithLabelValues(failReasonNotFound).Inc()
				return nil, fmt.Errorf("%w: %s", domain.ErrCardNotFound, id)
			}
		}
	}

	now := s.clk.Now()
	for i := range cards {
		card := &cards[i]
		if card.Status == domain.StatusSold {
			metrics.CheckoutsFailed.WithLabelValues(failReasonUnavailable).Inc()
			return nil, fmt.Errorf("%w: %s", domain.ErrCardUnavailable, card.ID)
		}
		if card.PriceCents <= 0 {
			metrics.CheckoutsFailed.WithLabelValues(failReasonUnavailable).Inc()
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPrice, card.ID)
		}
		if card.Status == domain.StatusPending && !card.AvailableAt(now) {
			metrics.CheckoutsFailed.WithLabelValues(failReasonReserved).Inc()
			return nil, fmt.Errorf("%w: %s", domain.ErrCardReserved, card.ID)
		}
	}

	return cards, nil
}

// release returns held cards to the shop. A failed release is soft: the
// expiry sweep will pick the cards up when the window lapses, so we log
// and publish rather than fail the request a second time.
func (s *service) release(ctx context.Context, ids []string, reason string) {
	if len(ids) == 0 {
		return
	}
	log := logger.FromContext(ctx)

	if err := s.repo.ReleaseCards(ctx, ids); err != nil {
		log.Warn("Failed to release reservations, sweep will reclaim them",
			"card_ids", ids, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, event.NewReservationReleasedEvent(ids, reason)); err != nil {
		log.Warn("Failed to publish release event", "error", err)
	}
}

// buildLineItems maps cards to gateway line items, one per distinct
// card, carrying the merged cart quantity so the shopper is billed for
// every unit they asked for.
func buildLineItems(cards []domain.Card, lines []domain.CartLine) []payment.LineItem {
	quantities := make(map[string]int, len(lines))
	for _, l := range lines {
		quantities[l.CardID] = l.Quantity
	}

	items := make([]payment.LineItem, 0, len(cards))
	for _, c := range cards {
		qty := quantities[c.ID]
		if qty < 1 {
			qty = 1
		}
		items = append(items, payment.LineItem{
			Name:        c.Name,
			Description: lineItemDescription(&c),
			AmountCents: c.PriceCents,
			Quantity:    int64(qty),
		})
	}
	return items
}

func lineItemDescription(c *domain.Card) string {
	desc := c.SetName
	if c.Condition != "" {
		if desc != "" {
			desc += ", "
		}
		desc += c.Condition
	}
	if c.Grading != "" {
		if desc != "" {
			desc += ", "
		}
		desc += c.Grading
	}
	return desc
}
