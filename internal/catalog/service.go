package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/slabworks/cardstand/internal/clock"
	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/event"
	"github.com/slabworks/cardstand/internal/logger"
	"github.com/slabworks/cardstand/internal/repository"
	"github.com/slabworks/cardstand/internal/storage"
)

// DefaultListLimit caps storefront listings when the caller does not ask
// for a specific page size.
const DefaultListLimit = 100

// CardView is a card as presented to shoppers: status reflects lapsed
// reservations even before the sweep rewrites the row, and the image key
// is resolved to a fetchable URL.
type CardView struct {
	domain.Card
	ImageURL string `json:"image_url,omitempty"`
}

// Service defines the interface for catalog operations
type Service interface {
	// Storefront reads
	GetCard(ctx context.Context, id string) (*CardView, error)
	ListCards(ctx context.Context, limit int) ([]CardView, error)

	// Admin operations
	CreateCard(ctx context.Context, card *domain.Card) (string, error)
	UpdateCard(ctx context.Context, id string, card *domain.Card) error
	DeleteCard(ctx context.Context, id string) error
	AttachImage(ctx context.Context, id string, r io.Reader, size int64, contentType string) (string, error)

	// ReleaseExpired returns lapsed reservations to the shop. Called by
	// the periodic sweep.
	ReleaseExpired(ctx context.Context) (int, error)
}

type service struct {
	repo      repository.Catalog
	store     storage.Store
	publisher event.Bus
	clk       clock.Clock
}

// NewService creates a new catalog service. store may be nil when no
// object storage is configured; cards then render without image URLs.
func NewService(repo repository.Catalog, store storage.Store, publisher event.Bus, clk clock.Clock) Service {
	return &service{
		repo:      repo,
		store:     store,
		publisher: publisher,
		clk:       clk,
	}
}

func (s *service) GetCard(ctx context.Context, id string) (*CardView, error) {
	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.present(ctx, *card)
	return &view, nil
}

func (s *service) ListCards(ctx context.Context, limit int) ([]CardView, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	cards, err := s.repo.ListCards(ctx, limit)
	if err != nil {
		return nil, err
	}

	views := make([]CardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, s.present(ctx, card))
	}
	return views, nil
}

// present maps a stored card to its shopper-facing view. A pending card
// whose window has lapsed reads as available; the row itself is fixed by
// the next reserve or sweep, not here.
func (s *service) present(ctx context.Context, card domain.Card) CardView {
	if card.Status == domain.StatusPending && card.AvailableAt(s.clk.Now()) {
		card.Status = domain.StatusAvailable
		card.PendingUntil = nil
	}

	view := CardView{Card: card}
	if s.store != nil && card.ImageKey != "" {
		url, err := s.store.PresignedURL(ctx, card.ImageKey)
		if err != nil {
			logger.FromContext(ctx).Warn("Failed to presign image URL", "card_id", card.ID, "error", err)
		} else {
			view.ImageURL = url
		}
	}
	return view
}

func (s *service) CreateCard(ctx context.Context, card *domain.Card) (string, error) {
	log := logger.FromContext(ctx)

	if card.PriceCents <= 0 {
		return "", domain.ErrInvalidPrice
	}
	if card.Status == "" {
		card.Status = domain.StatusAvailable
	}

	id, err := s.repo.InsertCard(ctx, card)
	if err != nil {
		log.Error("Failed to insert card", "error", err)
		return "", fmt.Errorf("failed to insert card: %w", err)
	}

	log.Info("Card listed", "card_id", id, "name", card.Name, "price_cents", card.PriceCents)
	return id, nil
}

func (s *service) UpdateCard(ctx context.Context, id string, card *domain.Card) error {
	log := logger.FromContext(ctx)

	if card.PriceCents <= 0 {
		return domain.ErrInvalidPrice
	}

	if err := s.repo.UpdateCard(ctx, id, card); err != nil {
		return err
	}

	log.Info("Card updated", "card_id", id)
	return nil
}

func (s *service) DeleteCard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCard(ctx, id); err != nil {
		return err
	}

	if s.store != nil && card.ImageKey != "" {
		if err := s.store.Remove(ctx, card.ImageKey); err != nil {
			log.Warn("Failed to remove card image", "card_id", id, "key", card.ImageKey, "error", err)
		}
	}

	log.Info("Card delisted", "card_id", id)
	return nil
}

func (s *service) AttachImage(ctx context.Context, id string, r io.Reader, size int64, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	if s.store == nil {
		return "", fmt.Errorf("no object storage configured")
	}

	// make sure the card exists before paying for the upload
	if _, err := s.repo.GetCard(ctx, id); err != nil {
		return "", err
	}

	key := "cards/" + id
	if err := s.store.Upload(ctx, key, r, size, contentType); err != nil {
		log.Error("Failed to upload card image", "card_id", id, "error", err)
		return "", fmt.Errorf("failed to upload card image: %w", err)
	}

	if err := s.repo.SetImageKey(ctx, id, key); err != nil {
		return "", err
	}

	log.Info("Card image attached", "card_id", id, "key", key)
	return key, nil
}

func (s *service) ReleaseExpired(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	released, err := s.repo.ReleaseExpired(ctx, s.clk.Now())
	if err != nil {
		log.Error("Failed to release expired reservations", "error", err)
		return 0, fmt.Errorf("failed to release expired reservations: %w", err)
	}

	if len(released) > 0 {
		log.Info("Released expired reservations", "count", len(released), "card_ids", released)
		if err := s.publisher.Publish(ctx, event.NewReservationReleasedEvent(released, event.ReleaseReasonExpired)); err != nil {
			log.Warn("Failed to publish release event", "error", err)
		}
	}

	return len(released), nil
}
