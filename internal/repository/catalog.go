package repository

import (
	"context"
	"time"

	"github.com/slabworks/cardstand/internal/domain"
)

// Catalog defines the interface for card inventory persistence
type Catalog interface {
	// Read operations
	GetCard(ctx context.Context, id string) (*domain.Card, error)
	GetCardsByIDs(ctx context.Context, ids []string) ([]domain.Card, error)
	ListCards(ctx context.Context, limit int) ([]domain.Card, error)

	// Admin operations
	InsertCard(ctx context.Context, card *domain.Card) (string, error)
	UpdateCard(ctx context.Context, id string, card *domain.Card) error
	SetImageKey(ctx context.Context, id, imageKey string) error
	DeleteCard(ctx context.Context, id string) error

	// Reservation operations
	//
	// ReserveCards conditionally flips the given cards to pending with the
	// supplied expiry. A card is taken only when it is available or its
	// previous reservation has lapsed; the check and the write are one
	// statement, so two concurrent checkouts can never both reserve the
	// same card. Returns the ids actually reserved.
	ReserveCards(ctx context.Context, ids []string, pendingUntil time.Time) ([]string, error)

	// ReleaseCards reverts pending cards to available. Sold cards are
	// never touched.
	ReleaseCards(ctx context.Context, ids []string) error

	// ReleaseExpired reverts every pending card whose window has lapsed
	// and returns the affected ids.
	ReleaseExpired(ctx context.Context, now time.Time) ([]string, error)

	// MarkCardsSold finalizes cards after payment. Already-sold cards are
	// left untouched (redelivered webhooks are no-ops); ids that no longer
	// exist are skipped. Returns the ids transitioned by this call.
	MarkCardsSold(ctx context.Context, ids []string) ([]string, error)
}
