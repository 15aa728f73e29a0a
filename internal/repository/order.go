package repository

import (
	"context"

	"github.com/slabworks/cardstand/internal/domain"
)

// Order defines the interface for order persistence
type Order interface {
	// InsertOrder records a fulfilled checkout. Inserting the same session
	// id twice returns the existing order instead of a duplicate.
	InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)

	GetOrderBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)
	ListOrders(ctx context.Context, limit int) ([]domain.Order, error)
}
