package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/repository"
)

const orderColumns = `order_id, session_id, confirmation_code, buyer_email, buyer_name, shipping_address, amount_cents, card_ids, created_at`

type orderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *pgxpool.Pool) repository.Order {
	return &orderRepository{db: db}
}

// InsertOrder records a fulfilled checkout. The session_id unique
// constraint turns webhook redelivery into a lookup of the first write.
func (r *orderRepository) InsertOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
		INSERT INTO orders (session_id, confirmation_code, buyer_email, buyer_name, shipping_address, amount_cents, card_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + orderColumns

	row := r.db.QueryRow(ctx, query,
		order.SessionID,
		order.ConfirmationCode,
		order.BuyerEmail,
		order.BuyerName,
		order.ShippingAddress,
		order.AmountCents,
		order.CardIDs,
	)

	inserted, err := scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return r.GetOrderBySessionID(ctx, order.SessionID)
		}
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// GetOrderBySessionID retrieves the order recorded for a checkout session
func (r *orderRepository) GetOrderBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE session_id = $1
	`

	order, err := scanOrder(r.db.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// ListOrders retrieves recent orders, newest first
func (r *orderRepository) ListOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// scanOrder scans a single row into an Order
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.SessionID,
		&order.ConfirmationCode,
		&order.BuyerEmail,
		&order.BuyerName,
		&order.ShippingAddress,
		&order.AmountCents,
		&order.CardIDs,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
