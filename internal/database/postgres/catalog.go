package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slabworks/cardstand/internal/domain"
	"github.com/slabworks/cardstand/internal/repository"
)

const cardColumns = `card_id, card_name, set_name, condition, grading, price_cents, status, pending_until, image_key, tags, created_at, updated_at`

type catalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new PostgreSQL card catalog repository
func NewCatalogRepository(db *pgxpool.Pool) repository.Catalog {
	return &catalogRepository{db: db}
}

// GetCard retrieves a card by id
func (r *catalogRepository) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE card_id = $1
	`

	row := r.db.QueryRow(ctx, query, id)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// GetCardsByIDs retrieves every card matching the given ids. Missing ids
// simply do not appear in the result; callers detect them by comparing
// lengths.
func (r *catalogRepository) GetCardsByIDs(ctx context.Context, ids []string) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE card_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// ListCards retrieves cards ordered by creation time, newest first
func (r *catalogRepository) ListCards(ctx context.Context, limit int) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// InsertCard inserts a new card and returns its generated id
func (r *catalogRepository) InsertCard(ctx context.Context, card *domain.Card) (string, error) {
	query := `
		INSERT INTO cards (card_name, set_name, condition, grading, price_cents, status, image_key, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING card_id
	`

	status := card.Status
	if status == "" {
		status = domain.StatusAvailable
	}

	var id string
	err := r.db.QueryRow(ctx, query,
		card.Name,
		card.SetName,
		card.Condition,
		card.Grading,
		card.PriceCents,
		status,
		card.ImageKey,
		card.Tags,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert card: %w", err)
	}

	return id, nil
}

// UpdateCard updates the descriptive fields and price of an existing card.
// Status transitions go through the dedicated reservation methods instead.
func (r *catalogRepository) UpdateCard(ctx context.Context, id string, card *domain.Card) error {
	query := `
		UPDATE cards
		SET card_name = $1, set_name = $2, condition = $3, grading = $4,
		    price_cents = $5, tags = $6, updated_at = NOW()
		WHERE card_id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		card.Name,
		card.SetName,
		card.Condition,
		card.Grading,
		card.PriceCents,
		card.Tags,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}

	return nil
}

// SetImageKey stores the object-storage key of the card's image
func (r *catalogRepository) SetImageKey(ctx context.Context, id, imageKey string) error {
	query := `
		UPDATE cards
		SET image_key = $1, updated_at = NOW()
		WHERE card_id = $2
	`

	tag, err := r.db.Exec(ctx, query, imageKey, id)
	if err != nil {
		return fmt.Errorf("failed to set image key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}

	return nil
}

// DeleteCard removes a card from the catalog
func (r *catalogRepository) DeleteCard(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cards WHERE card_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}

	return nil
}

// ReserveCards flips cards to pending in a single conditional UPDATE.
// The WHERE clause is the whole concurrency story: a card is taken only
// if it is available or its previous reservation has already lapsed, so
// of two racing checkouts exactly one sees its id in the returned set.
func (r *catalogRepository) ReserveCards(ctx context.Context, ids []string, pendingUntil time.Time) ([]string, error) {
	query := `
		UPDATE cards
		SET status = 'pending', pending_until = $2, updated_at = NOW()
		WHERE card_id = ANY($1)
		  AND (status = 'available' OR (status = 'pending' AND (pending_until IS NULL OR pending_until < NOW())))
		RETURNING card_id
	`

	rows, err := r.db.Query(ctx, query, ids, pendingUntil)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve cards: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// ReleaseCards reverts pending cards to available
func (r *catalogRepository) ReleaseCards(ctx context.Context, ids []string) error {
	query := `
		UPDATE cards
		SET status = 'available', pending_until = NULL, updated_at = NOW()
		WHERE card_id = ANY($1) AND status = 'pending'
	`

	if _, err := r.db.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to release cards: %w", err)
	}

	return nil
}

// ReleaseExpired reverts every lapsed reservation and reports which cards
// were touched
func (r *catalogRepository) ReleaseExpired(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE cards
		SET status = 'available', pending_until = NULL, updated_at = NOW()
		WHERE status = 'pending' AND (pending_until IS NULL OR pending_until < $1)
		RETURNING card_id
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to release expired reservations: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// MarkCardsSold finalizes cards after confirmed payment. The status guard
// makes redelivered webhooks no-ops, and ids that were deleted between
// checkout and payment are skipped rather than failing the batch.
func (r *catalogRepository) MarkCardsSold(ctx context.Context, ids []string) ([]string, error) {
	query := `
		UPDATE cards
		SET status = 'sold', pending_until = NULL, updated_at = NOW()
		WHERE card_id = ANY($1) AND status != 'sold'
		RETURNING card_id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to mark cards sold: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// scanCard scans a single row into a Card
func scanCard(row pgx.Row) (*domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.ID,
		&card.Name,
		&card.SetName,
		&card.Condition,
		&card.Grading,
		&card.PriceCents,
		&card.Status,
		&card.PendingUntil,
		&card.ImageKey,
		&card.Tags,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// scanCards scans rows into Card structs
func scanCards(rows pgx.Rows) ([]domain.Card, error) {
	var cards []domain.Card

	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// scanIDs collects card_id values from RETURNING clauses
func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
