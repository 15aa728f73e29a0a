package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabworks/cardstand/internal/domain"
)

func TestOrderRepository_Integration(t *testing.T) {
	pool := startTestDatabase(t)
	repo := NewOrderRepository(pool)
	ctx := context.Background()

	newOrder := func(sessionID string) *domain.Order {
		return &domain.Order{
			SessionID:        sessionID,
			ConfirmationCode: "a1b2c3d4",
			BuyerEmail:       "buyer@example.com",
			BuyerName:        "Test Buyer",
			ShippingAddress:  "1 Main St, Springfield",
			AmountCents:      42500,
			CardIDs:          []string{"card-1", "card-2"},
		}
	}

	t.Run("insert and fetch by session id", func(t *testing.T) {
		truncateTables(t, pool)

		created, err := repo.InsertOrder(ctx, newOrder("cs_test_1"))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		fetched, err := repo.GetOrderBySessionID(ctx, "cs_test_1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "buyer@example.com", fetched.BuyerEmail)
		assert.Equal(t, int64(42500), fetched.AmountCents)
		assert.Equal(t, []string{"card-1", "card-2"}, fetched.CardIDs)
	})

	t.Run("duplicate session id returns the existing order", func(t *testing.T) {
		truncateTables(t, pool)

		first, err := repo.InsertOrder(ctx, newOrder("cs_test_dup"))
		require.NoError(t, err)

		// webhook redelivery inserts the same session again
		second, err := repo.InsertOrder(ctx, newOrder("cs_test_dup"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		orders, err := repo.ListOrders(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("missing session id returns not found", func(t *testing.T) {
		truncateTables(t, pool)

		_, err := repo.GetOrderBySessionID(ctx, "cs_missing")
		assert.True(t, errors.Is(err, domain.ErrOrderNotFound))
	})

	t.Run("list returns newest first", func(t *testing.T) {
		truncateTables(t, pool)

		_, err := repo.InsertOrder(ctx, newOrder("cs_old"))
		require.NoError(t, err)
		_, err = repo.InsertOrder(ctx, newOrder("cs_new"))
		require.NoError(t, err)

		orders, err := repo.ListOrders(ctx, 10)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "cs_new", orders[0].SessionID)
		assert.Equal(t, "cs_old", orders[1].SessionID)
	})
}
