package store

import (
	"context"
	"testing"
	"time"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(orderID, userID string) models.Order {
	now := time.Now()
	return models.Order{
		ID:            orderID,
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

const (
	cartUser = "aaaaaaaa-0000-0000-0000-000000000001"
	prodA    = "bbbbbbbb-0000-0000-0000-000000000001"
	prodB    = "bbbbbbbb-0000-0000-0000-000000000002"
)

func TestCartLazyEmpty(t *testing.T) {
	carts := NewMemoryCarts()

	items, err := carts.Get(context.Background(), cartUser)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartAddIncrements(t *testing.T) {
	carts := NewMemoryCarts()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, cartUser, prodA, 1)
	require.NoError(t, err)
	items, err := carts.AddItem(ctx, cartUser, prodA, 2)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	carts := NewMemoryCarts()
	ctx := context.Background()

	for _, qty := range []int{0, -1, -10} {
		_, err := carts.AddItem(ctx, cartUser, prodA, qty)
		assert.ErrorIs(t, err, common.ErrValidation, "qty=%d", qty)
	}
}

// Quantité ≤ 0 en update : l'entrée disparaît, jamais stockée à zéro.
func TestCartUpdateZeroRemoves(t *testing.T) {
	carts := NewMemoryCarts()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, cartUser, prodA, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cartUser, prodB, 1)
	require.NoError(t, err)

	items, err := carts.UpdateItem(ctx, cartUser, prodA, 0)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, prodB, items[0].ProductID)
	for _, item := range items {
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestCartUpdateSetsQuantity(t *testing.T) {
	carts := NewMemoryCarts()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, cartUser, prodA, 2)
	require.NoError(t, err)

	items, err := carts.UpdateItem(ctx, cartUser, prodA, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	carts := NewMemoryCarts()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, cartUser, prodA, 1)
	require.NoError(t, err)

	items, err := carts.RemoveItem(ctx, cartUser, prodB)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartClear(t *testing.T) {
	carts := NewMemoryCarts()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, cartUser, prodA, 3)
	require.NoError(t, err)

	require.NoError(t, carts.Clear(ctx, cartUser))

	items, err := carts.Get(ctx, cartUser)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrdersListNewestFirst(t *testing.T) {
	orders := NewMemoryOrders()
	ctx := context.Background()

	older := newTestOrder("cccccccc-0000-0000-0000-000000000001", cartUser)
	newer := newTestOrder("cccccccc-0000-0000-0000-000000000002", cartUser)
	newer.CreatedAt = older.CreatedAt.Add(1)

	require.NoError(t, orders.Create(ctx, &older))
	require.NoError(t, orders.Create(ctx, &newer))

	list, err := orders.ListByUser(ctx, cartUser)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
}

func TestOrdersUpdateStatusPartial(t *testing.T) {
	orders := NewMemoryOrders()
	ctx := context.Background()

	order := newTestOrder("cccccccc-0000-0000-0000-000000000001", cartUser)
	require.NoError(t, orders.Create(ctx, &order))

	// Seul le statut de paiement bouge
	require.NoError(t, orders.UpdateStatus(ctx, order.ID, "", "paid"))

	stored, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", stored.PaymentStatus)
	assert.Equal(t, "pending", stored.Status)
}
