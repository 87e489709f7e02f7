package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryAdjust(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, nil)
	ctx := context.Background()
	temple := seedTemple(t, db)

	item, err := svc.Create(ctx, CreateInventoryItemRequest{
		TempleID:     temple.ID.String(),
		Name:         "Camphor",
		Unit:         "kg",
		Quantity:     10,
		ReorderLevel: 2,
	})
	require.NoError(t, err)

	item, err = svc.Adjust(ctx, item.ID.String(), AdjustInventoryRequest{Delta: 5, Reason: "stock-in"})
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity)

	item, err = svc.Adjust(ctx, item.ID.String(), AdjustInventoryRequest{Delta: -12, Reason: "festival use"})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestInventoryAdjustNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db, nil)
	ctx := context.Background()
	temple := seedTemple(t, db)

	item, err := svc.Create(ctx, CreateInventoryItemRequest{
		TempleID: temple.ID.String(),
		Name:     "Ghee",
		Unit:     "litre",
		Quantity: 4,
	})
	require.NoError(t, err)

	_, err = svc.Adjust(ctx, item.ID.String(), AdjustInventoryRequest{Delta: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	// The failed adjustment must not change the stored quantity.
	item, err = svc.Get(ctx, item.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
}
