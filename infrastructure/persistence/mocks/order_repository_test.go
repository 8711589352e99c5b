package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/order"
	"shopcore/domain/shared"
)

type plentyOfStock struct{}

func (plentyOfStock) IsStockQuantityAvailable(int) bool { return true }

func seedOrder(t *testing.T, repo *MockOrderRepository) *order.Order {
	t.Helper()
	address, err := order.NewAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	unitPrice, err := shared.NewMoneyFromString("10.00", shared.DefaultCurrency)
	require.NoError(t, err)

	o, err := order.NewOrder("user-1", address, []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: unitPrice, Stock: plentyOfStock{}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

// Mutating a loaded aggregate without saving it must never change what
// the store returns on the next read.
func TestStoreIsolationOnItemMutation(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()
	saved := seedOrder(t, repo)

	loaded, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.UpdateOrderItemQuantity("prod-1", 7, plentyOfStock{}))

	reread, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	require.Len(t, reread.Items(), 1)
	assert.Equal(t, 2, reread.Items()[0].Quantity())
	assert.Equal(t, "20.00", reread.TotalAmount().Amount().StringFixed(2))
}

func TestSaveVersionGuard(t *testing.T) {
	repo := NewMockOrderRepository()
	ctx := context.Background()
	saved := seedOrder(t, repo)

	first, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)

	require.NoError(t, first.Cancel("first writer"))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.Cancel("second writer"))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, order.ErrConcurrentModification)
}
