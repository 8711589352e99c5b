package order

import (
	"testing"

	"shopcore/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStock struct {
	available int
}

func (s stubStock) IsStockQuantityAvailable(quantity int) bool {
	return quantity > 0 && s.available >= quantity
}

func testAddress(t *testing.T) Address {
	t.Helper()
	addr, err := NewAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	return addr
}

func price(t *testing.T, amount string) shared.Money {
	t.Helper()
	m, err := shared.NewMoneyFromString(amount, shared.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("user-1", testAddress(t), []ItemRequest{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: price(t, "10.00"), Stock: stubStock{available: 100}},
		{ProductID: "prod-2", Quantity: 1, UnitPrice: price(t, "5.50"), Stock: stubStock{available: 100}},
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.NotEmpty(t, o.ID())
	assert.Equal(t, "user-1", o.UserID())
	assert.Equal(t, StatusPending, o.Status())
	assert.Len(t, o.Items(), 2)
	assert.True(t, o.TotalAmount().Equals(price(t, "25.50")))
	assert.True(t, o.IsNew())
	assert.False(t, o.HasPayment())

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventName())
	assert.Equal(t, o.ID(), events[0].AggregateID())
}

func TestNewOrderValidation(t *testing.T) {
	addr := testAddress(t)
	items := []ItemRequest{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: price(t, "10.00"), Stock: stubStock{available: 10}},
	}

	_, err := NewOrder("", addr, items)
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = NewOrder("user-1", Address{}, items)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = NewOrder("user-1", addr, nil)
	assert.ErrorIs(t, err, ErrEmptyOrderItems)

	_, err = NewOrder("user-1", addr, []ItemRequest{
		{ProductID: "prod-1", Quantity: 0, UnitPrice: price(t, "10.00"), Stock: stubStock{available: 10}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder("user-1", addr, []ItemRequest{
		{ProductID: "prod-1", Quantity: 5, UnitPrice: price(t, "10.00"), Stock: stubStock{available: 2}},
	})
	assert.ErrorIs(t, err, ErrStockNotAvailable)
}

func TestAddAndRemoveOrderItem(t *testing.T) {
	o := newTestOrder(t)

	err := o.AddOrderItem("prod-3", 3, price(t, "2.00"), stubStock{available: 10})
	require.NoError(t, err)
	assert.Len(t, o.Items(), 3)
	assert.True(t, o.TotalAmount().Equals(price(t, "31.50")))

	// Adding a duplicate product line is a conflict.
	err = o.AddOrderItem("prod-3", 1, price(t, "2.00"), stubStock{available: 10})
	assert.ErrorIs(t, err, shared.ErrConflict)

	require.NoError(t, o.RemoveOrderItem("prod-3"))
	assert.Len(t, o.Items(), 2)
	assert.True(t, o.TotalAmount().Equals(price(t, "25.50")))

	err = o.RemoveOrderItem("prod-42")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveLastItemFails(t *testing.T) {
	o, err := NewOrder("user-1", testAddress(t), []ItemRequest{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: price(t, "10.00"), Stock: stubStock{available: 10}},
	})
	require.NoError(t, err)

	err = o.RemoveOrderItem("prod-1")
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
	assert.Len(t, o.Items(), 1)
}

func TestUpdateOrderItemDeltas(t *testing.T) {
	o := newTestOrder(t)
	stock := stubStock{available: 100}

	// Positive delta on an existing line merges quantities.
	require.NoError(t, o.UpdateOrderItem("prod-1", 3, price(t, "10.00"), stock))
	assert.Equal(t, 5, o.Items()[0].Quantity())
	assert.True(t, o.TotalAmount().Equals(price(t, "55.50")))

	// Negative delta shrinks the line.
	require.NoError(t, o.UpdateOrderItem("prod-1", -4, price(t, "10.00"), stock))
	assert.Equal(t, 1, o.Items()[0].Quantity())

	// Delta down to zero removes the line entirely.
	require.NoError(t, o.UpdateOrderItem("prod-1", -1, price(t, "10.00"), stock))
	assert.Len(t, o.Items(), 1)
	assert.Equal(t, "prod-2", o.Items()[0].ProductID())

	// Positive delta for an unknown product creates a new line.
	require.NoError(t, o.UpdateOrderItem("prod-9", 2, price(t, "1.00"), stock))
	assert.Len(t, o.Items(), 2)

	// Negative delta for an unknown product is an error.
	err := o.UpdateOrderItem("prod-404", -1, price(t, "1.00"), stock)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateOrderItemStockGuard(t *testing.T) {
	o := newTestOrder(t)

	err := o.UpdateOrderItem("prod-1", 50, price(t, "10.00"), stubStock{available: 10})
	assert.ErrorIs(t, err, ErrStockNotAvailable)
	// The failed delta leaves the line untouched.
	assert.Equal(t, 2, o.Items()[0].Quantity())
	assert.True(t, o.TotalAmount().Equals(price(t, "25.50")))
}

func TestAssignPayment(t *testing.T) {
	o := newTestOrder(t)

	assert.ErrorIs(t, o.AssignPayment(""), ErrInvalidPaymentID)

	require.NoError(t, o.AssignPayment("pay-1"))
	assert.Equal(t, "pay-1", o.PaymentID())
	assert.True(t, o.HasPayment())

	// A payment can be assigned exactly once.
	err := o.AssignPayment("pay-2")
	assert.ErrorIs(t, err, ErrPaymentAlreadyAssigned)
	assert.Equal(t, "pay-1", o.PaymentID())
}

func TestConfirmRequiresPayment(t *testing.T) {
	o := newTestOrder(t)

	err := o.Confirm()
	assert.ErrorIs(t, err, ErrPaymentNotAssigned)

	require.NoError(t, o.AssignPayment("pay-1"))
	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status())

	// Confirm is only valid from pending.
	err = o.Confirm()
	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestShipLifecycle(t *testing.T) {
	o := newTestOrder(t)

	// Cannot ship a pending order.
	assert.ErrorIs(t, o.Ship(), ErrInvalidStateTransition)

	require.NoError(t, o.AssignPayment("pay-1"))
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Ship())
	assert.Equal(t, StatusShipped, o.Status())

	require.NoError(t, o.UpdateStatus(StatusDelivered))
	assert.Equal(t, StatusDelivered, o.Status())
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, false},
		{"pending to cancelled", StatusPending, StatusCancelled, false},
		{"confirmed to shipped", StatusConfirmed, StatusShipped, false},
		{"delivered to refunded", StatusDelivered, StatusRefunded, false},
		{"delivered to pending", StatusDelivered, StatusPending, true},
		{"delivered to shipped", StatusDelivered, StatusShipped, true},
		{"cancelled to pending", StatusCancelled, StatusPending, true},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t)
			o.status = tt.from

			err := o.UpdateStatus(tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStateTransition)
				assert.Equal(t, tt.from, o.Status())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status())
			}
		})
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents()

	require.NoError(t, o.UpdateStatus(StatusPending))
	assert.Empty(t, o.PullEvents())
}

func TestCancelRecordsReason(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents()

	require.NoError(t, o.Cancel("customer changed their mind"))
	assert.Equal(t, StatusCancelled, o.Status())

	events := o.PullEvents()
	require.Len(t, events, 1)
	cancelled, ok := events[0].(*OrderCancelledEvent)
	require.True(t, ok)
	assert.Equal(t, "customer changed their mind", cancelled.Reason())
}

func TestItemMutationsLockedAfterConfirmation(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AssignPayment("pay-1"))
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Ship())

	stock := stubStock{available: 100}
	assert.ErrorIs(t, o.AddOrderItem("prod-9", 1, price(t, "1.00"), stock), ErrOrderNotEditable)
	assert.ErrorIs(t, o.RemoveOrderItem("prod-1"), ErrOrderNotEditable)
	assert.ErrorIs(t, o.UpdateOrderItem("prod-1", 1, price(t, "10.00"), stock), ErrOrderNotEditable)
}

func TestSnapshotRoundTrip(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AssignPayment("pay-1"))
	require.NoError(t, o.Confirm())

	items := make([]OrderItem, len(o.Items()))
	copy(items, o.Items())

	rebuilt := RebuildFromSnapshot(Snapshot{
		ID:              o.ID(),
		UserID:          o.UserID(),
		PaymentID:       o.PaymentID(),
		DeliveryAddress: o.DeliveryAddress(),
		Items:           items,
		TotalAmount:     o.TotalAmount(),
		Status:          o.Status(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	})

	assert.Equal(t, o.ID(), rebuilt.ID())
	assert.Equal(t, o.Status(), rebuilt.Status())
	assert.True(t, o.TotalAmount().Equals(rebuilt.TotalAmount()))
	assert.False(t, rebuilt.IsNew())
	assert.Empty(t, rebuilt.PullEvents())
}
