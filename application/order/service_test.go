package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/payment"
	"shopcore/domain/product"
	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence/mocks"
	apperrors "shopcore/pkg/errors"
)

type fixture struct {
	orders   *mocks.MockOrderRepository
	products *mocks.MockProductRepository
	payments *mocks.MockPaymentRepository
	uow      *mocks.MockUnitOfWork
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		orders:   mocks.NewMockOrderRepository(),
		products: mocks.NewMockProductRepository(),
		payments: mocks.NewMockPaymentRepository(),
		uow:      mocks.NewMockUnitOfWork(),
	}
	f.service = NewService(f.orders, f.products, f.payments, f.uow)
	return f
}

func testMoney(t *testing.T, amount string) shared.Money {
	t.Helper()
	m, err := shared.NewMoneyFromString(amount, shared.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func (f *fixture) seedProduct(t *testing.T, name, price string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(name, "", testMoney(t, price), stock)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func (f *fixture) seedPayment(t *testing.T, orderID, amount string) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(orderID, testMoney(t, amount), payment.MethodCash)
	require.NoError(t, err)
	require.NoError(t, f.payments.Save(context.Background(), p))
	return p
}

func createRequest(items ...OrderItemRequest) *CreateOrderRequest {
	return &CreateOrderRequest{
		UserID: "user-1",
		DeliveryAddress: AddressRequest{
			Street:  "1 Main St",
			City:    "Springfield",
			ZipCode: "12345",
			Country: "US",
		},
		Items: items,
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	resp, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 2},
	))
	require.NoError(t, err)

	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "20.00", resp.TotalAmount.Amount)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "10.00", resp.Items[0].UnitPrice.Amount)
	assert.Contains(t, f.uow.EventNames(), "order.placed")

	// Creation validates stock but reserves nothing.
	stored, err := f.products.FindByID(ctx, prod.ID())
	require.NoError(t, err)
	assert.Equal(t, 5, stored.StockQuantity())
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateOrder(context.Background(), createRequest(
		OrderItemRequest{ProductID: "missing", Quantity: 1},
	))
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newFixture()
	prod := f.seedProduct(t, "Keyboard", "10.00", 1)

	_, err := f.service.CreateOrder(context.Background(), createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 2},
	))
	assert.True(t, apperrors.Is(err, apperrors.CodeStockNotAvailable))
}

func TestCompleteProcessing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 2},
	))
	require.NoError(t, err)
	pay := f.seedPayment(t, created.ID, "20.00")

	resp, err := f.service.CompleteProcessing(ctx, created.ID, pay.ID())
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, pay.ID(), resp.PaymentID)

	stored, err := f.products.FindByID(ctx, prod.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, stored.StockQuantity())

	names := f.uow.EventNames()
	assert.Contains(t, names, "product.stock_reduced")
	assert.Contains(t, names, "order.confirmed")
}

func TestCompleteProcessingIsAtomic(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.seedProduct(t, "Keyboard", "10.00", 5)
	second := f.seedProduct(t, "Mouse", "5.00", 3)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: first.ID(), Quantity: 2},
		OrderItemRequest{ProductID: second.ID(), Quantity: 3},
	))
	require.NoError(t, err)
	pay := f.seedPayment(t, created.ID, "35.00")

	// A competing sale drains the second product after the order was
	// placed but before it is processed.
	competitor, err := f.products.FindByID(ctx, second.ID())
	require.NoError(t, err)
	require.NoError(t, competitor.ReduceStockQuantity(2))
	require.NoError(t, f.products.Save(ctx, competitor))

	_, err = f.service.CompleteProcessing(ctx, created.ID, pay.ID())
	assert.True(t, apperrors.Is(err, apperrors.CodeStockNotAvailable))

	// The first line was reserved in memory before the second failed;
	// nothing of that may reach the store.
	storedFirst, err := f.products.FindByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, 5, storedFirst.StockQuantity())

	storedOrder, err := f.service.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", storedOrder.Status)
	assert.Empty(t, storedOrder.PaymentID)
}

func TestCompleteProcessingWrongPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 1},
	))
	require.NoError(t, err)
	stranger := f.seedPayment(t, "some-other-order", "10.00")

	_, err = f.service.CompleteProcessing(ctx, created.ID, stranger.ID())
	assert.True(t, apperrors.Is(err, apperrors.CodePaymentNotAssociated))

	storedOrder, err := f.service.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", storedOrder.Status)
}

func TestShipOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 2},
	))
	require.NoError(t, err)
	pay := f.seedPayment(t, created.ID, "20.00")

	_, err = f.service.CompleteProcessing(ctx, created.ID, pay.ID())
	require.NoError(t, err)

	// Shipping is refused while the payment is still pending.
	_, err = f.service.ShipOrder(ctx, created.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidPaymentState))

	settled, err := f.payments.FindByID(ctx, pay.ID())
	require.NoError(t, err)
	require.NoError(t, settled.Process(testMoney(t, "20.00"), testMoney(t, "0")))
	require.NoError(t, f.payments.Save(ctx, settled))

	resp, err := f.service.ShipOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", resp.Status)
}

func TestUpdateBulkOrderItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.seedProduct(t, "Keyboard", "10.00", 10)
	second := f.seedProduct(t, "Mouse", "5.00", 10)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: first.ID(), Quantity: 2},
	))
	require.NoError(t, err)

	resp, err := f.service.UpdateBulkOrderItems(ctx, created.ID, &BulkUpdateItemsRequest{
		Items: []ItemDeltaRequest{
			{ProductID: first.ID(), QuantityChange: 1},
			{ProductID: second.ID(), QuantityChange: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "40.00", resp.TotalAmount.Amount)
}

func TestUpdateBulkOrderItemsAbortsAsWhole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 10)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 2},
	))
	require.NoError(t, err)

	// The first delta is valid; the second references an unknown
	// product. Neither may be applied.
	_, err = f.service.UpdateBulkOrderItems(ctx, created.ID, &BulkUpdateItemsRequest{
		Items: []ItemDeltaRequest{
			{ProductID: prod.ID(), QuantityChange: 1},
			{ProductID: "missing", QuantityChange: 1},
		},
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))

	stored, err := f.service.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, "20.00", stored.TotalAmount.Amount)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 1},
	))
	require.NoError(t, err)

	// Status strings are case-insensitive on input.
	resp, err := f.service.UpdateStatus(ctx, created.ID, &UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateStatus(context.Background(), "order-1", &UpdateStatusRequest{Status: "floating"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 1},
	))
	require.NoError(t, err)

	_, err = f.service.CancelOrder(ctx, created.ID, "out of stock")
	require.NoError(t, err)

	// Cancelled is terminal; the order cannot be reopened.
	_, err = f.service.UpdateStatus(ctx, created.ID, &UpdateStatusRequest{Status: "pending"})
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidOrderState))
}

func TestCancelOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	created, err := f.service.CreateOrder(ctx, createRequest(
		OrderItemRequest{ProductID: prod.ID(), Quantity: 1},
	))
	require.NoError(t, err)

	resp, err := f.service.CancelOrder(ctx, created.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Contains(t, f.uow.EventNames(), "order.cancelled")
}

func TestGetUserOrders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	for i := 0; i < 2; i++ {
		_, err := f.service.CreateOrder(ctx, createRequest(
			OrderItemRequest{ProductID: prod.ID(), Quantity: 1},
		))
		require.NoError(t, err)
	}

	found, err := f.service.GetUserOrders(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	none, err := f.service.GetUserOrders(ctx, "user-2", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetUserOrdersFilteredByStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	prod := f.seedProduct(t, "Keyboard", "10.00", 5)

	var orderIDs []string
	for i := 0; i < 3; i++ {
		resp, err := f.service.CreateOrder(ctx, createRequest(
			OrderItemRequest{ProductID: prod.ID(), Quantity: 1},
		))
		require.NoError(t, err)
		orderIDs = append(orderIDs, resp.ID)
	}
	_, err := f.service.CancelOrder(ctx, orderIDs[0], "out of budget")
	require.NoError(t, err)

	cancelled, err := f.service.GetUserOrders(ctx, "user-1", "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, orderIDs[0], cancelled[0].ID)
	assert.Equal(t, "CANCELLED", cancelled[0].Status)

	pending, err := f.service.GetUserOrders(ctx, "user-1", "PENDING")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	otherUser, err := f.service.GetUserOrders(ctx, "user-2", "cancelled")
	require.NoError(t, err)
	assert.Empty(t, otherUser)

	_, err = f.service.GetUserOrders(ctx, "user-1", "misplaced")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}
