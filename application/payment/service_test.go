package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/order"
	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence/mocks"
	apperrors "shopcore/pkg/errors"
)

type plentyOfStock struct{}

func (plentyOfStock) IsStockQuantityAvailable(int) bool { return true }

type fixture struct {
	payments *mocks.MockPaymentRepository
	orders   *mocks.MockOrderRepository
	uow      *mocks.MockUnitOfWork
	service  *Service
}

func newFixture() *fixture {
	f := &fixture{
		payments: mocks.NewMockPaymentRepository(),
		orders:   mocks.NewMockOrderRepository(),
		uow:      mocks.NewMockUnitOfWork(),
	}
	f.service = NewService(f.payments, f.orders, f.uow)
	return f
}

// seedOrder stores a pending order totalling 25.50.
func (f *fixture) seedOrder(t *testing.T) *order.Order {
	t.Helper()
	address, err := order.NewAddress("1 Main St", "Springfield", "12345", "US")
	require.NoError(t, err)
	unitPrice, err := shared.NewMoneyFromString("25.50", shared.DefaultCurrency)
	require.NoError(t, err)

	o, err := order.NewOrder("user-1", address, []order.ItemRequest{
		{ProductID: "prod-1", Quantity: 1, UnitPrice: unitPrice, Stock: plentyOfStock{}},
	})
	require.NoError(t, err)
	require.NoError(t, f.orders.Save(context.Background(), o))
	return o
}

func TestCreatePayment(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(t)

	resp, err := f.service.CreatePayment(context.Background(), &CreatePaymentRequest{
		OrderID: o.ID(),
		Method:  "CASH",
	})
	require.NoError(t, err)

	assert.Equal(t, o.ID(), resp.OrderID)
	assert.Equal(t, "25.50", resp.AmountToPay)
	assert.Equal(t, "CASH", resp.Method)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Nil(t, resp.AmountPaid)
	assert.Nil(t, resp.CashChange)
}

func TestCreatePaymentUnknownMethod(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreatePayment(context.Background(), &CreatePaymentRequest{
		OrderID: "order-1",
		Method:  "BARTER",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestCreatePaymentUnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreatePayment(context.Background(), &CreatePaymentRequest{
		OrderID: "missing",
		Method:  "CARD",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeOrderNotFound))
}

func TestCreatePaymentOnlyOncePerOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.seedOrder(t)

	_, err := f.service.CreatePayment(ctx, &CreatePaymentRequest{OrderID: o.ID(), Method: "CASH"})
	require.NoError(t, err)

	_, err = f.service.CreatePayment(ctx, &CreatePaymentRequest{OrderID: o.ID(), Method: "CARD"})
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestProcessPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.seedOrder(t)

	created, err := f.service.CreatePayment(ctx, &CreatePaymentRequest{OrderID: o.ID(), Method: "CASH"})
	require.NoError(t, err)

	resp, err := f.service.ProcessPayment(ctx, created.ID, &ProcessPaymentRequest{
		AmountPaid: "30.00",
		CashChange: "4.50",
	})
	require.NoError(t, err)

	assert.Equal(t, "SUCCEEDED", resp.Status)
	require.NotNil(t, resp.AmountPaid)
	assert.Equal(t, "30.00", *resp.AmountPaid)
	require.NotNil(t, resp.CashChange)
	assert.Equal(t, "4.50", *resp.CashChange)
	assert.Contains(t, f.uow.EventNames(), "payment.succeeded")
}

// An omitted cash change means no change is due; that only settles an
// exact payment.
func TestProcessPaymentDefaultsChangeToZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.seedOrder(t)

	created, err := f.service.CreatePayment(ctx, &CreatePaymentRequest{OrderID: o.ID(), Method: "CASH"})
	require.NoError(t, err)

	_, err = f.service.ProcessPayment(ctx, created.ID, &ProcessPaymentRequest{AmountPaid: "30.00"})
	assert.True(t, apperrors.Is(err, apperrors.CodePaymentAmountMismatch))

	resp, err := f.service.ProcessPayment(ctx, created.ID, &ProcessPaymentRequest{AmountPaid: "25.50"})
	require.NoError(t, err)
	assert.Equal(t, "SUCCEEDED", resp.Status)
	assert.Equal(t, "0.00", *resp.CashChange)
}

func TestProcessPaymentRejectsMalformedAmount(t *testing.T) {
	f := newFixture()

	_, err := f.service.ProcessPayment(context.Background(), "pay-1", &ProcessPaymentRequest{
		AmountPaid: "twenty",
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestGetOrderPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	o := f.seedOrder(t)

	created, err := f.service.CreatePayment(ctx, &CreatePaymentRequest{OrderID: o.ID(), Method: "CARD"})
	require.NoError(t, err)

	resp, err := f.service.GetOrderPayment(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = f.service.GetOrderPayment(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.CodePaymentNotFound))
}
