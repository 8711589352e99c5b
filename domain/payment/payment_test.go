package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/shared"
)

func money(t *testing.T, amount string) shared.Money {
	t.Helper()
	m, err := shared.NewMoneyFromString(amount, shared.DefaultCurrency)
	require.NoError(t, err)
	return m
}

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment("order-1", money(t, "25.50"), MethodCash)
	require.NoError(t, err)
	return p
}

func TestMethodIsValid(t *testing.T) {
	assert.True(t, MethodCash.IsValid())
	assert.True(t, MethodCard.IsValid())
	assert.False(t, Method("BARTER").IsValid())
	assert.False(t, Method("").IsValid())
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(t)

	assert.NotEmpty(t, p.ID())
	assert.Equal(t, "order-1", p.OrderID())
	assert.Equal(t, StatusPending, p.Status())
	assert.Equal(t, MethodCash, p.PaymentMethod())
	assert.False(t, p.IsSucceeded())
	assert.Nil(t, p.AmountPaid())
	assert.Nil(t, p.CashChange())
	assert.True(t, p.IsNew())
}

func TestNewPaymentValidation(t *testing.T) {
	_, err := NewPayment("", money(t, "10.00"), MethodCash)
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	zero, err := shared.NewMoneyFromString("0", shared.DefaultCurrency)
	require.NoError(t, err)
	_, err = NewPayment("order-1", zero, MethodCash)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment("order-1", money(t, "10.00"), Method("WIRE"))
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestProcessExactAmount(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.Process(money(t, "25.50"), money(t, "0")))

	assert.True(t, p.IsSucceeded())
	require.NotNil(t, p.AmountPaid())
	assert.True(t, p.AmountPaid().Equals(money(t, "25.50")))
	require.NotNil(t, p.CashChange())
	assert.True(t, p.CashChange().IsZero())

	events := p.PullEvents()
	require.Len(t, events, 1)
	ev, ok := events[0].(*PaymentSucceededEvent)
	require.True(t, ok)
	assert.Equal(t, "payment.succeeded", ev.EventName())
	assert.Equal(t, p.ID(), ev.PaymentID())
	assert.Equal(t, "order-1", ev.OrderID())
	assert.True(t, ev.AmountPaid().Equals(money(t, "25.50")))
}

func TestProcessWithChange(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.Process(money(t, "30.00"), money(t, "4.50")))

	assert.True(t, p.IsSucceeded())
	assert.True(t, p.CashChange().Equals(money(t, "4.50")))
}

func TestProcessInsufficientAmount(t *testing.T) {
	p := newTestPayment(t)

	err := p.Process(money(t, "20.00"), money(t, "0"))
	assert.ErrorIs(t, err, ErrInsufficientAmount)
	assert.False(t, p.IsSucceeded())
	assert.Nil(t, p.AmountPaid())
}

func TestProcessCashChangeMismatch(t *testing.T) {
	p := newTestPayment(t)

	// Change is paid minus owed, exactly; no tolerance.
	err := p.Process(money(t, "30.00"), money(t, "4.00"))
	assert.ErrorIs(t, err, ErrCashChangeMismatch)

	err = p.Process(money(t, "30.00"), money(t, "4.51"))
	assert.ErrorIs(t, err, ErrCashChangeMismatch)

	assert.Equal(t, StatusPending, p.Status())
	assert.Empty(t, p.PullEvents())
}

func TestProcessExactlyOnce(t *testing.T) {
	p := newTestPayment(t)

	require.NoError(t, p.Process(money(t, "25.50"), money(t, "0")))
	err := p.Process(money(t, "25.50"), money(t, "0"))
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestPaymentSnapshotRoundTrip(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.Process(money(t, "30.00"), money(t, "4.50")))
	p.IncrementVersionForSave()
	p.ClearNewFlag()

	rebuilt := RebuildFromSnapshot(Snapshot{
		ID:          p.ID(),
		OrderID:     p.OrderID(),
		AmountToPay: p.AmountToPay(),
		AmountPaid:  p.AmountPaid(),
		CashChange:  p.CashChange(),
		Method:      p.PaymentMethod(),
		Status:      p.Status(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	})

	assert.Equal(t, p.ID(), rebuilt.ID())
	assert.True(t, rebuilt.IsSucceeded())
	assert.True(t, rebuilt.AmountPaid().Equals(money(t, "30.00")))
	assert.True(t, rebuilt.CashChange().Equals(money(t, "4.50")))
	assert.Equal(t, 1, rebuilt.Version())
	assert.False(t, rebuilt.IsNew())
}
