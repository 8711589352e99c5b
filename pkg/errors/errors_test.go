package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/order"
	"shopcore/domain/payment"
	"shopcore/domain/product"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"order not found", order.NewOrderNotFoundError("o1"), CodeOrderNotFound},
		{"order concurrent modification", order.NewConcurrentModificationError("o1"), CodeConcurrencyConflict},
		{"payment already assigned", order.ErrPaymentAlreadyAssigned, CodePaymentAlreadyAssigned},
		{"stock not available", order.NewStockNotAvailableError("p1", 3), CodeStockNotAvailable},
		{"product not found", product.NewProductNotFoundError("p1"), CodeProductNotFound},
		{"insufficient stock", product.NewInsufficientStockError("p1", 1, 3), CodeStockNotAvailable},
		{"payment not associated", payment.NewOrderNotAssociatedError("pay1", "o1"), CodePaymentNotAssociated},
		{"already processed", payment.ErrAlreadyProcessed, CodeInvalidPaymentState},
		{"cash change mismatch", payment.ErrCashChangeMismatch, CodePaymentAmountMismatch},
		{"unknown error", stderrors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestFromDomainErrorNil(t *testing.T) {
	assert.Nil(t, FromDomainError(nil))
}

// AppErrors produced upstream pass through unchanged instead of being
// re-wrapped as internal errors.
func TestFromDomainErrorPassesAppErrorThrough(t *testing.T) {
	original := Validation("bad input")
	assert.Same(t, original, FromDomainError(original))
}

// The real cause of an unmapped error is kept for logging but never
// shown to callers.
func TestUnknownErrorMasksCause(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	appErr := FromDomainError(cause)

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestIs(t *testing.T) {
	err := FromDomainError(order.NewOrderNotFoundError("o1"))
	assert.True(t, Is(err, CodeOrderNotFound))
	assert.False(t, Is(err, CodeConflict))
	assert.False(t, Is(stderrors.New("boom"), CodeOrderNotFound))
	assert.False(t, Is(nil, CodeOrderNotFound))
}
