package payment

import (
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

var (
	// ErrPaymentNotFound payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidOrderID a payment always references an order.
	ErrInvalidOrderID = errors.New("order id must not be empty")

	// ErrInvalidAmount amounts must be positive.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrInvalidMethod unknown payment method.
	ErrInvalidMethod = errors.New("invalid payment method")

	// ErrAlreadyProcessed Process runs at most once.
	ErrAlreadyProcessed = errors.New("payment has already been processed")

	// ErrInsufficientAmount paid amount does not cover the amount owed.
	ErrInsufficientAmount = errors.New("paid amount is less than amount to pay")

	// ErrCashChangeMismatch declared change must equal paid minus owed.
	ErrCashChangeMismatch = errors.New("cash change does not match paid amount")

	// ErrOrderNotAssociated the payment references a different order.
	ErrOrderNotAssociated = errors.New("payment is not associated with order")

	// ErrConcurrentModification optimistic lock version mismatch.
	ErrConcurrentModification = errors.New("payment was modified concurrently")
)

// NewPaymentNotFoundError creates a payment-not-found error with stack.
func NewPaymentNotFoundError(paymentID string) error {
	return &paymentError{
		sentinel: ErrPaymentNotFound,
		message:  "payment not found: " + paymentID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientAmountError names both amounts.
func NewInsufficientAmountError(paymentID string, toPay, paid shared.Money) error {
	return &paymentError{
		sentinel: ErrInsufficientAmount,
		message:  fmt.Sprintf("payment %s: paid %s is less than amount to pay %s", paymentID, paid, toPay),
		stack:    shared.CaptureStack(3),
	}
}

// NewCashChangeMismatchError names expected and declared change.
func NewCashChangeMismatchError(paymentID string, expected, declared shared.Money) error {
	return &paymentError{
		sentinel: ErrCashChangeMismatch,
		message:  fmt.Sprintf("payment %s: cash change %s does not match expected %s", paymentID, declared, expected),
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(paymentID string) error {
	return &paymentError{
		sentinel: ErrConcurrentModification,
		message:  "payment was modified concurrently: " + paymentID,
		stack:    shared.CaptureStack(3),
	}
}

// NewOrderNotAssociatedError names both ids.
func NewOrderNotAssociatedError(paymentID, orderID string) error {
	return &paymentError{
		sentinel: ErrOrderNotAssociated,
		message:  fmt.Sprintf("payment %s is not associated with order %s", paymentID, orderID),
		stack:    shared.CaptureStack(3),
	}
}

type paymentError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *paymentError) Error() string { return e.message }

func (e *paymentError) Unwrap() error { return e.sentinel }

func (e *paymentError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
