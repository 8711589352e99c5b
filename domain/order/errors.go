/*
Package order - order subdomain errors.

Design:
 1. Sentinel errors support errors.Is() classification.
 2. Constructors capture the stack at creation time so the API layer
    can log the exact point of failure.
 3. No HTTP status codes or other transport concepts here.
*/
package order

import (
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

var (
	// ErrOrderNotFound order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification optimistic-lock conflict; callers may retry.
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrInvalidStateTransition the requested status change is not allowed.
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// ErrEmptyOrderItems an order always has at least one item.
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity item quantity must be positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrStockNotAvailable the referenced product cannot cover the quantity.
	ErrStockNotAvailable = errors.New("stock not available for requested quantity")

	// ErrItemNotFound no line item for the given product.
	ErrItemNotFound = errors.New("cannot remove non-existing item")

	// ErrPaymentAlreadyAssigned AssignPayment succeeds exactly once.
	ErrPaymentAlreadyAssigned = errors.New("payment already assigned to order")

	// ErrInvalidPaymentID the payment identity is empty.
	ErrInvalidPaymentID = errors.New("payment id must not be empty")

	// ErrPaymentNotAssigned confirmation and shipping require a payment.
	ErrPaymentNotAssigned = errors.New("order has no payment assigned")

	// ErrOrderNotEditable item mutations are only allowed while the
	// order is pending or confirmed.
	ErrOrderNotEditable = errors.New("order items can only be changed while pending or confirmed")

	// ErrInvalidAddress a delivery address component is missing.
	ErrInvalidAddress = errors.New("invalid delivery address")

	// ErrInvalidUserID an order always belongs to a user.
	ErrInvalidUserID = errors.New("user id must not be empty")
)

// NewOrderNotFoundError creates an order-not-found error with stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStateTransitionError names both ends of the rejected transition.
func NewInvalidStateTransitionError(from, to Status) error {
	return &orderError{
		sentinel: ErrInvalidStateTransition,
		message:  fmt.Sprintf("cannot transition order from %s to %s", from, to),
		stack:    shared.CaptureStack(3),
	}
}

// NewStockNotAvailableError names the product that cannot cover the quantity.
func NewStockNotAvailableError(productID string, quantity int) error {
	return &orderError{
		sentinel: ErrStockNotAvailable,
		message:  fmt.Sprintf("stock not available: product %s, requested quantity %d", productID, quantity),
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNotFoundError names the product with no line item on the order.
func NewItemNotFoundError(productID string) error {
	return &orderError{
		sentinel: ErrItemNotFound,
		message:  "cannot remove non-existing item: product " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidAddressError names the missing address component.
func NewInvalidAddressError(field string) error {
	return &orderError{
		sentinel: ErrInvalidAddress,
		field:    field,
		message:  "delivery address " + field + " is required",
		stack:    shared.CaptureStack(3),
	}
}

// orderError implements error, Unwrap and shared.Stacker.
type orderError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *orderError) Error() string { return e.message }

func (e *orderError) Unwrap() error { return e.sentinel }

func (e *orderError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
