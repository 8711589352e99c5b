package product

import (
	"errors"
	"fmt"

	"shopcore/domain/shared"
)

var (
	// ErrProductNotFound product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrConcurrentModification optimistic-lock conflict on the stock
	// row; callers may retry.
	ErrConcurrentModification = errors.New("product was modified by another transaction, please retry")

	// ErrEmptyName product name is required.
	ErrEmptyName = errors.New("product name must not be empty")

	// ErrInvalidPrice price must be positive.
	ErrInvalidPrice = errors.New("product price must be positive")

	// ErrNegativeStock stock quantity can never be negative.
	ErrNegativeStock = errors.New("stock quantity must not be negative")

	// ErrInvalidReduceQuantity reduction amount must be positive.
	ErrInvalidReduceQuantity = errors.New("quantity to reduce must be positive")

	// ErrInsufficientStock the product cannot cover the reduction.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// NewProductNotFoundError creates a product-not-found error with stack.
func NewProductNotFoundError(productID string) error {
	return &productError{
		sentinel: ErrProductNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(productID string) error {
	return &productError{
		sentinel: ErrConcurrentModification,
		message:  "product " + productID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientStockError names the product and both quantities.
func NewInsufficientStockError(productID string, available, requested int) error {
	return &productError{
		sentinel: ErrInsufficientStock,
		message:  fmt.Sprintf("insufficient stock for product %s: available %d, requested %d", productID, available, requested),
		stack:    shared.CaptureStack(3),
	}
}

type productError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *productError) Error() string { return e.message }

func (e *productError) Unwrap() error { return e.sentinel }

func (e *productError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
