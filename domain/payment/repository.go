package payment

import "context"

// Repository persists the Payment aggregate.
type Repository interface {
	// Save inserts a new payment or performs a version-guarded update.
	Save(ctx context.Context, p *Payment) error

	// FindByID returns an error matching ErrPaymentNotFound when the
	// id is unknown.
	FindByID(ctx context.Context, id string) (*Payment, error)

	// FindByOrderID returns the payment for an order, or an error
	// matching ErrPaymentNotFound when the order has none.
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
}
