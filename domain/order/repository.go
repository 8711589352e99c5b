package order

import (
	"context"

	"shopcore/domain/shared"
)

// Repository persists the Order aggregate. Implementations must go
// through Snapshot reconstruction and must not leak persistence types
// into the domain.
type Repository interface {
	// Save inserts a new aggregate or performs a version-guarded
	// update. On a version mismatch it returns an error matching
	// ErrConcurrentModification.
	Save(ctx context.Context, o *Order) error

	// FindByID loads the order with its items. Returns an error
	// matching ErrOrderNotFound when the id is unknown.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByUserID lists a user's orders, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)

	// FindBySpecification lists orders matching the given rule.
	FindBySpecification(ctx context.Context, spec shared.Specification[*Order]) ([]*Order, error)
}

// ByUserSpecification matches orders owned by a user.
type ByUserSpecification struct {
	UserID string
}

func (s ByUserSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.UserID() == s.UserID
}

// ByStatusSpecification matches orders in a given status.
type ByStatusSpecification struct {
	Status Status
}

func (s ByStatusSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.Status() == s.Status
}
