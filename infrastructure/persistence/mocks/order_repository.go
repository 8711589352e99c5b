package mocks

import (
	"context"
	"sort"
	"sync"

	"shopcore/domain/order"
	"shopcore/domain/shared"
)

// MockOrderRepository is an in-memory order repository. Stored state
// is isolated from callers: Save and the finders copy through
// snapshots, so an aborted workflow never leaks partial mutations into
// the store. Version checks behave like the MySQL implementation.
type MockOrderRepository struct {
	orders map[string]order.Snapshot
	mu     sync.RWMutex
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]order.Snapshot),
	}
}

func snapshotOrder(o *order.Order) order.Snapshot {
	return order.Snapshot{
		ID:              o.ID(),
		UserID:          o.UserID(),
		PaymentID:       o.PaymentID(),
		DeliveryAddress: o.DeliveryAddress(),
		Items:           o.Items(),
		TotalAmount:     o.TotalAmount(),
		Status:          o.Status(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

// Save stores a snapshot of the aggregate, guarding the version the
// same way the MySQL repository does.
func (r *MockOrderRepository) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[o.ID()]
	if o.IsNew() {
		if exists {
			return shared.NewConflictError("order", "order already exists: "+o.ID())
		}
	} else {
		if !exists {
			return order.NewOrderNotFoundError(o.ID())
		}
		if stored.Version != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
		o.IncrementVersionForSave()
	}

	r.orders[o.ID()] = snapshotOrder(o)
	o.ClearNewFlag()
	return nil
}

// FindByID returns an isolated copy of the stored order.
func (r *MockOrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromSnapshot(snapshot), nil
}

// FindByUserID lists a user's orders, newest first.
func (r *MockOrderRepository) FindByUserID(_ context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, snapshot := range r.orders {
		if snapshot.UserID == userID {
			orders = append(orders, order.RebuildFromSnapshot(snapshot))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

// FindBySpecification filters the store with the given rule.
func (r *MockOrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, snapshot := range r.orders {
		o := order.RebuildFromSnapshot(snapshot)
		if spec.IsSatisfiedBy(ctx, o) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

var _ order.Repository = (*MockOrderRepository)(nil)
