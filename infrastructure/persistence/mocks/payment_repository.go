package mocks

import (
	"context"
	"sync"

	"shopcore/domain/payment"
	"shopcore/domain/shared"
)

// MockPaymentRepository is an in-memory payment repository with the
// same snapshot isolation and version guard as the order mock.
type MockPaymentRepository struct {
	payments map[string]payment.Snapshot
	byOrder  map[string]string
	mu       sync.RWMutex
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]payment.Snapshot),
		byOrder:  make(map[string]string),
	}
}

func snapshotPayment(p *payment.Payment) payment.Snapshot {
	snapshot := payment.Snapshot{
		ID:          p.ID(),
		OrderID:     p.OrderID(),
		AmountToPay: p.AmountToPay(),
		Method:      p.PaymentMethod(),
		Status:      p.Status(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	if paid := p.AmountPaid(); paid != nil {
		v := *paid
		snapshot.AmountPaid = &v
	}
	if change := p.CashChange(); change != nil {
		v := *change
		snapshot.CashChange = &v
	}
	return snapshot
}

func (r *MockPaymentRepository) Save(_ context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.payments[p.ID()]
	if p.IsNew() {
		if exists {
			return shared.NewConflictError("payment", "payment already exists: "+p.ID())
		}
		if _, taken := r.byOrder[p.OrderID()]; taken {
			return shared.NewConflictError("payment", "order already has a payment: "+p.OrderID())
		}
	} else {
		if !exists {
			return payment.NewPaymentNotFoundError(p.ID())
		}
		if stored.Version != p.Version() {
			return payment.NewConcurrentModificationError(p.ID())
		}
		p.IncrementVersionForSave()
	}

	r.payments[p.ID()] = snapshotPayment(p)
	r.byOrder[p.OrderID()] = p.ID()
	p.ClearNewFlag()
	return nil
}

func (r *MockPaymentRepository) FindByID(_ context.Context, id string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.payments[id]
	if !ok {
		return nil, payment.NewPaymentNotFoundError(id)
	}
	return payment.RebuildFromSnapshot(snapshot), nil
}

func (r *MockPaymentRepository) FindByOrderID(_ context.Context, orderID string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, payment.NewPaymentNotFoundError(orderID)
	}
	return payment.RebuildFromSnapshot(r.payments[id]), nil
}

var _ payment.Repository = (*MockPaymentRepository)(nil)
