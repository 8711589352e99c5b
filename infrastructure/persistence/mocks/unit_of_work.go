package mocks

import (
	"context"

	"shopcore/domain/shared"
)

// MockUnitOfWork runs the business function without a real transaction
// and collects drained events so tests can assert on them.
type MockUnitOfWork struct {
	aggregates []shared.AggregateRoot
	events     []shared.DomainEvent
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		aggregates: make([]shared.AggregateRoot, 0),
	}
}

// Execute runs fn directly; there is no transaction and therefore no
// rollback. Atomicity in mock mode comes from the repositories instead:
// finders hand out isolated copies, so a failing fn abandons its
// mutated aggregates without any Save having touched the store. fn must
// keep the save-last discipline of the application services for that to
// hold.
func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = make([]shared.AggregateRoot, 0)

	if err := fn(ctx); err != nil {
		return err
	}

	for _, agg := range u.aggregates {
		u.events = append(u.events, agg.PullEvents()...)
	}

	return nil
}

func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// Events returns every event drained across all executions.
func (u *MockUnitOfWork) Events() []shared.DomainEvent {
	return u.events
}

// EventNames returns the drained event names in order.
func (u *MockUnitOfWork) EventNames() []string {
	names := make([]string, len(u.events))
	for i, event := range u.events {
		names[i] = event.EventName()
	}
	return names
}

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
