package shared

import "context"

// UnitOfWork manages transaction boundaries and event collection.
//
// Usage:
//
//	err := uow.Execute(ctx, func(ctx context.Context) error {
//	    o, err := orderRepo.FindByID(ctx, orderID) // uses tx from ctx
//	    ...
//	    if err := orderRepo.Save(ctx, o); err != nil {
//	        return err
//	    }
//	    uow.RegisterDirty(o)
//	    return nil
//	})
//
// Execute begins the transaction, injects it into the context for
// repositories, saves events pulled from registered aggregates to the
// outbox, and commits. Any error rolls the whole transaction back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// OutboxRepository stores domain events in the outbox table within the
// current transaction.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
