package shared

// AggregateRoot is the entry point of an aggregate. It has a global
// identity, guards the invariants of the objects it owns, and records
// the domain events produced by state changes.
type AggregateRoot interface {
	// ID returns the global identity of the aggregate.
	ID() string

	// Version returns the optimistic-lock version token.
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// The unit of work calls it inside the transaction to persist
	// events to the outbox atomically with the aggregate state.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attributes.
type Entity interface {
	ID() string
}

// ValueObject is immutable and compared by value. Go cannot enforce
// immutability, so value objects keep their fields private and expose
// no mutators.
type ValueObject interface {
	Equals(other interface{}) bool
}
