package shared

import (
	"fmt"
	"time"
)

// DomainEvent records a fact that happened inside an aggregate.
// Events are collected by the unit of work, stored in the outbox table
// within the business transaction, and published asynchronously by the
// outbox worker.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	AggregateID() string
}

// ValidateEvent rejects structurally broken events before they reach
// the outbox.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.AggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
