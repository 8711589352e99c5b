package order

import (
	"time"

	"shopcore/domain/shared"
)

// OrderPlacedEvent is recorded when a new order is created.
type OrderPlacedEvent struct {
	orderID     string
	userID      string
	totalAmount shared.Money
	occurredOn  time.Time
}

func NewOrderPlacedEvent(orderID, userID string, totalAmount shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:     orderID,
		userID:      userID,
		totalAmount: totalAmount,
		occurredOn:  time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string          { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time      { return e.occurredOn }
func (e *OrderPlacedEvent) AggregateID() string        { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string            { return e.orderID }
func (e *OrderPlacedEvent) UserID() string             { return e.userID }
func (e *OrderPlacedEvent) TotalAmount() shared.Money  { return e.totalAmount }

// OrderConfirmedEvent is recorded when an order reaches CONFIRMED.
type OrderConfirmedEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderConfirmedEvent(orderID string) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{orderID: orderID, occurredOn: time.Now()}
}

func (e *OrderConfirmedEvent) EventName() string     { return "order.confirmed" }
func (e *OrderConfirmedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderConfirmedEvent) AggregateID() string   { return e.orderID }
func (e *OrderConfirmedEvent) OrderID() string       { return e.orderID }

// OrderShippedEvent is recorded when an order reaches SHIPPED.
type OrderShippedEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderShippedEvent(orderID string) *OrderShippedEvent {
	return &OrderShippedEvent{orderID: orderID, occurredOn: time.Now()}
}

func (e *OrderShippedEvent) EventName() string     { return "order.shipped" }
func (e *OrderShippedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderShippedEvent) AggregateID() string   { return e.orderID }
func (e *OrderShippedEvent) OrderID() string       { return e.orderID }

// OrderDeliveredEvent is recorded when an order reaches DELIVERED.
type OrderDeliveredEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderDeliveredEvent(orderID string) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{orderID: orderID, occurredOn: time.Now()}
}

func (e *OrderDeliveredEvent) EventName() string     { return "order.delivered" }
func (e *OrderDeliveredEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderDeliveredEvent) AggregateID() string   { return e.orderID }
func (e *OrderDeliveredEvent) OrderID() string       { return e.orderID }

// OrderCancelledEvent is recorded when an order is cancelled. The
// reason may be empty for generic status updates.
type OrderCancelledEvent struct {
	orderID    string
	reason     string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{orderID: orderID, reason: reason, occurredOn: time.Now()}
}

func (e *OrderCancelledEvent) EventName() string     { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderCancelledEvent) AggregateID() string   { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string       { return e.orderID }
func (e *OrderCancelledEvent) Reason() string        { return e.reason }

// OrderRefundedEvent is recorded when an order is refunded.
type OrderRefundedEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderRefundedEvent(orderID string) *OrderRefundedEvent {
	return &OrderRefundedEvent{orderID: orderID, occurredOn: time.Now()}
}

func (e *OrderRefundedEvent) EventName() string     { return "order.refunded" }
func (e *OrderRefundedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderRefundedEvent) AggregateID() string   { return e.orderID }
func (e *OrderRefundedEvent) OrderID() string       { return e.orderID }
