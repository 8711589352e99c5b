package payment

import (
	"time"

	"shopcore/domain/shared"
)

// PaymentSucceededEvent is recorded when a payment is settled.
type PaymentSucceededEvent struct {
	paymentID  string
	orderID    string
	amountPaid shared.Money
	occurredOn time.Time
}

func NewPaymentSucceededEvent(paymentID, orderID string, amountPaid shared.Money) *PaymentSucceededEvent {
	return &PaymentSucceededEvent{
		paymentID:  paymentID,
		orderID:    orderID,
		amountPaid: amountPaid,
		occurredOn: time.Now(),
	}
}

func (e *PaymentSucceededEvent) EventName() string         { return "payment.succeeded" }
func (e *PaymentSucceededEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *PaymentSucceededEvent) AggregateID() string       { return e.paymentID }
func (e *PaymentSucceededEvent) PaymentID() string         { return e.paymentID }
func (e *PaymentSucceededEvent) OrderID() string           { return e.orderID }
func (e *PaymentSucceededEvent) AmountPaid() shared.Money  { return e.amountPaid }
