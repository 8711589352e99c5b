// Package payment holds the Payment aggregate, one-to-one with an
// order. Processing is a local state update; no gateway is involved.
package payment

import (
	"fmt"
	"time"

	"shopcore/domain/shared"

	"github.com/google/uuid"
)

// Status is the payment state machine: PENDING → SUCCEEDED, terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSucceeded Status = "SUCCEEDED"
)

// Method is how the payment is settled.
type Method string

const (
	MethodCash Method = "CASH"
	MethodCard Method = "CARD"
)

// IsValid reports whether m is a known method.
func (m Method) IsValid() bool {
	return m == MethodCash || m == MethodCard
}

// Payment aggregate root. AmountPaid and CashChange stay nil until the
// payment is processed.
type Payment struct {
	id          string
	orderID     string
	amountToPay shared.Money
	amountPaid  *shared.Money
	cashChange  *shared.Money
	method      Method
	status      Status
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewPayment creates a pending payment for an order. The amount to pay
// must be positive.
func NewPayment(orderID string, amountToPay shared.Money, method Method) (*Payment, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	if !amountToPay.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment ID: %w", err)
	}

	now := time.Now()
	return &Payment{
		id:          id.String(),
		orderID:     orderID,
		amountToPay: amountToPay,
		method:      method,
		status:      StatusPending,
		version:     0,
		createdAt:   now,
		updatedAt:   now,
		events:      make([]shared.DomainEvent, 0),
		isNew:       true,
	}, nil
}

// Snapshot carries persisted payment state; repository use only.
type Snapshot struct {
	ID          string
	OrderID     string
	AmountToPay shared.Money
	AmountPaid  *shared.Money
	CashChange  *shared.Money
	Method      Method
	Status      Status
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromSnapshot reconstructs a Payment loaded from storage.
func RebuildFromSnapshot(s Snapshot) *Payment {
	return &Payment{
		id:          s.ID,
		orderID:     s.OrderID,
		amountToPay: s.AmountToPay,
		amountPaid:  s.AmountPaid,
		cashChange:  s.CashChange,
		method:      s.Method,
		status:      s.Status,
		version:     s.Version,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		events:      nil,
		isNew:       false,
	}
}

// Process settles the payment, exactly once:
//   - the payment must still be pending,
//   - the paid amount must be positive and cover the amount owed,
//   - the declared change must equal paid minus owed, exactly.
//
// Amounts are fixed-scale decimals, so equality is strict; there is no
// rounding tolerance.
func (p *Payment) Process(amountPaid, cashChange shared.Money) error {
	if p.status != StatusPending {
		return ErrAlreadyProcessed
	}
	if !amountPaid.IsPositive() {
		return ErrInvalidAmount
	}
	if amountPaid.IsLessThan(p.amountToPay) {
		return NewInsufficientAmountError(p.id, p.amountToPay, amountPaid)
	}

	expectedChange, err := amountPaid.Subtract(p.amountToPay)
	if err != nil {
		return err
	}
	if !expectedChange.Equals(cashChange) {
		return NewCashChangeMismatchError(p.id, expectedChange, cashChange)
	}

	p.amountPaid = &amountPaid
	p.cashChange = &cashChange
	p.status = StatusSucceeded
	p.updatedAt = time.Now()
	p.events = append(p.events, NewPaymentSucceededEvent(p.id, p.orderID, amountPaid))
	return nil
}

// IsSucceeded reports whether the payment has been settled.
func (p *Payment) IsSucceeded() bool { return p.status == StatusSucceeded }

func (p *Payment) ID() string                { return p.id }
func (p *Payment) OrderID() string           { return p.orderID }
func (p *Payment) AmountToPay() shared.Money { return p.amountToPay }

// AmountPaid returns nil until the payment is processed.
func (p *Payment) AmountPaid() *shared.Money { return p.amountPaid }

// CashChange returns nil until the payment is processed.
func (p *Payment) CashChange() *shared.Money { return p.cashChange }

func (p *Payment) PaymentMethod() Method { return p.method }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) Version() int          { return p.version }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Payment) IsNew() bool           { return p.isNew }

// IncrementVersionForSave is called by the repository after a
// successful persist.
func (p *Payment) IncrementVersionForSave() { p.version++ }

// ClearNewFlag marks the aggregate as persisted.
func (p *Payment) ClearNewFlag() { p.isNew = false }

// PullEvents returns and clears recorded domain events.
func (p *Payment) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(p.events))
	copy(events, p.events)
	p.events = p.events[:0]
	return events
}

var _ shared.AggregateRoot = (*Payment)(nil)
