package po

import (
	"encoding/json"
	"time"

	"shopcore/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO is the transactional outbox row. Events are written in
// the same transaction as the aggregates that produced them and
// published asynchronously by the outbox worker.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus is the outbox row lifecycle.
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent converts a domain event to an outbox row.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	eventID, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:          eventID.String(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// serializeEventToJSON flattens an event into a generic JSON document.
// Event payloads stay loosely typed so consumers never depend on the
// domain packages. Monetary amounts are rendered as decimal strings.
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.AggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if g, ok := event.(interface{ OrderID() string }); ok {
		eventData["order_id"] = g.OrderID()
	}
	if g, ok := event.(interface{ UserID() string }); ok {
		eventData["user_id"] = g.UserID()
	}
	if g, ok := event.(interface{ TotalAmount() shared.Money }); ok {
		money := g.TotalAmount()
		eventData["total_amount"] = money.Amount().StringFixed(2)
		eventData["total_currency"] = money.Currency()
	}
	if g, ok := event.(interface{ Reason() string }); ok {
		if reason := g.Reason(); reason != "" {
			eventData["reason"] = reason
		}
	}
	if g, ok := event.(interface{ ProductID() string }); ok {
		eventData["product_id"] = g.ProductID()
	}
	if g, ok := event.(interface{ Quantity() int }); ok {
		eventData["quantity"] = g.Quantity()
	}
	if g, ok := event.(interface{ Remaining() int }); ok {
		eventData["remaining"] = g.Remaining()
	}
	if g, ok := event.(interface{ PaymentID() string }); ok {
		eventData["payment_id"] = g.PaymentID()
	}
	if g, ok := event.(interface{ AmountPaid() shared.Money }); ok {
		money := g.AmountPaid()
		eventData["amount_paid"] = money.Amount().StringFixed(2)
		eventData["paid_currency"] = money.Currency()
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ToEventData decodes the payload back into a generic map.
func (p *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(p.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
