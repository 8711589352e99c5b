// Package product holds the Product aggregate: catalog data plus the
// stock quantity that order completion reserves against. Stock is the
// only field in the system subject to concurrent writers, so the
// aggregate carries an optimistic-lock version token checked by the
// repository on every update.
package product

import (
	"fmt"
	"time"

	"shopcore/domain/shared"

	"github.com/google/uuid"
)

// Product aggregate root.
type Product struct {
	id            string
	name          string
	description   string
	price         shared.Money
	stockQuantity int
	version       int
	createdAt     time.Time
	updatedAt     time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewProduct validates and creates a Product. Name must be non-empty,
// price positive, stock non-negative.
func NewProduct(name, description string, price shared.Money, stockQuantity int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if stockQuantity < 0 {
		return nil, ErrNegativeStock
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	return &Product{
		id:            id.String(),
		name:          name,
		description:   description,
		price:         price,
		stockQuantity: stockQuantity,
		version:       0,
		createdAt:     now,
		updatedAt:     now,
		events:        make([]shared.DomainEvent, 0),
		isNew:         true,
	}, nil
}

// Snapshot carries persisted product state; repository use only.
type Snapshot struct {
	ID            string
	Name          string
	Description   string
	Price         shared.Money
	StockQuantity int
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromSnapshot reconstructs a Product loaded from storage.
func RebuildFromSnapshot(s Snapshot) *Product {
	return &Product{
		id:            s.ID,
		name:          s.Name,
		description:   s.Description,
		price:         s.Price,
		stockQuantity: s.StockQuantity,
		version:       s.Version,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		events:        nil,
		isNew:         false,
	}
}

// UpdateDetails changes name and description.
func (p *Product) UpdateDetails(name, description string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.name = name
	p.description = description
	p.updatedAt = time.Now()
	return nil
}

// ChangePrice sets a new positive price. Existing order items keep
// their snapshotted price.
func (p *Product) ChangePrice(price shared.Money) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	p.price = price
	p.updatedAt = time.Now()
	return nil
}

// IsStockQuantityAvailable is a pure predicate with no side effect.
func (p *Product) IsStockQuantityAvailable(quantity int) bool {
	return quantity > 0 && p.stockQuantity >= quantity
}

// ReduceStockQuantity decrements the stock. It fails on non-positive
// amounts and on insufficient stock, leaving the quantity unchanged.
// Stock never goes negative.
func (p *Product) ReduceStockQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidReduceQuantity
	}
	if p.stockQuantity < quantity {
		return NewInsufficientStockError(p.id, p.stockQuantity, quantity)
	}

	p.stockQuantity -= quantity
	p.updatedAt = time.Now()
	p.events = append(p.events, NewStockReducedEvent(p.id, quantity, p.stockQuantity))
	return nil
}

// RestockQuantity adds stock back, e.g. after a cancellation.
func (p *Product) RestockQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidReduceQuantity
	}
	p.stockQuantity += quantity
	p.updatedAt = time.Now()
	return nil
}

func (p *Product) ID() string           { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) StockQuantity() int   { return p.stockQuantity }
func (p *Product) Version() int         { return p.version }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
func (p *Product) IsNew() bool          { return p.isNew }

// IncrementVersionForSave is called by the repository after a
// successful version-guarded update.
func (p *Product) IncrementVersionForSave() { p.version++ }

// ClearNewFlag marks the aggregate as persisted.
func (p *Product) ClearNewFlag() { p.isNew = false }

// PullEvents returns and clears recorded domain events.
func (p *Product) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(p.events))
	copy(events, p.events)
	p.events = p.events[:0]
	return events
}

var _ shared.AggregateRoot = (*Product)(nil)
