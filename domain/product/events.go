package product

import "time"

// StockReducedEvent is recorded when order completion reserves stock.
type StockReducedEvent struct {
	productID string
	quantity  int
	remaining int
	occurred  time.Time
}

func NewStockReducedEvent(productID string, quantity, remaining int) *StockReducedEvent {
	return &StockReducedEvent{
		productID: productID,
		quantity:  quantity,
		remaining: remaining,
		occurred:  time.Now(),
	}
}

func (e *StockReducedEvent) EventName() string     { return "product.stock_reduced" }
func (e *StockReducedEvent) OccurredOn() time.Time { return e.occurred }
func (e *StockReducedEvent) AggregateID() string   { return e.productID }
func (e *StockReducedEvent) ProductID() string     { return e.productID }
func (e *StockReducedEvent) Quantity() int         { return e.quantity }
func (e *StockReducedEvent) Remaining() int        { return e.remaining }
