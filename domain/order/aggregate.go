package order

import (
	"fmt"
	"time"

	"shopcore/domain/shared"

	"github.com/google/uuid"
)

// Order is the aggregate root of the ordering subdomain. It owns its
// line items, the delivery address and the status state machine, and it
// is the only place where the total amount is computed. All
// modifications to items go through Order methods; the items slice is
// never handed out by reference.
type Order struct {
	id              string
	userID          string
	paymentID       string // empty until a payment is assigned, set exactly once
	deliveryAddress Address
	items           []OrderItem
	totalAmount     shared.Money
	status          Status
	version         int
	createdAt       time.Time
	updatedAt       time.Time

	events []shared.DomainEvent
	isNew  bool
}

// OrderItem is a child entity of the Order aggregate. It snapshots the
// unit price at the time the product was added; the line total is
// recomputed on every quantity change.
type OrderItem struct {
	id        string
	productID string
	quantity  int
	unitPrice shared.Money
	lineTotal shared.Money
}

// StockChecker answers whether a product can cover a requested
// quantity. The product aggregate satisfies it; the order subdomain
// stays decoupled from the product package.
type StockChecker interface {
	IsStockQuantityAvailable(quantity int) bool
}

// ItemRequest is the input for creating one line item.
type ItemRequest struct {
	ProductID string
	Quantity  int
	UnitPrice shared.Money
	Stock     StockChecker
}

// ============================================================================
// Factory
// ============================================================================

// NewOrder is the only entry point for creating an Order. It validates
// the owner, the delivery address and every item, and guarantees the
// aggregate starts in a consistent state: Pending, at least one item,
// total equal to the sum of line totals.
func NewOrder(userID string, address Address, requests []ItemRequest) (*Order, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if address.IsZero() {
		return nil, ErrInvalidAddress
	}
	if len(requests) == 0 {
		return nil, ErrEmptyOrderItems
	}

	items := make([]OrderItem, 0, len(requests))
	for _, req := range requests {
		item, err := newOrderItem(req.ProductID, req.Quantity, req.UnitPrice, req.Stock)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:              orderID.String(),
		userID:          userID,
		deliveryAddress: address,
		items:           items,
		status:          StatusPending,
		version:         0,
		createdAt:       now,
		updatedAt:       now,
		events:          make([]shared.DomainEvent, 0),
		isNew:           true,
	}
	if err := o.recalculateTotalAmount(); err != nil {
		return nil, err
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, userID, o.totalAmount))
	return o, nil
}

func newOrderItem(productID string, quantity int, unitPrice shared.Money, stock StockChecker) (OrderItem, error) {
	if productID == "" {
		return OrderItem{}, shared.NewValidationError("order_item", "product_id", "product id must not be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	if stock == nil || !stock.IsStockQuantityAvailable(quantity) {
		return OrderItem{}, NewStockNotAvailableError(productID, quantity)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return OrderItem{}, fmt.Errorf("failed to generate order item ID: %w", err)
	}

	return OrderItem{
		id:        id.String(),
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		lineTotal: unitPrice.MultiplyBy(quantity),
	}, nil
}

// updateQuantity revalidates against stock and recomputes the line
// total. Only the owning Order calls it.
func (item *OrderItem) updateQuantity(newQuantity int, stock StockChecker) error {
	if newQuantity <= 0 {
		return ErrInvalidQuantity
	}
	if stock == nil || !stock.IsStockQuantityAvailable(newQuantity) {
		return NewStockNotAvailableError(item.productID, newQuantity)
	}
	item.quantity = newQuantity
	item.lineTotal = item.unitPrice.MultiplyBy(newQuantity)
	return nil
}

// ============================================================================
// Reconstruction - repository layer only
// ============================================================================

// Snapshot carries the persisted state of an Order. Only repository
// implementations use it to rebuild the aggregate without exposing
// setters on the domain type.
type Snapshot struct {
	ID              string
	UserID          string
	PaymentID       string
	DeliveryAddress Address
	Items           []OrderItem
	TotalAmount     shared.Money
	Status          Status
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RebuildFromSnapshot reconstructs an Order loaded from storage. The
// item list is copied; the aggregate must never alias a slice the
// repository keeps, or unsaved mutations would write through to it.
func RebuildFromSnapshot(s Snapshot) *Order {
	items := make([]OrderItem, len(s.Items))
	copy(items, s.Items)

	return &Order{
		id:              s.ID,
		userID:          s.UserID,
		paymentID:       s.PaymentID,
		deliveryAddress: s.DeliveryAddress,
		items:           items,
		totalAmount:     s.TotalAmount,
		status:          s.Status,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		events:          nil,
		isNew:           false,
	}
}

// ItemSnapshot carries the persisted state of one line item.
type ItemSnapshot struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice shared.Money
	LineTotal shared.Money
}

// RebuildItemFromSnapshot reconstructs an OrderItem loaded from storage.
func RebuildItemFromSnapshot(s ItemSnapshot) OrderItem {
	return OrderItem{
		id:        s.ID,
		productID: s.ProductID,
		quantity:  s.Quantity,
		unitPrice: s.UnitPrice,
		lineTotal: s.LineTotal,
	}
}

// ============================================================================
// Item management
// ============================================================================

// AddOrderItem appends a new line item. Adding a product that already
// has a line is a conflict; use UpdateOrderItem for delta merges.
func (o *Order) AddOrderItem(productID string, quantity int, unitPrice shared.Money, stock StockChecker) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	if o.findItemIndex(productID) >= 0 {
		return shared.NewConflictError("order", "order already contains an item for product "+productID)
	}

	item, err := newOrderItem(productID, quantity, unitPrice, stock)
	if err != nil {
		return err
	}

	o.items = append(o.items, item)
	return o.finishItemMutation()
}

// RemoveOrderItem deletes the line item for the given product. The last
// item cannot be removed: an order never exists without items.
func (o *Order) RemoveOrderItem(productID string) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	idx := o.findItemIndex(productID)
	if idx < 0 {
		return NewItemNotFoundError(productID)
	}
	if len(o.items) == 1 {
		return ErrEmptyOrderItems
	}

	o.items = append(o.items[:idx], o.items[idx+1:]...)
	return o.finishItemMutation()
}

// UpdateOrderItemQuantity sets an absolute quantity on an existing line
// item, revalidating stock.
func (o *Order) UpdateOrderItemQuantity(productID string, newQuantity int, stock StockChecker) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	idx := o.findItemIndex(productID)
	if idx < 0 {
		return NewItemNotFoundError(productID)
	}
	if err := o.items[idx].updateQuantity(newQuantity, stock); err != nil {
		return err
	}
	return o.finishItemMutation()
}

// UpdateOrderItem applies a quantity delta: it merges into an existing
// line, creates a new one, or removes the line when the resulting
// quantity drops to zero or below. This is the designated entry point
// for bulk adjustments to an existing order.
func (o *Order) UpdateOrderItem(productID string, quantityChange int, unitPrice shared.Money, stock StockChecker) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}

	idx := o.findItemIndex(productID)
	if idx < 0 {
		if quantityChange <= 0 {
			return NewItemNotFoundError(productID)
		}
		item, err := newOrderItem(productID, quantityChange, unitPrice, stock)
		if err != nil {
			return err
		}
		o.items = append(o.items, item)
		return o.finishItemMutation()
	}

	newQuantity := o.items[idx].quantity + quantityChange
	if newQuantity <= 0 {
		if len(o.items) == 1 {
			return ErrEmptyOrderItems
		}
		o.items = append(o.items[:idx], o.items[idx+1:]...)
		return o.finishItemMutation()
	}

	if err := o.items[idx].updateQuantity(newQuantity, stock); err != nil {
		return err
	}
	return o.finishItemMutation()
}

// ensureEditable guards item mutations: only pending or confirmed
// orders can change their items.
func (o *Order) ensureEditable() error {
	if o.status != StatusPending && o.status != StatusConfirmed {
		return ErrOrderNotEditable
	}
	return nil
}

func (o *Order) findItemIndex(productID string) int {
	for i, item := range o.items {
		if item.productID == productID {
			return i
		}
	}
	return -1
}

// finishItemMutation is the single tail of every item-mutating method.
func (o *Order) finishItemMutation() error {
	if err := o.recalculateTotalAmount(); err != nil {
		return err
	}
	o.updatedAt = time.Now()
	return nil
}

// recalculateTotalAmount is the only place the total is computed. The
// invariant: TotalAmount == sum of quantity * unit price over items.
func (o *Order) recalculateTotalAmount() error {
	if len(o.items) == 0 {
		o.totalAmount = shared.Zero(shared.DefaultCurrency)
		return nil
	}

	total := shared.Zero(o.items[0].unitPrice.Currency())
	var err error
	for _, item := range o.items {
		total, err = total.Add(item.lineTotal)
		if err != nil {
			return err
		}
	}
	o.totalAmount = total
	return nil
}

// ============================================================================
// Payment assignment and state machine
// ============================================================================

// AssignPayment links the payment to the order, exactly once.
func (o *Order) AssignPayment(paymentID string) error {
	if paymentID == "" {
		return ErrInvalidPaymentID
	}
	if o.paymentID != "" {
		return ErrPaymentAlreadyAssigned
	}
	o.paymentID = paymentID
	o.updatedAt = time.Now()
	return nil
}

// UpdateStatus applies the generic transition table. Delivered orders
// can only stay delivered or move to refunded; cancelled orders are
// terminal. Confirm and Ship add their own stricter preconditions on
// top of this table.
func (o *Order) UpdateStatus(newStatus Status) error {
	if !newStatus.IsValid() {
		return shared.NewValidationError("order", "status", "unknown order status: "+string(newStatus))
	}
	if !canTransition(o.status, newStatus) {
		return NewInvalidStateTransitionError(o.status, newStatus)
	}
	if o.status == newStatus {
		return nil
	}

	o.status = newStatus
	o.updatedAt = time.Now()
	o.recordStatusEvent(newStatus)
	return nil
}

// Confirm moves a pending order to confirmed. It requires at least one
// item and an assigned payment.
func (o *Order) Confirm() error {
	if o.status != StatusPending {
		return NewInvalidStateTransitionError(o.status, StatusConfirmed)
	}
	if len(o.items) == 0 {
		return ErrEmptyOrderItems
	}
	if o.paymentID == "" {
		return ErrPaymentNotAssigned
	}

	o.status = StatusConfirmed
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderConfirmedEvent(o.id))
	return nil
}

// Ship moves a confirmed order to shipped. Same item and payment
// requirements as Confirm.
func (o *Order) Ship() error {
	if o.status != StatusConfirmed {
		return NewInvalidStateTransitionError(o.status, StatusShipped)
	}
	if len(o.items) == 0 {
		return ErrEmptyOrderItems
	}
	if o.paymentID == "" {
		return ErrPaymentNotAssigned
	}

	o.status = StatusShipped
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderShippedEvent(o.id))
	return nil
}

// Cancel is a status change, not a deletion. Delivered orders cannot be
// cancelled, only refunded.
func (o *Order) Cancel(reason string) error {
	if err := o.UpdateStatus(StatusCancelled); err != nil {
		return err
	}
	// UpdateStatus records a reasonless event; replace it with one
	// carrying the cancellation reason.
	if n := len(o.events); n > 0 {
		if _, ok := o.events[n-1].(*OrderCancelledEvent); ok {
			o.events[n-1] = NewOrderCancelledEvent(o.id, reason)
		}
	}
	return nil
}

func (o *Order) recordStatusEvent(status Status) {
	switch status {
	case StatusConfirmed:
		o.events = append(o.events, NewOrderConfirmedEvent(o.id))
	case StatusShipped:
		o.events = append(o.events, NewOrderShippedEvent(o.id))
	case StatusDelivered:
		o.events = append(o.events, NewOrderDeliveredEvent(o.id))
	case StatusCancelled:
		o.events = append(o.events, NewOrderCancelledEvent(o.id, ""))
	case StatusRefunded:
		o.events = append(o.events, NewOrderRefundedEvent(o.id))
	}
}

// ============================================================================
// Accessors
// ============================================================================

func (o *Order) ID() string               { return o.id }
func (o *Order) UserID() string           { return o.userID }
func (o *Order) PaymentID() string        { return o.paymentID }
func (o *Order) HasPayment() bool         { return o.paymentID != "" }
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }

// Items returns a copy; the internal list is never exposed by reference.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() shared.Money { return o.totalAmount }
func (o *Order) Status() Status            { return o.status }
func (o *Order) Version() int              { return o.version }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// IsNew reports whether the aggregate was created in this session and
// has never been persisted. The repository uses it to choose between
// INSERT and version-guarded UPDATE.
func (o *Order) IsNew() bool { return o.isNew }

// IncrementVersionForSave is called by the repository after a
// successful persist; the version is never bumped by domain methods.
func (o *Order) IncrementVersionForSave() { o.version++ }

// ClearNewFlag marks the aggregate as persisted.
func (o *Order) ClearNewFlag() { o.isNew = false }

// PullEvents returns and clears the recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = o.events[:0]
	return events
}

// OrderItem accessors.

func (item OrderItem) ID() string              { return item.id }
func (item OrderItem) ProductID() string       { return item.productID }
func (item OrderItem) Quantity() int           { return item.quantity }
func (item OrderItem) UnitPrice() shared.Money { return item.unitPrice }
func (item OrderItem) LineTotal() shared.Money { return item.lineTotal }

var _ shared.AggregateRoot = (*Order)(nil)
