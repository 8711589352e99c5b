package order

// Status is the order state machine:
//
//	Pending → Confirmed → Shipped → Delivered
//
// with Cancelled and Refunded as side branches. Delivered orders can
// only stay delivered or be refunded; cancelled orders are terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// canTransition is the single transition table for UpdateStatus.
// Confirm and Ship layer their extra preconditions (items, payment) on
// top of it.
func canTransition(from, to Status) bool {
	switch from {
	case StatusDelivered:
		return to == StatusDelivered || to == StatusRefunded
	case StatusCancelled:
		return to == StatusCancelled
	default:
		return true
	}
}
