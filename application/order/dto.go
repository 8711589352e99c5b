package order

import (
	"time"

	"shopcore/domain/order"
	"shopcore/domain/shared"

	"github.com/samber/lo"
)

// CreateOrderRequest creates a new order for a user.
type CreateOrderRequest struct {
	UserID          string             `json:"user_id" binding:"required"`
	DeliveryAddress AddressRequest     `json:"delivery_address" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AddressRequest carries the delivery address fields.
type AddressRequest struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// OrderItemRequest references a product and a quantity; the unit price
// is snapshotted from the catalog, never supplied by the caller.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateStatusRequest changes the order status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkUpdateItemsRequest applies quantity deltas to an order's items.
type BulkUpdateItemsRequest struct {
	Items []ItemDeltaRequest `json:"items" binding:"required,min=1,dive"`
}

// ItemDeltaRequest is one delta: positive adds, negative removes.
type ItemDeltaRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	QuantityChange int    `json:"quantity_change" binding:"required"`
}

// OrderResponse is the order projection returned to callers.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	PaymentID       string              `json:"payment_id,omitempty"`
	Status          string              `json:"status"`
	TotalAmount     MoneyResponse       `json:"total_amount"`
	DeliveryAddress AddressResponse     `json:"delivery_address"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemResponse is one line item projection.
type OrderItemResponse struct {
	ProductID string        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	UnitPrice MoneyResponse `json:"unit_price"`
	LineTotal MoneyResponse `json:"line_total"`
}

// AddressResponse mirrors the delivery address.
type AddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// MoneyResponse renders a fixed-scale amount as a string.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoneyResponse(m shared.Money) MoneyResponse {
	return MoneyResponse{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

func toResponse(o *order.Order) *OrderResponse {
	addr := o.DeliveryAddress()
	return &OrderResponse{
		ID:          o.ID(),
		UserID:      o.UserID(),
		PaymentID:   o.PaymentID(),
		Status:      string(o.Status()),
		TotalAmount: toMoneyResponse(o.TotalAmount()),
		DeliveryAddress: AddressResponse{
			Street:  addr.Street(),
			City:    addr.City(),
			ZipCode: addr.ZipCode(),
			Country: addr.Country(),
		},
		Items: lo.Map(o.Items(), func(item order.OrderItem, _ int) OrderItemResponse {
			return OrderItemResponse{
				ProductID: item.ProductID(),
				Quantity:  item.Quantity(),
				UnitPrice: toMoneyResponse(item.UnitPrice()),
				LineTotal: toMoneyResponse(item.LineTotal()),
			}
		}),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}
