package po

import (
	"time"

	"shopcore/domain/order"
	"shopcore/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO is the order persistence object. It only maps the database
// row; GORM associations are not used so the aggregate boundary stays
// with the domain layer.
type OrderPO struct {
	ID             string          `gorm:"primaryKey;size:64"`
	UserID         string          `gorm:"size:64;index;not null"`
	PaymentID      string          `gorm:"size:64;index"`
	Status         string          `gorm:"size:20;not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCurrency  string          `gorm:"size:3;not null"`
	AddressStreet  string          `gorm:"size:255;not null"`
	AddressCity    string          `gorm:"size:100;not null"`
	AddressZipCode string          `gorm:"size:20;not null"`
	AddressCountry string          `gorm:"size:100;not null"`
	Version        int             `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO is the line item persistence object.
type OrderItemPO struct {
	ID            string          `gorm:"primaryKey;size:128"`
	OrderID       string          `gorm:"size:64;index;not null"`
	ProductID     string          `gorm:"size:64;not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitCurrency  string          `gorm:"size:3;not null"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCurrency string          `gorm:"size:3;not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate to persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	addr := o.DeliveryAddress()
	orderPO := &OrderPO{
		ID:             o.ID(),
		UserID:         o.UserID(),
		PaymentID:      o.PaymentID(),
		Status:         string(o.Status()),
		TotalAmount:    o.TotalAmount().Amount(),
		TotalCurrency:  o.TotalAmount().Currency(),
		AddressStreet:  addr.Street(),
		AddressCity:    addr.City(),
		AddressZipCode: addr.ZipCode(),
		AddressCountry: addr.Country(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:            item.ID(),
			OrderID:       o.ID(),
			ProductID:     item.ProductID(),
			Quantity:      item.Quantity(),
			UnitPrice:     item.UnitPrice().Amount(),
			UnitCurrency:  item.UnitPrice().Currency(),
			LineTotal:     item.LineTotal().Amount(),
			TotalCurrency: item.LineTotal().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the aggregate from persistence objects. The
// address was validated on the way in, so the raw fields are trusted.
func (p *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromSnapshot(order.ItemSnapshot{
			ID:        itemPO.ID,
			ProductID: itemPO.ProductID,
			Quantity:  itemPO.Quantity,
			UnitPrice: shared.NewMoney(itemPO.UnitPrice, itemPO.UnitCurrency),
			LineTotal: shared.NewMoney(itemPO.LineTotal, itemPO.TotalCurrency),
		})
	}

	return order.RebuildFromSnapshot(order.Snapshot{
		ID:              p.ID,
		UserID:          p.UserID,
		PaymentID:       p.PaymentID,
		DeliveryAddress: order.RebuildAddress(p.AddressStreet, p.AddressCity, p.AddressZipCode, p.AddressCountry),
		Items:           items,
		TotalAmount:     shared.NewMoney(p.TotalAmount, p.TotalCurrency),
		Status:          order.Status(p.Status),
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	})
}
