package po

import (
	"time"

	"shopcore/domain/product"
	"shopcore/domain/shared"

	"github.com/shopspring/decimal"
)

// ProductPO is the catalog persistence object.
type ProductPO struct {
	ID            string          `gorm:"primaryKey;size:64"`
	Name          string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceCurrency string          `gorm:"size:3;not null"`
	StockQuantity int             `gorm:"not null"`
	Version       int             `gorm:"default:0"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain converts the aggregate to a persistence object.
func FromProductDomain(p *product.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		StockQuantity: p.StockQuantity(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain reconstructs the aggregate from the persistence object.
func (p *ProductPO) ToDomain() *product.Product {
	return product.RebuildFromSnapshot(product.Snapshot{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         shared.NewMoney(p.Price, p.PriceCurrency),
		StockQuantity: p.StockQuantity,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	})
}
