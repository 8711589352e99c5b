package po

import (
	"time"

	"shopcore/domain/payment"
	"shopcore/domain/shared"

	"github.com/shopspring/decimal"
)

// PaymentPO is the payment persistence object. AmountPaid and
// CashChange stay NULL until the payment is processed.
type PaymentPO struct {
	ID          string           `gorm:"primaryKey;size:64"`
	OrderID     string           `gorm:"size:64;uniqueIndex;not null"`
	AmountToPay decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	AmountPaid  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CashChange  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Currency    string           `gorm:"size:3;not null"`
	Method      string           `gorm:"size:20;not null"`
	Status      string           `gorm:"size:20;not null"`
	Version     int              `gorm:"default:0"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
}

func (PaymentPO) TableName() string {
	return "payments"
}

// FromPaymentDomain converts the aggregate to a persistence object.
func FromPaymentDomain(p *payment.Payment) *PaymentPO {
	paymentPO := &PaymentPO{
		ID:          p.ID(),
		OrderID:     p.OrderID(),
		AmountToPay: p.AmountToPay().Amount(),
		Currency:    p.AmountToPay().Currency(),
		Method:      string(p.PaymentMethod()),
		Status:      string(p.Status()),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	if paid := p.AmountPaid(); paid != nil {
		v := paid.Amount()
		paymentPO.AmountPaid = &v
	}
	if change := p.CashChange(); change != nil {
		v := change.Amount()
		paymentPO.CashChange = &v
	}
	return paymentPO
}

// ToDomain reconstructs the aggregate from the persistence object.
func (p *PaymentPO) ToDomain() *payment.Payment {
	snapshot := payment.Snapshot{
		ID:          p.ID,
		OrderID:     p.OrderID,
		AmountToPay: shared.NewMoney(p.AmountToPay, p.Currency),
		Method:      payment.Method(p.Method),
		Status:      payment.Status(p.Status),
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.AmountPaid != nil {
		paid := shared.NewMoney(*p.AmountPaid, p.Currency)
		snapshot.AmountPaid = &paid
	}
	if p.CashChange != nil {
		change := shared.NewMoney(*p.CashChange, p.Currency)
		snapshot.CashChange = &change
	}
	return payment.RebuildFromSnapshot(snapshot)
}
