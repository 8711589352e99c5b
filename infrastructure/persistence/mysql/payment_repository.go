package mysql

import (
	"context"
	"errors"

	"shopcore/domain/payment"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// PaymentRepository is the MySQL/GORM payment repository.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save persists the payment with a version-guarded update.
func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, p)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, p)
	})
}

func (r *PaymentRepository) saveWithTx(tx *gorm.DB, p *payment.Payment) error {
	paymentPO := po.FromPaymentDomain(p)

	if p.IsNew() {
		if err := tx.Create(paymentPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := p.Version()

		result := tx.Model(&po.PaymentPO{}).
			Where("id = ? AND version = ?", p.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"amount_paid": paymentPO.AmountPaid,
				"cash_change": paymentPO.CashChange,
				"status":      paymentPO.Status,
				"version":     expectedVersion + 1,
				"updated_at":  paymentPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.PaymentPO{}).Where("id = ?", p.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return payment.NewPaymentNotFoundError(p.ID())
			}
			return payment.NewConcurrentModificationError(p.ID())
		}

		p.IncrementVersionForSave()
	}

	p.ClearNewFlag()
	return nil
}

// FindByID loads one payment.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	var paymentPO po.PaymentPO

	result := r.getDB(ctx).First(&paymentPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payment.NewPaymentNotFoundError(id)
		}
		return nil, result.Error
	}

	return paymentPO.ToDomain(), nil
}

// FindByOrderID loads the payment attached to an order.
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	var paymentPO po.PaymentPO

	result := r.getDB(ctx).First(&paymentPO, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payment.NewPaymentNotFoundError(orderID)
		}
		return nil, result.Error
	}

	return paymentPO.ToDomain(), nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
