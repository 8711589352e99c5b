package mysql

import (
	"context"
	"errors"

	"shopcore/domain/order"
	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository is the MySQL/GORM order repository. It persists the
// aggregate only; event publishing goes through the outbox. GORM
// associations are not used so the aggregate boundary stays intact.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if present, otherwise the
// default connection.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save persists the order and its items. Inside a unit of work it uses
// the transaction from context; standalone it opens its own so the
// order row and item rows stay consistent.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := o.Version()

		// Optimistic lock: the update only lands when the stored
		// version still matches the one this aggregate was loaded at.
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"payment_id":       orderPO.PaymentID,
				"status":           orderPO.Status,
				"total_amount":     orderPO.TotalAmount,
				"total_currency":   orderPO.TotalCurrency,
				"address_street":   orderPO.AddressStreet,
				"address_city":     orderPO.AddressCity,
				"address_zip_code": orderPO.AddressZipCode,
				"address_country":  orderPO.AddressCountry,
				"version":          expectedVersion + 1,
				"updated_at":       orderPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return order.NewOrderNotFoundError(o.ID())
			}
			return order.NewConcurrentModificationError(o.ID())
		}

		o.IncrementVersionForSave()
	}

	// Items are replaced wholesale: delete then insert is simpler than
	// diffing and the line count per order is small.
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.ClearNewFlag()
	return nil
}

// FindByID loads the order and its items.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Items are loaded explicitly, not via Preload.
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", id).Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindByUserID lists a user's orders, newest first.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	return r.attachItems(db, orderPOs)
}

// FindBySpecification lists orders matching the rule. Known
// specifications translate to SQL; anything else falls back to
// in-memory filtering over the user's orders.
func (r *OrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	query := db
	switch s := spec.(type) {
	case order.ByUserSpecification:
		query = query.Where("user_id = ?", s.UserID)
	case order.ByStatusSpecification:
		query = query.Where("status = ?", string(s.Status))
	default:
		if err := db.Find(&orderPOs).Error; err != nil {
			return nil, err
		}
		orders, err := r.attachItems(db, orderPOs)
		if err != nil {
			return nil, err
		}
		filtered := make([]*order.Order, 0, len(orders))
		for _, o := range orders {
			if spec.IsSatisfiedBy(ctx, o) {
				filtered = append(filtered, o)
			}
		}
		return filtered, nil
	}

	if err := query.Order("created_at DESC").Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.attachItems(db, orderPOs)
}

func (r *OrderRepository) attachItems(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var itemPOs []po.OrderItemPO
		if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
