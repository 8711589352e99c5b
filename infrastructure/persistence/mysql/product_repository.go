package mysql

import (
	"context"
	"errors"

	"shopcore/domain/product"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ProductRepository is the MySQL/GORM catalog repository.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save persists the product with a version-guarded update. Stock
// reservations ride on this guard: two workflows reducing the same
// product race on the version column and the loser retries.
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, p)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, p)
	})
}

func (r *ProductRepository) saveWithTx(tx *gorm.DB, p *product.Product) error {
	productPO := po.FromProductDomain(p)

	if p.IsNew() {
		if err := tx.Create(productPO).Error; err != nil {
			return err
		}
	} else {
		expectedVersion := p.Version()

		result := tx.Model(&po.ProductPO{}).
			Where("id = ? AND version = ?", p.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"name":           productPO.Name,
				"description":    productPO.Description,
				"price":          productPO.Price,
				"price_currency": productPO.PriceCurrency,
				"stock_quantity": productPO.StockQuantity,
				"version":        expectedVersion + 1,
				"updated_at":     productPO.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ProductPO{}).Where("id = ?", p.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return product.NewProductNotFoundError(p.ID())
			}
			return product.NewConcurrentModificationError(p.ID())
		}

		p.IncrementVersionForSave()
	}

	p.ClearNewFlag()
	return nil
}

// FindByID loads one product.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var productPO po.ProductPO

	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}

	return productPO.ToDomain(), nil
}

// FindByIDs batch-loads products keyed by id. Missing ids are simply
// absent from the map; callers decide whether that is an error.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*product.Product, error) {
	if len(ids) == 0 {
		return map[string]*product.Product{}, nil
	}

	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&productPOs).Error; err != nil {
		return nil, err
	}

	products := make(map[string]*product.Product, len(productPOs))
	for i := range productPOs {
		products[productPOs[i].ID] = productPOs[i].ToDomain()
	}
	return products, nil
}

// List returns the whole catalog, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Order("created_at DESC").Find(&productPOs).Error; err != nil {
		return nil, err
	}

	products := make([]*product.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}
	return products, nil
}

var _ product.Repository = (*ProductRepository)(nil)
