package mocks

import (
	"context"
	"sort"
	"sync"

	"shopcore/domain/product"
	"shopcore/domain/shared"
)

// MockProductRepository is an in-memory catalog repository with the
// same snapshot isolation and version guard as the order mock.
type MockProductRepository struct {
	products map[string]product.Snapshot
	mu       sync.RWMutex
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]product.Snapshot),
	}
}

func snapshotProduct(p *product.Product) product.Snapshot {
	return product.Snapshot{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func (r *MockProductRepository) Save(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.products[p.ID()]
	if p.IsNew() {
		if exists {
			return shared.NewConflictError("product", "product already exists: "+p.ID())
		}
	} else {
		if !exists {
			return product.NewProductNotFoundError(p.ID())
		}
		if stored.Version != p.Version() {
			return product.NewConcurrentModificationError(p.ID())
		}
		p.IncrementVersionForSave()
	}

	r.products[p.ID()] = snapshotProduct(p)
	p.ClearNewFlag()
	return nil
}

func (r *MockProductRepository) FindByID(_ context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return product.RebuildFromSnapshot(snapshot), nil
}

func (r *MockProductRepository) FindByIDs(_ context.Context, ids []string) (map[string]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make(map[string]*product.Product, len(ids))
	for _, id := range ids {
		if snapshot, ok := r.products[id]; ok {
			products[id] = product.RebuildFromSnapshot(snapshot)
		}
	}
	return products, nil
}

func (r *MockProductRepository) List(_ context.Context) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*product.Product, 0, len(r.products))
	for _, snapshot := range r.products {
		products = append(products, product.RebuildFromSnapshot(snapshot))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt().After(products[j].CreatedAt())
	})
	return products, nil
}

var _ product.Repository = (*MockProductRepository)(nil)
