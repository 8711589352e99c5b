package product

import (
	"context"
	"time"

	"shopcore/domain/product"
	"shopcore/domain/shared"
	"shopcore/pkg/errors"
	"shopcore/pkg/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         string `json:"price" binding:"required"`
	Currency      string `json:"currency"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
}

// UpdateProductRequest changes the displayed details.
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ChangePriceRequest changes the catalog price.
type ChangePriceRequest struct {
	Price    string `json:"price" binding:"required"`
	Currency string `json:"currency"`
}

// RestockRequest adds stock back to a product.
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ProductResponse is the catalog projection returned to callers.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	Currency      string    `json:"currency"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         p.Price().Amount().StringFixed(2),
		Currency:      p.Price().Currency(),
		StockQuantity: p.StockQuantity(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// Service orchestrates catalog use cases.
type Service struct {
	products product.Repository
	uow      shared.UnitOfWork
}

func NewService(products product.Repository, uow shared.UnitOfWork) *Service {
	return &Service{products: products, uow: uow}
}

func (s *Service) parsePrice(raw, currency string) (shared.Money, error) {
	if currency == "" {
		currency = shared.DefaultCurrency
	}
	price, err := shared.NewMoneyFromString(raw, currency)
	if err != nil {
		return shared.Money{}, errors.Validation("price is not a valid amount")
	}
	return price, nil
}

// CreateProduct adds a product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	price, err := s.parsePrice(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	var created *product.Product
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		p, err := product.NewProduct(req.Name, req.Description, price, req.StockQuantity)
		if err != nil {
			return err
		}
		if err := s.products.Save(txCtx, p); err != nil {
			return err
		}
		s.uow.RegisterNew(p)
		created = p
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}

	logger.Info("product created",
		zap.String("product_id", created.ID()),
		zap.String("name", created.Name()))
	return toResponse(created), nil
}

// UpdateProduct changes the product's displayed details.
func (s *Service) UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (*ProductResponse, error) {
	var updated *product.Product
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		p, err := s.products.FindByID(txCtx, productID)
		if err != nil {
			return err
		}
		if err := p.UpdateDetails(req.Name, req.Description); err != nil {
			return err
		}
		if err := s.products.Save(txCtx, p); err != nil {
			return err
		}
		s.uow.RegisterDirty(p)
		updated = p
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(updated), nil
}

// ChangePrice changes the catalog price. Existing order lines keep the
// unit price they were created with.
func (s *Service) ChangePrice(ctx context.Context, productID string, req *ChangePriceRequest) (*ProductResponse, error) {
	price, err := s.parsePrice(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	var updated *product.Product
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		p, err := s.products.FindByID(txCtx, productID)
		if err != nil {
			return err
		}
		if err := p.ChangePrice(price); err != nil {
			return err
		}
		if err := s.products.Save(txCtx, p); err != nil {
			return err
		}
		s.uow.RegisterDirty(p)
		updated = p
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(updated), nil
}

// Restock adds quantity back to a product's stock.
func (s *Service) Restock(ctx context.Context, productID string, req *RestockRequest) (*ProductResponse, error) {
	var updated *product.Product
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		p, err := s.products.FindByID(txCtx, productID)
		if err != nil {
			return err
		}
		if err := p.RestockQuantity(req.Quantity); err != nil {
			return err
		}
		if err := s.products.Save(txCtx, p); err != nil {
			return err
		}
		s.uow.RegisterDirty(p)
		updated = p
		return nil
	})
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(updated), nil
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return toResponse(p), nil
}

// ListProducts returns the whole catalog.
func (s *Service) ListProducts(ctx context.Context) ([]*ProductResponse, error) {
	found, err := s.products.List(ctx)
	if err != nil {
		return nil, errors.FromDomainError(err)
	}
	return lo.Map(found, func(p *product.Product, _ int) *ProductResponse {
		return toResponse(p)
	}), nil
}
