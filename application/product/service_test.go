package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/infrastructure/persistence/mocks"
	apperrors "shopcore/pkg/errors"
)

func newService() (*Service, *mocks.MockProductRepository) {
	products := mocks.NewMockProductRepository()
	return NewService(products, mocks.NewMockUnitOfWork()), products
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:          "Keyboard",
		Description:   "87-key mechanical",
		Price:         "59.9",
		StockQuantity: 10,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "59.90", resp.Price)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, 10, resp.StockQuantity)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &CreateProductRequest{Name: "Keyboard", Price: "cheap"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	_, err = svc.CreateProduct(ctx, &CreateProductRequest{Name: "Keyboard", Price: "-1.00"})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestChangePriceAndRestock(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:          "Keyboard",
		Price:         "59.90",
		StockQuantity: 2,
	})
	require.NoError(t, err)

	priced, err := svc.ChangePrice(ctx, created.ID, &ChangePriceRequest{Price: "64.90"})
	require.NoError(t, err)
	assert.Equal(t, "64.90", priced.Price)

	stocked, err := svc.Restock(ctx, created.ID, &RestockRequest{Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 10, stocked.StockQuantity)
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.True(t, apperrors.Is(err, apperrors.CodeProductNotFound))
}

func TestListProducts(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, name := range []string{"Keyboard", "Mouse"} {
		_, err := svc.CreateProduct(ctx, &CreateProductRequest{Name: name, Price: "5.00"})
		require.NoError(t, err)
	}

	found, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
