package product

import (
	"net/http"

	"shopcore/api/response"
	productapp "shopcore/application/product"
	"shopcore/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles catalog endpoints.
type Controller struct {
	productService *productapp.Service
}

func NewController(productService *productapp.Service) *Controller {
	return &Controller{
		productService: productService,
	}
}

// RegisterRoutes mounts the catalog routes on the API group.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.POST("", c.CreateProduct)
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
		productGroup.PUT("/:id", c.UpdateProduct)
		productGroup.PUT("/:id/price", c.ChangePrice)
		productGroup.POST("/:id/restock", c.Restock)
	}
}

// CreateProduct adds a product to the catalog.
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.CreateProduct(ctx.Request.Context(), &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// ListProducts returns the whole catalog.
// GET /api/v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	products, err := c.productService.ListProducts(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, products, "products retrieved successfully")
}

// GetProduct returns one product.
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	product, err := c.productService.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// UpdateProduct changes the product's displayed details.
// PUT /api/v1/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req productapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.UpdateProduct(ctx.Request.Context(), productID, &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// ChangePrice changes the catalog price.
// PUT /api/v1/products/:id/price
func (c *Controller) ChangePrice(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req productapp.ChangePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.ChangePrice(ctx.Request.Context(), productID, &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product price updated successfully")
}

// Restock adds stock back to a product.
// POST /api/v1/products/:id/restock
func (c *Controller) Restock(ctx *gin.Context) {
	productID := ctx.Param("id")

	var req productapp.RestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.Restock(ctx.Request.Context(), productID, &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product restocked successfully")
}
