package payment

import (
	"net/http"

	"shopcore/api/response"
	paymentapp "shopcore/application/payment"
	"shopcore/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles payment endpoints.
type Controller struct {
	paymentService *paymentapp.Service
}

func NewController(paymentService *paymentapp.Service) *Controller {
	return &Controller{
		paymentService: paymentService,
	}
}

// RegisterRoutes mounts the payment routes on the API group.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	paymentGroup := router.Group("/payments")
	{
		paymentGroup.POST("", c.CreatePayment)
		paymentGroup.GET("/:id", c.GetPayment)
		paymentGroup.POST("/:id/process", c.ProcessPayment)
		paymentGroup.GET("/order/:orderId", c.GetOrderPayment)
	}
}

// CreatePayment opens a pending payment for an order.
// POST /api/v1/payments
func (c *Controller) CreatePayment(ctx *gin.Context) {
	var req paymentapp.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.CreatePayment(ctx.Request.Context(), &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, payment, "payment created successfully")
}

// GetPayment returns one payment.
// GET /api/v1/payments/:id
func (c *Controller) GetPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")
	if paymentID == "" {
		response.HandleError(ctx, errors.BadRequest("payment ID is required"), "payment ID is required", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.GetPayment(ctx.Request.Context(), paymentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, payment, "payment retrieved successfully")
}

// ProcessPayment settles a pending payment.
// POST /api/v1/payments/:id/process
func (c *Controller) ProcessPayment(ctx *gin.Context) {
	paymentID := ctx.Param("id")

	var req paymentapp.ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.ProcessPayment(ctx.Request.Context(), paymentID, &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, payment, "payment processed successfully")
}

// GetOrderPayment returns the payment attached to an order.
// GET /api/v1/payments/order/:orderId
func (c *Controller) GetOrderPayment(ctx *gin.Context) {
	orderID := ctx.Param("orderId")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.GetOrderPayment(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, payment, "payment retrieved successfully")
}
