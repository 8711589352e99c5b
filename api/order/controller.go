// Package order exposes the order HTTP API. Controllers parse
// parameters, call the application service, and hand results to the
// response package; binding errors return 400 directly and business
// errors go through response.HandleAppError for status mapping.
package order

import (
	"net/http"

	"shopcore/api/response"
	orderapp "shopcore/application/order"
	"shopcore/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles order endpoints.
type Controller struct {
	orderService *orderapp.Service
}

func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes mounts the order routes on the API group.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/user/:userId", c.GetUserOrders)
		orderGroup.PUT("/:id/status", c.UpdateOrderStatus)
		orderGroup.PUT("/:id/items", c.UpdateOrderItems)
		orderGroup.POST("/:id/process", c.ProcessOrder)
		orderGroup.POST("/:id/ship", c.ShipOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
	}
}

// CreateOrder places a new order.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctx.Request.Context(), &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// GetOrder returns one order.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// GetUserOrders lists a user's orders, optionally narrowed by the
// status query parameter.
// GET /api/v1/orders/user/:userId?status=cancelled
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.GetUserOrders(ctx.Request.Context(), userID, ctx.Query("status"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// UpdateOrderStatus transitions the order status.
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateStatus(ctx.Request.Context(), orderID, &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order status updated successfully")
}

// UpdateOrderItems applies quantity deltas to the order's items.
// PUT /api/v1/orders/:id/items
func (c *Controller) UpdateOrderItems(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req orderapp.BulkUpdateItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateBulkOrderItems(ctx.Request.Context(), orderID, &req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order items updated successfully")
}

// ProcessOrderRequest links the payment for processing.
type ProcessOrderRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

// ProcessOrder reserves stock, assigns the payment and confirms.
// POST /api/v1/orders/:id/process
func (c *Controller) ProcessOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req ProcessOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CompleteProcessing(ctx.Request.Context(), orderID, req.PaymentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order processed successfully")
}

// ShipOrder ships a confirmed, paid order.
// POST /api/v1/orders/:id/ship
func (c *Controller) ShipOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	order, err := c.orderService.ShipOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order shipped successfully")
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels the order.
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	var req CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CancelOrder(ctx.Request.Context(), orderID, req.Reason)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order cancelled successfully")
}
