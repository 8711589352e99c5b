package api

import (
	"shopcore/api/health"
	"shopcore/api/middleware"
	"shopcore/api/order"
	"shopcore/api/payment"
	"shopcore/api/product"
	"shopcore/config"
	"shopcore/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Router wires middleware and controllers onto the gin engine.
type Router struct {
	engine            *gin.Engine
	config            *config.Config
	metrics           *metrics.ServerMetrics
	healthController  *health.Controller
	orderController   *order.Controller
	paymentController *payment.Controller
	productController *product.Controller
}

func NewRouter(
	cfg *config.Config,
	serverMetrics *metrics.ServerMetrics,
	healthController *health.Controller,
	orderController *order.Controller,
	paymentController *payment.Controller,
	productController *product.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before
	// anything logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(serverMetrics))
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:            engine,
		config:            cfg,
		metrics:           serverMetrics,
		healthController:  healthController,
		orderController:   orderController,
		paymentController: paymentController,
		productController: productController,
	}
}

// SetupRoutes mounts every controller and the operational endpoints.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.orderController.RegisterRoutes(apiGroup)
		r.paymentController.RegisterRoutes(apiGroup)
		r.productController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
			"metrics": "/metrics",
		})
	})
}

// GetEngine returns the configured gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
