package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"shopcore/api"
	"shopcore/api/health"
	apiorder "shopcore/api/order"
	apipayment "shopcore/api/payment"
	apiproduct "shopcore/api/product"
	orderapp "shopcore/application/order"
	paymentapp "shopcore/application/payment"
	productapp "shopcore/application/product"
	"shopcore/config"
	orderdomain "shopcore/domain/order"
	paymentdomain "shopcore/domain/payment"
	productdomain "shopcore/domain/product"
	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence/mocks"
	"shopcore/infrastructure/persistence/mysql"
	"shopcore/infrastructure/persistence/retry"
	"shopcore/pkg/logger"
	"shopcore/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App bundles the HTTP server and its dependencies.
type App struct {
	cfg    *config.Config
	server *http.Server
	db     *gorm.DB
}

// NewApp wires the whole application from configuration. With
// UseMockStore the repositories run in memory, which is what the
// integration tests and local demos use.
func NewApp(cfg *config.Config, useMockStore bool) (*App, error) {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	var (
		db          *gorm.DB
		sqlDB       *sql.DB
		orderRepo   orderdomain.Repository
		productRepo productdomain.Repository
		paymentRepo paymentdomain.Repository
		uow         shared.UnitOfWork
	)

	if useMockStore {
		logger.Info("using in-memory persistence")
		orderRepo = mocks.NewMockOrderRepository()
		productRepo = mocks.NewMockProductRepository()
		paymentRepo = mocks.NewMockPaymentRepository()
		uow = mocks.NewMockUnitOfWork()
	} else {
		var err error
		db, err = mysql.FromAppConfig(cfg).Connect()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
		}
		sqlDB, err = db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}

		orderRepo = mysql.NewOrderRepository(db)
		productRepo = mysql.NewProductRepository(db)
		paymentRepo = mysql.NewPaymentRepository(db)

		unitOfWork := mysql.NewUnitOfWork(db)
		unitOfWork.SetRetryConfig(retry.FromAppConfig(cfg))
		uow = unitOfWork
	}

	orderService := orderapp.NewService(orderRepo, productRepo, paymentRepo, uow)
	paymentService := paymentapp.NewService(paymentRepo, orderRepo, uow)
	productService := productapp.NewService(productRepo, uow)

	serverMetrics := metrics.NewServerMetrics(cfg.App.Name)

	router := api.NewRouter(
		cfg,
		serverMetrics,
		health.NewController(cfg, sqlDB),
		apiorder.NewController(orderService),
		apipayment.NewController(paymentService),
		apiproduct.NewController(productService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		cfg:    cfg,
		server: server,
		db:     db,
	}, nil
}

// Run serves HTTP until the listener fails or Shutdown is called.
func (a *App) Run() error {
	logger.Info("server listening",
		zap.String("addr", a.server.Addr),
		zap.String("health", "/api/v1/health"),
		zap.String("metrics", "/metrics"))

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		}
	}

	logger.Info("server stopped")
	return logger.Sync()
}

// Handler exposes the HTTP handler for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}
