package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/salesdesk/backend/internal/application/catalog"
	orderapp "github.com/salesdesk/backend/internal/application/order"
	partnerapp "github.com/salesdesk/backend/internal/application/partner"
	stockapp "github.com/salesdesk/backend/internal/application/stock"
	"github.com/salesdesk/backend/internal/domain/shared"
	"github.com/salesdesk/backend/internal/infrastructure/cache"
	"github.com/salesdesk/backend/internal/infrastructure/config"
	"github.com/salesdesk/backend/internal/infrastructure/event"
	"github.com/salesdesk/backend/internal/infrastructure/logger"
	"github.com/salesdesk/backend/internal/infrastructure/persistence"
	"github.com/salesdesk/backend/internal/interfaces/http/handler"
	"github.com/salesdesk/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting salesdesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	stockRecordRepo := persistence.NewGormStockRecordRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	idempotency, closeIdempotency := newIdempotencyStore(cfg, log)
	defer closeIdempotency()

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewStockShortageHandler(log))
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := bus.Start(ctx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	handlers := router.Handlers{
		System:    handler.NewSystemHandler(db.DB),
		Order:     handler.NewOrderHandler(orderapp.NewOrderService(orderRepo, txScope, idempotency, bus, log)),
		Stock:     handler.NewStockHandler(stockapp.NewStockService(stockRecordRepo, bus, log)),
		Customer:  handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, log)),
		Product:   handler.NewProductHandler(catalogapp.NewProductService(productRepo, log)),
		Warehouse: handler.NewWarehouseHandler(partnerapp.NewWarehouseService(warehouseRepo, log)),
	}

	engine := router.New(cfg.HTTP, log, handlers)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("event bus shutdown failed", zap.Error(err))
	}
	log.Info("shutdown complete")
}

// newIdempotencyStore picks Redis when configured and falls back to the
// in-memory store for single-instance deployments
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) (shared.IdempotencyStore, func()) {
	if cfg.Redis.Host != "" {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		log.Info("using redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
		return store, func() {
			if err := store.Close(); err != nil {
				log.Error("error closing redis", zap.Error(err))
			}
		}
	}

	log.Info("using in-memory idempotency store")
	store := cache.NewInMemoryIdempotencyStore()
	return store, func() { _ = store.Close() }
}
