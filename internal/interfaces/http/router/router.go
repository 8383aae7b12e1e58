package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesdesk/backend/internal/infrastructure/config"
	"github.com/salesdesk/backend/internal/infrastructure/logger"
	"github.com/salesdesk/backend/internal/interfaces/http/handler"
	"github.com/salesdesk/backend/internal/interfaces/http/middleware"
)

// Handlers collects everything the router wires up
type Handlers struct {
	System    *handler.SystemHandler
	Order     *handler.OrderHandler
	Stock     *handler.StockHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Warehouse *handler.WarehouseHandler
}

// New builds the gin engine with all middleware and routes. Health stays
// outside the tenant scope; every /api/v1 route requires an X-Tenant-ID
// header.
func New(cfg config.HTTPConfig, log *zap.Logger, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(cfg),
	)
	if len(cfg.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.TrustedProxies)
	}

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.TenantResolver())

	orders := api.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/lines", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
	}

	stocks := api.Group("/stock-records")
	{
		stocks.POST("", h.Stock.CreateEntry)
		stocks.GET("", h.Stock.List)
		stocks.GET("/availability", h.Stock.Availability)
		stocks.GET("/:id", h.Stock.Get)
		stocks.POST("/:id/warehouse", h.Stock.AssignWarehouse)
		stocks.DELETE("/:id", h.Stock.Remove)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Deactivate)
	}

	products := api.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/stock", h.Stock.ProductSummary)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Deactivate)
	}

	warehouses := api.Group("/warehouses")
	{
		warehouses.POST("", h.Warehouse.Create)
		warehouses.GET("", h.Warehouse.List)
		warehouses.GET("/:id", h.Warehouse.Get)
		warehouses.PUT("/:id", h.Warehouse.Update)
		warehouses.DELETE("/:id", h.Warehouse.Deactivate)
	}

	return engine
}
