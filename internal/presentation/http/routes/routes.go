package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/config"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/internal/presentation/http/handler"
	"github.com/sangkips/trademarket-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Receipt  *handler.ReceiptHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Background goroutines started by Setup stop when Ctx is done
	Ctx context.Context
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: deps.Cfg.RateLimit.PerSecond(),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	go rateLimiter.Run(ctx)
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group("/api")
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	registerProductRoutes(api, h)
	registerCustomerRoutes(api, h, idempotency)
	registerReceiptRoutes(api, h, idempotency)
	registerPrinterRoutes(api, h)

	return router
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)

		categories := products.Group("/categories")
		{
			categories.GET("", h.Product.ListCategories)
			categories.POST("", h.Product.CreateCategory)
			categories.PUT("/:id", h.Product.UpdateCategory)
			categories.DELETE("/:id", h.Product.DeleteCategory)
		}

		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", idempotency, h.Customer.Create)
		customers.GET("/products/:productId", h.Customer.ListByProduct)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerReceiptRoutes(rg *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", idempotency, h.Receipt.Create)
		receipts.GET("/period", h.Receipt.Period)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/:id/details", h.Receipt.Details)
		receipts.GET("/:id/sum", h.Receipt.Sum)
		receipts.PUT("/:id", h.Receipt.Update)
		receipts.DELETE("/:id", h.Receipt.Delete)
		receipts.PUT("/:id/products/add/:productId/:quantity", h.Receipt.AddProduct)
		receipts.PUT("/:id/products/remove/:productId/:quantity", h.Receipt.RemoveProduct)
		receipts.PUT("/:id/checkout", h.Receipt.CheckOut)
		receipts.POST("/:id/print", h.Printer.PrintReceipt)
	}
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/printer/status", h.Printer.GetStatus)
}
