package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/billdesk/billdesk-api/internal/config"
	domainRepo "github.com/billdesk/billdesk-api/internal/domain/repository"
	"github.com/billdesk/billdesk-api/internal/presentation/http/handler"
	"github.com/billdesk/billdesk-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Bill      *handler.BillHandler
	Payment   *handler.PaymentHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
			rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
				RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
				BurstSize:         deps.Cfg.RateLimit.Requests,
				CleanupInterval:   5 * time.Minute,
				EntryTTL:          10 * time.Minute,
			})
			v1.Use(rateLimiter.Middleware())
		}

		registerCustomerRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerBillRoutes(v1, h, deps)
		registerPrinterRoutes(v1, h)

		// Dashboard
		v1.GET("/dashboard", h.Dashboard.GetStats)
	}

	return router
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
	}
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	bills := v1.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		// Bill drafting and settlement replay cached responses on retries
		bills.POST("", idempotency, h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.POST("/:id/payment", idempotency, h.Payment.Settle)
		bills.GET("/:id/payment/upi", h.Payment.UPIIntent)
		bills.POST("/:id/print", h.Printer.PrintReceipt)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
