package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/billdesk/billdesk-api/internal/application/service"
	"github.com/billdesk/billdesk-api/internal/config"
	"github.com/billdesk/billdesk-api/internal/infrastructure/database"
	"github.com/billdesk/billdesk-api/internal/infrastructure/repository"
	"github.com/billdesk/billdesk-api/internal/presentation/http/handler"
	"github.com/billdesk/billdesk-api/internal/presentation/http/routes"
	"github.com/billdesk/billdesk-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo, cfg.Billing.LowStockThreshold)
	billingService := service.NewBillingService(billRepo, customerRepo, productRepo)
	paymentService := service.NewPaymentService(billRepo, cfg.Payment)
	dashboardService := service.NewDashboardService(analyticsRepo, cfg.Billing.LowStockThreshold)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billRepo, cfg.Printer.Type, cfg.App.Name, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Bill:      handler.NewBillHandler(billingService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
