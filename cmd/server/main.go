package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "rentmart-backend/internal/api/http"
	"rentmart-backend/internal/config"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/repository/postgres"
	"rentmart-backend/internal/security"
	"rentmart-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentMart Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewSendGridEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	availabilitySvc := service.NewAvailabilityService(store.StockRepository)
	catalogSvc := service.NewCatalogService(store.ProductRepository, store.StockRepository)
	cartSvc := service.NewCartService(store.CartRepository, store.ProductRepository)
	checkoutSvc := service.NewCheckoutService(
		store.CartRepository,
		store.ProductRepository,
		store.StockRepository,
		store.OrderRepository,
		store.UserRepository,
		availabilitySvc,
		emailSvc,
	)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.StockRepository,
		store.UserRepository,
		emailSvc,
	)
	invoiceSvc := service.NewInvoiceService(
		store.InvoiceRepository,
		store.OrderRepository,
		store.ProductRepository,
		store.PaymentRepository,
	)
	settlementSvc := service.NewSettlementService(
		store.OrderRepository,
		store.InvoiceRepository,
		store.PaymentRepository,
		store.UserRepository,
		emailSvc,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Catalog:      catalogSvc,
		Availability: availabilitySvc,
		Cart:         cartSvc,
		Checkout:     checkoutSvc,
		Orders:       orderSvc,
		Invoices:     invoiceSvc,
		Settlement:   settlementSvc,
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
