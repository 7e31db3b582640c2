package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/domain/port/gateway"
	"github.com/nmehta6/wallet-ledger/internal/domain/usecase/funding"
	"github.com/nmehta6/wallet-ledger/internal/domain/usecase/transfer"
	userUseCase "github.com/nmehta6/wallet-ledger/internal/domain/usecase/user"

	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/cache"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/database"
	gatewayAdapter "github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/gateway"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/logger"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/time"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.IsProduction(), cfg.Logger.Level)
	defer func() {
		_ = appLogger.Flush()
	}()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(cfg.Database.ToDatabaseConfig(cfg.Logger.Level), appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		_ = dbManager.Close()
	}()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories and the unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	txnRepo := repository.NewTransactionRepository(dbManager.DB(), tp, appLogger)
	uow := dbManager.CreateUnitOfWork()

	// Connect to redis for the idempotency middleware
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis.URL, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to redis", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	// Select the payment gateway implementation
	paymentGateway := buildGateway(cfg, appLogger)
	verifier := funding.NewVerifier(cfg.Gateway.KeySecret, cfg.Gateway.WebhookSecret)

	// Initialize use cases
	userService := userUseCase.NewUserUseCase(userRepo, txnRepo, tp, appLogger)
	fundingService := funding.NewService(uow, userRepo, txnRepo, paymentGateway, verifier, cfg.Gateway.KeyID, tp, appLogger)
	transferService := transfer.NewService(userRepo, appLogger)

	// Initialize API handlers
	billingHandler := handler.NewBillingHandler(fundingService, userService, appLogger)
	transferHandler := handler.NewTransferHandler(transferService, appLogger)
	userHandler := handler.NewUserHandler(userService, appLogger)
	healthHandler := handler.NewHealthHandler(dbManager, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, billingHandler, transferHandler, userHandler, healthHandler, redisClient, cfg.Redis.IdempotencyTTL, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":    cfg.Server.Port,
			"env":     cfg.Environment,
			"gateway": cfg.Gateway.Provider,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// buildGateway picks the payment gateway adapter named by the configuration.
// Anything other than "razorpay" falls back to the static gateway so local
// environments run without credentials.
func buildGateway(cfg *config.Config, appLogger coreport.Logger) gateway.PaymentGateway {
	if cfg.Gateway.Provider == "razorpay" {
		return gatewayAdapter.NewRazorpayClient(gatewayAdapter.Config{
			BaseURL:   cfg.Gateway.BaseURL,
			KeyID:     cfg.Gateway.KeyID,
			KeySecret: cfg.Gateway.KeySecret,
			Timeout:   cfg.Gateway.Timeout,
		}, appLogger)
	}
	if cfg.IsProduction() {
		appLogger.Warn("Static payment gateway selected in production", map[string]any{
			"provider": cfg.Gateway.Provider,
		})
	}
	return gatewayAdapter.NewStaticGateway()
}
