package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	coreport "github.com/nmehta6/wallet-ledger/internal/domain/port/core"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/nmehta6/wallet-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API. The idempotency
// middleware guards only the client-facing unsafe endpoints: the webhook and
// verify paths get their idempotency from settlement itself.
func SetupRoutes(
	router *gin.Engine,
	billingHandler *handler.BillingHandler,
	transferHandler *handler.TransferHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
	cache *redis.Client,
	idempotencyTTL time.Duration,
	logger coreport.Logger,
) {
	idempotent := middleware.Idempotency(cache, idempotencyTTL, logger)

	billing := router.Group("/billing")
	{
		billing.POST("/order", idempotent, billingHandler.CreateOrder)
		billing.POST("/verify", billingHandler.VerifyPayment)
		billing.POST("/webhook", billingHandler.Webhook)
		billing.GET("/transactions", billingHandler.GetTransactions)
		billing.POST("/user", idempotent, userHandler.CreateUser)
		billing.GET("/user", userHandler.GetUser)
	}

	router.POST("/transfer", idempotent, transferHandler.Transfer)
	router.GET("/health", healthHandler.Health)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
