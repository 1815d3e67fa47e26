package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/personal-finance-ledger/internal/api_gateway/handler"
	"github.com/personal-finance-ledger/internal/api_gateway/middleware"
	"github.com/personal-finance-ledger/internal/service"
)

// setupRouter configures API routes and middleware for the ledger
func setupRouter(logger *slog.Logger, r *gin.Engine, ledger service.LedgerService) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	accountHandler := handler.NewAccountHandler(logger, ledger)
	categoryHandler := handler.NewCategoryHandler(logger, ledger)
	transactionHandler := handler.NewTransactionHandler(logger, ledger)
	dataHandler := handler.NewDataHandler(logger, ledger)
	analyticsHandler := handler.NewAnalyticsHandler(logger, ledger)

	v1 := r.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.PATCH("/:id", accountHandler.Rename)
			accounts.DELETE("/:id", accountHandler.Delete)
			accounts.POST("/:id/recalculate", accountHandler.Recalculate)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", categoryHandler.Create)
			categories.GET("", categoryHandler.List)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		v1.POST("/imports/:format", dataHandler.Import)
		v1.GET("/exports/:format", dataHandler.Export)

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/net", analyticsHandler.Net)
			analytics.GET("/categories", analyticsHandler.Categories)
			analytics.GET("/summary", analyticsHandler.Summary)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
