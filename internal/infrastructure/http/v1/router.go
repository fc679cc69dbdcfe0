// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockpick/internal/domain/allocation"
	"stockpick/internal/domain/batch"
	"stockpick/internal/domain/delivery"
	"stockpick/internal/infrastructure/http/v1/handlers"
	"stockpick/internal/infrastructure/http/v1/middleware"
	"stockpick/internal/infrastructure/storage/postgres"
	"stockpick/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	BatchService      *batch.Service
	AllocationService *allocation.Service
	DeliveryService   *delivery.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	{
		batchHandler := handlers.NewBatchHandler(cfg.BatchService)
		batches := v1.Group("/batches")
		{
			batches.GET("", batchHandler.List)
			batches.GET("/expiring", batchHandler.ListExpiring)
			batches.GET("/:batchNo", batchHandler.GetByNumber)
		}

		allocationHandler := handlers.NewAllocationHandler(cfg.AllocationService)
		allocations := v1.Group("/allocations")
		{
			allocations.POST("/plan", allocationHandler.Plan)
			allocations.POST("/apply", allocationHandler.Apply)
		}

		deliveryHandler := handlers.NewDeliveryHandler(cfg.DeliveryService)
		deliveries := v1.Group("/delivery-notes")
		{
			deliveries.GET("", deliveryHandler.List)
			deliveries.GET("/:id", deliveryHandler.Get)
			deliveries.POST("/:id/receive", deliveryHandler.Receive)
			deliveries.POST("/:id/inspect", deliveryHandler.Inspect)
			deliveries.POST("/:id/archive", deliveryHandler.Archive)
			deliveries.POST("/:id/warehouse", deliveryHandler.Warehouse)
			deliveries.POST("/:id/reject", deliveryHandler.Reject)
		}
	}

	return router
}
