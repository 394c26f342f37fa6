// Package v1 provides HTTP API version 1.
package v1

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/SimplyTil/HeimInventar/internal/domain/history"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/scan"
	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
	"github.com/SimplyTil/HeimInventar/internal/domain/stats"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/handlers"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/middleware"
	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

// RouterConfig wires the services into the router.
type RouterConfig struct {
	Logger *logger.Logger

	DB *sql.DB

	Products *product.Service
	Shopping *shopping.Service
	History  *history.Service
	Stats    *stats.Service
	Scan     *scan.Service

	// UploadsDir is served as static files under /static/uploads.
	UploadsDir string

	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.UploadsDir != "" {
		router.Static("/static/uploads", cfg.UploadsDir)
	}

	api := router.Group("/api")
	{
		productHandler := handlers.NewProductHandler(cfg.Products)
		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.POST("/batch", productHandler.Batch)
			products.POST("/check-duplicate", productHandler.CheckDuplicate)
		}

		scanHandler := handlers.NewScanHandler(cfg.Scan)
		api.GET("/scan/:ean", scanHandler.Lookup)

		statsHandler := handlers.NewStatsHandler(cfg.Stats)
		api.GET("/statistics", statsHandler.Basic)
		api.GET("/statistics/advanced", statsHandler.Advanced)

		shoppingHandler := handlers.NewShoppingHandler(cfg.Shopping)
		shoppingList := api.Group("/shopping-list")
		{
			shoppingList.GET("", shoppingHandler.List)
			shoppingList.POST("", shoppingHandler.Create)
			shoppingList.PUT("/:id", shoppingHandler.Update)
			shoppingList.DELETE("/:id", shoppingHandler.Delete)
			shoppingList.DELETE("/clear-checked", shoppingHandler.ClearChecked)
			shoppingList.POST("/generate", shoppingHandler.Generate)
		}

		historyHandler := handlers.NewHistoryHandler(cfg.History)
		api.GET("/barcode-history", historyHandler.List)
	}

	return router
}
