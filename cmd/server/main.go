// Package main is the entry point for the HeimInventar API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/core/config"
	"github.com/SimplyTil/HeimInventar/internal/domain/history"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/scan"
	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
	"github.com/SimplyTil/HeimInventar/internal/domain/stats"
	v1 "github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/storage/sqlite"
	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting heiminventar server")

	// --- SQLite database ---
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to open database", "error", err, "path", cfg.DBPath)
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}
	log.Infow("database ready", "path", cfg.DBPath)

	// --- Image store ---
	images, err := sqlite.NewFileStore(cfg.UploadsDir, log)
	if err != nil {
		log.Fatalw("failed to prepare uploads directory", "error", err, "dir", cfg.UploadsDir)
	}

	// --- Services ---
	historyService := history.NewService(sqlite.NewHistoryRepo(db))
	productService := product.NewService(sqlite.NewProductRepo(db), historyService, images)
	shoppingService := shopping.NewService(sqlite.NewShoppingRepo(db), sqlite.NewProductRepo(db))
	statsService := stats.NewService(sqlite.NewStatsRepo(db))
	scanService := scan.NewService(scan.NewClient(cfg.ScanAPIURL), historyService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:      log,
		DB:          db,
		Products:    productService,
		Shopping:    shoppingService,
		History:     historyService,
		Stats:       statsService,
		Scan:        scanService,
		UploadsDir:  cfg.UploadsDir,
		Development: cfg.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
