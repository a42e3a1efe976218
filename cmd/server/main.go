package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/marketplace-api/config"
	"github.com/ikkim/marketplace-api/internal/app/controller"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/internal/app/service"
	"github.com/ikkim/marketplace-api/internal/catalogio"
	"github.com/ikkim/marketplace-api/internal/db"
	"github.com/ikkim/marketplace-api/internal/router"
	"github.com/ikkim/marketplace-api/internal/scheduler"
	"github.com/ikkim/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.LogLevel(),
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format != "json",
	})

	logger.Info("Starting catalog server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.LogLevel(),
		"db_driver":   cfg.Database.Driver,
	})

	// Initialize database
	database, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(database)
	storeRepo := repository.NewStoreRepository(database)
	tagRepo := repository.NewTagRepository(database)
	relationRepo := repository.NewRelationRepository(database)

	// Initialize services
	productService := service.NewProductService(productRepo)
	storeService := service.NewStoreService(storeRepo, cfg.Catalog.DefaultCurrency)
	tagService := service.NewTagService(tagRepo)
	relationService := service.NewRelationService(productRepo, storeRepo, tagRepo, relationRepo, service.RelationOptions{
		UpsertStoreProducts: cfg.Catalog.UpsertAssociations,
	})

	// Initialize controllers
	productController := controller.NewProductController(productService, relationService)
	storeController := controller.NewStoreController(storeService, relationService)
	tagController := controller.NewTagController(tagService)
	exportController := controller.NewExportController(catalogio.Services{
		Products:  productService,
		Stores:    storeService,
		Tags:      tagService,
		Relations: relationService,
	})

	// Background audit of association rows left behind by deletes
	auditScheduler := scheduler.NewAuditScheduler(relationService, cfg.Audit.Schedule)
	if err := auditScheduler.Start(); err != nil {
		logger.Fatal("Failed to start audit scheduler", err)
	}
	defer auditScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		productController,
		storeController,
		tagController,
		exportController,
		cfg,
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutting down server gracefully...", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-serveErr:
		logger.Error("Server stopped unexpectedly", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown did not complete", err)
		return
	}
	logger.Info("Server stopped successfully")
}
