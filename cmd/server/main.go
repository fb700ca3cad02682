package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/qinary/brandboard/internal/cache"
	"github.com/qinary/brandboard/internal/config"
	"github.com/qinary/brandboard/internal/content"
	"github.com/qinary/brandboard/internal/display"
	"github.com/qinary/brandboard/internal/metricool"
	"github.com/qinary/brandboard/internal/scheduler"
	"github.com/qinary/brandboard/internal/server"
	"github.com/sirupsen/logrus"
)

// Display rotation shape: opening brand spotlights, grid pages, closing
// support spotlights.
const (
	spotlightSlots = 3
	gridPages      = 4
	supportSlots   = 2
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Brandboard")

	// Initialize provider client
	provider := metricool.NewAPIClient(cfg.MetricoolAPIURL, cfg.MetricoolToken, cfg.UserID, cfg.MasterBlogID)

	// Initialize aggregation pipeline and caches
	aggregator := content.NewAggregator(provider)
	cacheService := cache.New(time.Now, cfg.Location(), cfg.StatsCacheTTL, cfg.BrandCacheTTL)

	// Initialize display rotation
	controller := display.NewController(display.NewMachine(spotlightSlots, gridPages, supportSlots))
	defer controller.Stop()

	// Initialize scheduler
	schedulerService := scheduler.NewService(aggregator, cacheService, cfg.DisplayLimit)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server
	srv := server.New(cfg, provider, aggregator, cacheService, controller)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
