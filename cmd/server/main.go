package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitreel/feedcore/internal/api"
	"github.com/fitreel/feedcore/internal/avatar"
	"github.com/fitreel/feedcore/internal/catalog"
	"github.com/fitreel/feedcore/internal/feed"
	"github.com/fitreel/feedcore/pkg/config"
	"github.com/fitreel/feedcore/pkg/logging"
	"github.com/fitreel/feedcore/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Feedcore API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Catalog client
	client, err := catalog.New(&cfg.Catalog)
	if err != nil {
		logger.Fatal("Failed to create catalog client", zap.Error(err))
	}

	// Optional shared avatar store
	store, err := avatar.NewStore(&cfg.Redis, cfg.Avatar.RedisTTL)
	if err != nil {
		logger.Fatal("Failed to create avatar store", zap.Error(err))
	}
	defer store.Close()

	// Feed session
	session := feed.NewSession(client, client, store, cfg)
	defer session.Close()

	// Load the first page in the background; the phase guard keeps
	// early end-reached signals harmless while it is in flight.
	go session.Start()

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	api.NewRouter(session).SetupRoutes(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
