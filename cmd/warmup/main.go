// Command warmup pre-populates the shared avatar store by walking
// every catalog page once. Run it before peak traffic so feed sessions
// start with warm avatars instead of fetching them per session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

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
	logger.Info("Starting Feedcore avatar warmup")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	client, err := catalog.New(&cfg.Catalog)
	if err != nil {
		logger.Fatal("Failed to create catalog client", zap.Error(err))
	}

	store, err := avatar.NewStore(&cfg.Redis, cfg.Avatar.RedisTTL)
	if err != nil {
		logger.Fatal("Failed to create avatar store", zap.Error(err))
	}
	if store == nil {
		logger.Warn("No Redis configured; warmed avatars will not outlive this run")
	}
	defer store.Close()

	cache := avatar.NewCache(client, store, cfg.Avatar.MaxEntries)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("Interrupted, stopping warmup")
		cancel()
	}()

	warmed := 0
	for page := 1; page <= cfg.Catalog.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}

		rawPage, err := client.FetchPage(ctx, page)
		if err != nil {
			logger.Error("Failed to fetch catalog page",
				zap.Int("page", page),
				zap.Error(err))
			continue
		}

		workouts := feed.Project(rawPage.Data)
		for _, workout := range workouts {
			if ctx.Err() != nil {
				break
			}
			if data := cache.Resolve(ctx, workout.ID, workout.AvatarURL); data != "" {
				warmed++
			}
		}

		logger.Info("Warmed catalog page",
			zap.Int("page", page),
			zap.Int("items", len(workouts)))
	}

	logger.Info("Avatar warmup finished", zap.Int("avatars_warmed", warmed))
}
