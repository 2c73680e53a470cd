package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forzeit/infrastructure/config"
	"forzeit/infrastructure/di"
	"forzeit/interfaces/http/rest"

	"go.uber.org/zap"
)

const rateLimitPruneInterval = 5 * time.Minute

func main() {
	// Initialize context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	// Background work: cache sweeper and rate limiter pruning
	container.Start(ctx)
	go pruneRateLimiter(ctx, container, logger)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      rest.NewRouter(container).Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Duration("insights_ttl", cfg.InsightsTTL),
			zap.Bool("test_tokens", cfg.EnableTestTokens),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	container.Shutdown()

	log.Println("Server stopped")
}

// pruneRateLimiter drops idle clients from the rate limiter until ctx is done
func pruneRateLimiter(ctx context.Context, container *di.Container, logger *zap.Logger) {
	ticker := time.NewTicker(rateLimitPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if pruned := container.RateLimiter.Prune(); pruned > 0 {
				logger.Debug("Pruned idle rate limit entries", zap.Int("count", pruned))
			}
		}
	}
}
