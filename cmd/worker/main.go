// Package main is the entry point for the Suvarnadesk background
// worker. It periodically refreshes metal rates from the external
// price feed and prunes expired refresh tokens and idempotency keys.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/infrastructure/feed"
	"suvarnadesk/internal/infrastructure/storage/postgres"
	"suvarnadesk/internal/infrastructure/storage/postgres/auth_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/rate_repo"
	"suvarnadesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), log))
	defer cancel()

	log.Info("starting suvarnadesk worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	rateService := rates.NewService(rates.ServiceConfig{
		Repo:        rate_repo.NewRateRepo(txManager),
		TxManager:   txManager,
		Feed:        buildPriceFeed(log),
		Auditor:     auditService,
		FeedTimeout: getEnvDuration("PRICE_FEED_TIMEOUT", 15*time.Second),
	})

	worker := &Worker{
		rates:           rateService,
		pool:            pool,
		tokens:          auth_repo.NewTokenRepo(txManager),
		idempotency:     postgres.NewIdempotencyStore(txManager, getEnvDuration("IDEMPOTENCY_TTL", 10*time.Minute)),
		log:             log.WithComponent("worker"),
		refreshInterval: getEnvDuration("RATE_REFRESH_INTERVAL", 30*time.Minute),
		cleanupInterval: getEnvDuration("TOKEN_CLEANUP_INTERVAL", 6*time.Hour),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// TokenCleaner prunes expired refresh tokens.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// Worker runs the periodic jobs.
type Worker struct {
	rates       *rates.Service
	pool        *postgres.Pool
	tokens      TokenCleaner
	idempotency *postgres.IdempotencyStore
	log         *logger.Logger

	refreshInterval time.Duration
	cleanupInterval time.Duration
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	refreshTicker := time.NewTicker(w.refreshInterval)
	defer refreshTicker.Stop()

	cleanupTicker := time.NewTicker(w.cleanupInterval)
	defer cleanupTicker.Stop()

	w.log.Infow("worker running",
		"rate_refresh_interval", w.refreshInterval,
		"token_cleanup_interval", w.cleanupInterval,
	)

	// First refresh right away so a fresh deployment starts with
	// current quotations.
	w.refreshRates(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-refreshTicker.C:
			w.refreshRates(ctx)
		case <-cleanupTicker.C:
			w.cleanupTokens(ctx)
			w.cleanupIdempotencyKeys(ctx)
			w.pool.LogStats(ctx)
		}
	}
}

func (w *Worker) refreshRates(ctx context.Context) {
	result, err := w.rates.RefreshFromExternalSource(ctx)
	if err != nil {
		// Upstream outages are expected; the next tick retries.
		if apperror.IsUpstreamUnavailable(err) {
			w.log.Warnw("price feed unavailable, will retry", "error", err)
			return
		}
		w.log.Errorw("rate refresh failed", "error", err)
		return
	}

	w.log.Infow("rates refreshed",
		"applied", len(result.Applied),
		"failed", len(result.Failed),
	)
}

func (w *Worker) cleanupTokens(ctx context.Context) {
	removed, err := w.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		w.log.Errorw("token cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		w.log.Infow("expired refresh tokens removed", "count", removed)
	}
}

func (w *Worker) cleanupIdempotencyKeys(ctx context.Context) {
	removed, err := w.idempotency.CleanupExpired(ctx)
	if err != nil {
		w.log.Errorw("idempotency cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		w.log.Infow("expired idempotency keys removed", "count", removed)
	}
}

// buildPriceFeed selects the external price source.
func buildPriceFeed(log *logger.Logger) rates.PriceFeed {
	url := os.Getenv("PRICE_FEED_URL")
	if url == "" {
		log.Info("PRICE_FEED_URL not set, using static price feed")
		return feed.DefaultStaticFeed()
	}

	opts := []feed.HTTPFeedOption{}
	if apiKey := os.Getenv("PRICE_FEED_API_KEY"); apiKey != "" {
		opts = append(opts, feed.WithAPIKey(apiKey))
	}
	return feed.NewHTTPFeed(url, opts...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
