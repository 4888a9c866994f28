// Package main is the entry point for the Suvarnadesk API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain"
	"suvarnadesk/internal/domain/auth"
	"suvarnadesk/internal/domain/catalogs/customer"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/catalogs/worker"
	invoicedoc "suvarnadesk/internal/domain/documents/invoice"
	"suvarnadesk/internal/domain/pricing"
	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/domain/reports"
	"suvarnadesk/internal/infrastructure/feed"
	v1 "suvarnadesk/internal/infrastructure/http/v1"
	"suvarnadesk/internal/infrastructure/numerator"
	"suvarnadesk/internal/infrastructure/storage/postgres"
	"suvarnadesk/internal/infrastructure/storage/postgres/auth_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/catalog_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/document_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/rate_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/report_repo"
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

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting suvarnadesk server")

	// --- Database connection ---
	dbURL := mustEnv("DATABASE_URL")
	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- JWT + auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- Rate ledger ---
	priceFeed := buildPriceFeed(log)
	rateService := rates.NewService(rates.ServiceConfig{
		Repo:        rate_repo.NewRateRepo(txManager),
		TxManager:   txManager,
		Feed:        priceFeed,
		Auditor:     auditService,
		FeedTimeout: getEnvDuration("PRICE_FEED_TIMEOUT", 15*time.Second),
	})

	// --- Catalogs ---
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	workerRepo := catalog_repo.NewWorkerRepo(txManager)
	labourChargeRepo := catalog_repo.NewLabourChargeRepo(txManager)

	customerService := customer.NewService(customerRepo, txManager)
	workerService := worker.NewService(workerRepo, txManager)
	labourChargeService := labourcharge.NewService(labourChargeRepo, txManager)

	registerAuditHooks(customerService.CatalogService, auditService, "customer")
	registerAuditHooks(workerService.CatalogService, auditService, "worker")
	registerAuditHooks(labourChargeService.CatalogService, auditService, "labour_charge")

	// --- Pricing ---
	pricingService := pricing.NewService(rateService, labourChargeService)

	// --- Invoices ---
	invoiceService := invoicedoc.NewService(invoicedoc.ServiceConfig{
		Repo:      document_repo.NewInvoiceRepo(txManager),
		TxManager: txManager,
		Calc:      pricingService.Calculator(),
		Numerator: numerator.NewWithTxManager(txManager),
		Customers: customerRepo,
		Workers:   workerRepo,
		Auditor:   auditService,
	})

	// --- Reports ---
	reportService := reports.NewService(report_repo.NewReportRepo(txManager))

	// --- Idempotency ---
	var idempotencyStore *postgres.IdempotencyStore
	if getEnv("IDEMPOTENCY_ENABLED", "true") == "true" {
		ttl := getEnvDuration("IDEMPOTENCY_TTL", 10*time.Minute)
		idempotencyStore = postgres.NewIdempotencyStore(txManager, ttl)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:                pool,
		Logger:              log,
		JWTValidator:        jwtService,
		AuthService:         authService,
		RateService:         rateService,
		PricingService:      pricingService,
		InvoiceService:      invoiceService,
		CustomerService:     customerService,
		WorkerService:       workerService,
		LabourChargeService: labourChargeService,
		ReportService:       reportService,
		IdempotencyStore:    idempotencyStore,
		AuditService:        auditService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// registerAuditHooks records an audit trail entry after every catalog
// mutation. Failures are logged by the catalog service, not returned
// to the caller.
func registerAuditHooks[T interface {
	entity.Validatable
	GetID() id.ID
}](svc *domain.CatalogService[T], audit *postgres.AuditService, entityType string) {
	svc.Hooks().On(domain.AfterCreate, func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionCreate, nil)
	})
	svc.Hooks().On(domain.AfterUpdate, func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionUpdate, nil)
	})
	svc.Hooks().On(domain.AfterDelete, func(ctx context.Context, e T) error {
		return audit.LogChange(ctx, entityType, e.GetID(), postgres.AuditActionDelete, nil)
	})
}

// buildPriceFeed selects the external price source. Without a
// configured URL, the static built-in quotes are used so refresh
// still works in development.
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
	log.Infow("using HTTP price feed", "url", url)
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
