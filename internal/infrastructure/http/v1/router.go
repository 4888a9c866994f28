package v1

import (
	"github.com/gin-gonic/gin"

	"suvarnadesk/internal/domain/auth"
	"suvarnadesk/internal/domain/catalogs/customer"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/catalogs/worker"
	invoicedoc "suvarnadesk/internal/domain/documents/invoice"
	"suvarnadesk/internal/domain/pricing"
	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/domain/reports"
	"suvarnadesk/internal/infrastructure/http/v1/handlers"
	"suvarnadesk/internal/infrastructure/http/v1/middleware"
	"suvarnadesk/internal/infrastructure/storage/postgres"
	"suvarnadesk/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Domain services
	AuthService         *auth.Service
	RateService         *rates.Service
	PricingService      *pricing.Service
	InvoiceService      *invoicedoc.Service
	CustomerService     *customer.Service
	WorkerService       *worker.Service
	LabourChargeService *labourcharge.Service
	ReportService       *reports.Service

	// IdempotencyStore enables idempotency-key replay for mutating
	// requests when non-nil.
	IdempotencyStore *postgres.IdempotencyStore

	// AuditService exposes the audit trail to admins when non-nil.
	AuditService *postgres.AuditService
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

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

		authPublic := apiV1.Group("/auth")
		authProtected := apiV1.Group("/auth")
		authProtected.Use(middleware.Auth(cfg.JWTValidator))
		authHandler.RegisterRoutes(authPublic, authProtected)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		if cfg.IdempotencyStore != nil {
			protected.Use(middleware.Idempotency(cfg.IdempotencyStore))
		}

		// Rate ledger; writes are admin-only
		ratesHandler := handlers.NewRatesHandler(base, cfg.RateService)
		ratesHandler.RegisterRoutes(protected.Group("/rates"), middleware.RequireAdmin())

		// Price quotes
		pricingHandler := handlers.NewPricingHandler(base, cfg.PricingService)
		pricingHandler.RegisterRoutes(protected.Group("/pricing"))

		// Invoice documents
		invoiceHandler := handlers.NewInvoiceHandler(base, cfg.InvoiceService)
		invoiceHandler.RegisterRoutes(protected.Group("/invoices"))

		// Catalogs
		catalogs := protected.Group("/catalogs")
		RegisterCatalogRoutes(catalogs.Group("/customers"), handlers.NewCustomerHandler(base, cfg.CustomerService))
		RegisterCatalogRoutes(catalogs.Group("/workers"), handlers.NewWorkerHandler(base, cfg.WorkerService))
		RegisterCatalogRoutes(catalogs.Group("/labour-charges"), handlers.NewLabourChargeHandler(base, cfg.LabourChargeService))

		// Reports
		reportsHandler := handlers.NewReportsHandler(base, cfg.ReportService)
		reportsHandler.RegisterRoutes(protected.Group("/reports"))

		// Audit trail; admin-only
		if cfg.AuditService != nil {
			auditHandler := handlers.NewAuditHandler(base, cfg.AuditService)
			auditGroup := protected.Group("/audit")
			auditGroup.Use(middleware.RequireAdmin())
			auditHandler.RegisterRoutes(auditGroup)
		}
	}

	return router
}
