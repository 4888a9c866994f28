// Package main provides a CLI tool for seeding the database with
// initial data: the admin account, default labour charges and opening
// metal rates. With SEED_DEMO_DATA=true it also creates demo
// customers and workers.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain/auth"
	"suvarnadesk/internal/domain/catalogs/customer"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/catalogs/worker"
	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/infrastructure/feed"
	"suvarnadesk/internal/infrastructure/storage/postgres"
	"suvarnadesk/internal/infrastructure/storage/postgres/auth_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/catalog_repo"
	"suvarnadesk/internal/infrastructure/storage/postgres/rate_repo"
	"suvarnadesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	if err := seedLabourCharges(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed labour charges", "error", err)
	}
	if err := seedOpeningRates(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed opening rates", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

// seedAdminUser creates the initial admin account. Idempotent: an
// existing account with the same email is left untouched.
func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	email := getEnv("ADMIN_EMAIL", "admin@suvarnadesk.local")
	password := getEnv("ADMIN_PASSWORD", "admin12345")

	userRepo := auth_repo.NewUserRepo(txManager)

	exists, err := userRepo.Exists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Infow("admin user already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := auth.NewUser(email, string(hash), auth.RoleAdmin)
	admin.FirstName = "Admin"

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Infow("admin user created", "email", email)
	return nil
}

// seedLabourCharges creates the default making-charge catalog.
func seedLabourCharges(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	repo := catalog_repo.NewLabourChargeRepo(txManager)

	charges := []*labourcharge.LabourCharge{
		labourcharge.New("LC-001", "Making charge per gram", labourcharge.ChargePerGram, types.MinorUnits(45000)),
		labourcharge.New("LC-002", "Polishing flat", labourcharge.ChargeFixedPerItem, types.MinorUnits(25000)),
		labourcharge.New("LC-003", "Stone setting flat", labourcharge.ChargeFixedPerItem, types.MinorUnits(50000)),
	}

	for _, charge := range charges {
		if _, err := repo.GetByCode(ctx, charge.Code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if err := repo.Create(ctx, charge); err != nil {
			return err
		}
		log.Infow("labour charge created", "code", charge.Code, "name", charge.Name)
	}

	return nil
}

// seedOpeningRates records an opening manual quotation per pair using
// the static feed values. Skipped for pairs that already have an
// active rate.
func seedOpeningRates(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	repo := rate_repo.NewRateRepo(txManager)
	service := rates.NewService(rates.ServiceConfig{
		Repo:      repo,
		TxManager: txManager,
	})

	quotes, err := feed.DefaultStaticFeed().FetchCurrentPrices(ctx)
	if err != nil {
		return err
	}

	for _, q := range quotes {
		if _, err := repo.GetActive(ctx, q.MetalType, q.Purity); err == nil {
			continue
		}
		rec, err := service.UpsertRate(ctx, rates.RateInput{
			MetalType:   q.MetalType,
			Purity:      q.Purity,
			RatePerGram: q.RatePerGram,
			Source:      rates.SourceManual,
		})
		if err != nil {
			return err
		}
		log.Infow("opening rate recorded",
			"metal", rec.MetalType, "purity", rec.Purity, "rate", rec.RatePerGram.String())
	}

	return nil
}

// seedDemoData creates a few demo customers and workers.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	workerRepo := catalog_repo.NewWorkerRepo(txManager)

	customers := []*customer.Customer{
		customer.New("CUST-001", "Ramesh Patel", "+91-98200-11111"),
		customer.New("CUST-002", "Sunita Sharma", "+91-98200-22222"),
		customer.New("CUST-003", "Vikram Jain", "+91-98200-33333"),
	}
	customers[0].Address = "12 MG Road, Pune"
	customers[1].Email = "sunita.sharma@example.com"
	customers[2].GSTIN = "27AAPFU0939F1ZV"

	for _, c := range customers {
		if _, err := customerRepo.GetByCode(ctx, c.Code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if err := customerRepo.Create(ctx, c); err != nil {
			return err
		}
		log.Infow("demo customer created", "code", c.Code, "name", c.Name)
	}

	workers := []*worker.Worker{
		worker.New("WRK-001", "Mahesh Soni", "+91-98200-44444"),
		worker.New("WRK-002", "Arjun Verma", "+91-98200-55555"),
	}
	workers[0].Specialization = "polishing"
	workers[1].Specialization = "stone setting"

	for _, w := range workers {
		if _, err := workerRepo.GetByCode(ctx, w.Code); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if err := workerRepo.Create(ctx, w); err != nil {
			return err
		}
		log.Infow("demo worker created", "code", w.Code, "name", w.Name)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
