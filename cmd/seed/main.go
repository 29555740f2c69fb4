// Command seed fills a database with a demo tenant: an administrator,
// categories, locations, partners, assets, leases and exchange rates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/assetops/backend/internal/infrastructure/config"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/assetops/backend/internal/infrastructure/persistence"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
)

func main() {
	var opts Options
	flag.StringVar(&opts.TenantCode, "tenant", "DEMO", "Code of the tenant to create")
	flag.StringVar(&opts.TenantName, "tenant-name", "Demo Holdings", "Display name of the tenant")
	flag.StringVar(&opts.AdminEmail, "admin-email", "admin@demo.test", "Administrator email")
	flag.StringVar(&opts.AdminPassword, "admin-password", "Demo-pass-123", "Administrator password")
	flag.IntVar(&opts.Count, "count", 50, "Number of assets to create")
	flag.Uint64Var(&opts.Seed, "seed", 0, "Random seed; 0 picks one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.GormConfig{Level: "warn"}))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.DB.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	sum, err := newSeeder(db.DB, log, opts.Seed).Run(context.Background(), opts)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding completed",
		zap.String("tenant_id", sum.TenantID.String()),
		zap.Int("categories", sum.Categories),
		zap.Int("locations", sum.Locations),
		zap.Int("partners", sum.Partners),
		zap.Int("assets", sum.Assets),
		zap.Int("leases", sum.Leases),
		zap.Int("forex_rates", sum.ForexRates),
	)
	fmt.Printf("Sign in as %s / %s\n", opts.AdminEmail, opts.AdminPassword)
}
