package migrate

import (
	"context"
	"fmt"

	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/db/models"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

// MaybeRunDev prepares the schema automatically when the app runs in dev mode
// and the feature flag is enabled. Postgres goes through Goose; the sqlite
// driver (local dev, tests) uses GORM auto-migration since the SQL migrations
// are written for Postgres.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.DB.Driver == "sqlite" {
		if err := AutoMigrate(client); err != nil {
			return fmt.Errorf("auto-migrating sqlite schema: %w", err)
		}
		logg.Info(ctx, "sqlite schema auto-migrated")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrate creates the schema from the GORM models.
func AutoMigrate(client *db.Client) error {
	return client.DB().AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
	)
}
