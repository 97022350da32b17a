package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/Meseret1G/inventory-management-system/pkg/config"
	"github.com/Meseret1G/inventory-management-system/pkg/db"
	"github.com/Meseret1G/inventory-management-system/pkg/logger"
)

// MaybeRunDev applies pending migrations on boot in development when the
// auto-migrate feature flag is set. Production deploys run the migrate binary
// explicitly and never use this path.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithField(ctx, "dir", DefaultDir)
	if _, err := os.Stat(DefaultDir); err != nil {
		logg.Warn(ctx, "auto-migrate: migrations dir not found, skipping")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("get sql db handle: %w", err)
	}

	logg.Info(ctx, "auto-migrate: applying pending migrations")
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return err
	}
	logg.Info(ctx, "auto-migrate: done")
	return nil
}
