package migrate

import (
	"context"
	"fmt"

	"github.com/douglasalbuquerque/vision-api/pkg/config"
	"github.com/douglasalbuquerque/vision-api/pkg/db"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
)

// MaybeRunDev migrates the schema on startup when running in dev mode with the
// auto-migrate flag enabled. SQLite databases are always bootstrapped since
// they have no external migration step.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if client.Dialect() == config.DriverSQLite {
		ctx = logg.WithField(ctx, "dialect", client.Dialect())
		logg.Info(ctx, "bootstrapping sqlite schema from models")
		return Bootstrap(ctx, client.DB())
	}

	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
