package migrate

import (
	"context"
	"fmt"

	"github.com/douglasalbuquerque/vision-api/pkg/db/models"
	"gorm.io/gorm"
)

// Bootstrap creates or updates every table from the GORM models. It backs the
// SQLite driver, where the Postgres SQL migrations do not apply.
func Bootstrap(ctx context.Context, conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db is required")
	}
	if err := conn.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}
	return nil
}
