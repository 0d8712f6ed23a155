package testhelpers

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/region-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// ApplyMigrations runs the embedded goose migrations against the test database
func ApplyMigrations(db *sqlx.DB, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return postgres.NewDBForTest(db, logger).Migrate(ctx)
}
