package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB initializes a test database connection and applies migrations.
// The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	host := getEnv("TEST_DB_HOST", "localhost")
	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "regions_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry connection with exponential backoff to wait for DB recovery
	var db *sqlx.DB
	var err error
	maxRetries := 4
	retryDelay := 250 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		t.Skipf("Test database not available after %d attempts: %v", maxRetries, err)
	}

	logger, _ := zap.NewDevelopment()
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := ApplyMigrations(db, logger); err != nil {
		db.Close()
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	// Check PostGIS availability
	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		db.Close()
		t.Fatalf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	return &TestDB{
		DB:     db,
		Logger: logger,
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup removes all users and regions
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	_, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE regions, users")
	return err
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
