package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// registryTables are truncated by Reset; order does not matter with CASCADE
var registryTables = []string{
	"location_audit_log",
	"wards",
	"municipalities",
	"districts",
	"provinces",
}

// TestDB is a connection to the PostGIS test database
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB connects to the test database and skips the test when it is
// unreachable or lacks PostGIS. Connection settings come from TEST_DB_* variables.
func SetupTestDB(t testing.TB) *TestDB {
	t.Helper()

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5433"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "registry_test"),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)

	db, err := connectWithRetry(t, connStr, getEnvInt("TEST_DB_CONNECT_RETRIES", 3))
	if err != nil {
		t.Skipf("Test database unavailable: %v", err)
	}

	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		db.Close()
		t.Skipf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

// connectWithRetry waits for a freshly started container with exponential backoff
func connectWithRetry(t testing.TB, connStr string, attempts int) (*sqlx.DB, error) {
	delay := 500 * time.Millisecond

	var err error
	for i := 1; i <= attempts; i++ {
		var db *sqlx.DB
		if db, err = sqlx.Connect("postgres", connStr); err == nil {
			return db, nil
		}
		if i < attempts {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i, attempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", attempts, err)
}

// Migrate applies every *.up.sql from dir
func (tdb *TestDB) Migrate(dir string) error {
	return ApplyMigrations(tdb.DB.DB, dir)
}

// Reset empties the registry tables, restarts their id sequences and loads
// the given fixture files from testdata/
func (tdb *TestDB) Reset(ctx context.Context, fixtures ...string) error {
	if err := tdb.Cleanup(ctx); err != nil {
		return err
	}
	if len(fixtures) == 0 {
		return nil
	}
	return LoadFixtures(tdb.DB.DB, "testdata", fixtures)
}

// Cleanup truncates the registry tables
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	_, err := tdb.DB.ExecContext(ctx,
		"TRUNCATE TABLE "+strings.Join(registryTables, ", ")+" RESTART IDENTITY CASCADE")
	if err != nil {
		return fmt.Errorf("truncate registry tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
