// Package testdb provides helpers for database-backed tests.
// Tests that need a real PostgreSQL instance are gated on the
// DATABASE_URL environment variable and skip when it is absent, so the
// unit suite stays runnable without infrastructure.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// envVars lists the environment variables that may carry the test
// database URL, in priority order.
var envVars = []string{"DATABASE_URL", "SERWER_TEST_DB_URL"}

// URL returns the configured test database URL, or "" if none is set.
func URL() string {
	for _, name := range envVars {
		if url := os.Getenv(name); url != "" {
			return url
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database is
// configured.
func IsIntegrationTestEnvironment() bool {
	return URL() != ""
}

// GetTestDB returns a database connection for testing, skipping the
// test when no database is configured. The connection is closed via
// t.Cleanup.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip("skipping database test: DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// ResetTables truncates all application tables so each test starts from
// a clean slate.
func ResetTables(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(
		`TRUNCATE tasks, task_assignments, comments, statistics, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
}
