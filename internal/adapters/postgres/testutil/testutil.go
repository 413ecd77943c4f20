package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/yatraplan/trip-planner-api/internal/adapters/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS trip_cache_entries (
	key        text PRIMARY KEY,
	value      bytea NOT NULL,
	updated_at timestamptz NOT NULL
);
`

// OpenMigratedPool connects to the database named by TEST_DATABASE_URL,
// applies the schema and empties the tables. Tests are skipped when the env
// var is unset so the suite stays runnable without infrastructure.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE trip_cache_entries`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
