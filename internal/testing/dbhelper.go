// Package testing provides shared database helpers for integration tests.
package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/salesingest/internal/testinfra"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: SALESINGEST_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("SALESINGEST_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("SALESINGEST_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// GetTestPool creates a connection pool to the test database.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

// salesSchemaDDL mirrors the production tables the loader writes to.
const salesSchemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id TEXT PRIMARY KEY,
	first_name  TEXT,
	last_name   TEXT,
	email       TEXT,
	gender      TEXT,
	age_range   TEXT,
	country     TEXT,
	signup_date TEXT
);

CREATE TABLE IF NOT EXISTS products (
	product_id    TEXT PRIMARY KEY,
	product_name  TEXT,
	category      TEXT,
	brand         TEXT,
	color         TEXT,
	size          TEXT,
	catalog_price NUMERIC,
	cost_price    NUMERIC
);

CREATE TABLE IF NOT EXISTS sales (
	sale_id           TEXT PRIMARY KEY,
	customer_id       TEXT,
	sale_date         TIMESTAMP,
	total_amount      NUMERIC,
	channel           TEXT,
	channel_campaigns TEXT
);

CREATE TABLE IF NOT EXISTS sale_items (
	item_id          TEXT PRIMARY KEY,
	sale_id          TEXT,
	product_id       TEXT,
	quantity         INTEGER,
	unit_price       NUMERIC,
	original_price   NUMERIC,
	discount_applied BOOLEAN,
	discount_percent NUMERIC,
	item_total       NUMERIC
);
`

// CreateSalesSchema creates the four target tables if they do not exist.
func CreateSalesSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), salesSchemaDDL); err != nil {
		t.Fatalf("Failed to create sales schema: %v", err)
	}
}

// TruncateSalesTables empties all four target tables between tests.
func TruncateSalesTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE customers, products, sales, sale_items")
	if err != nil {
		t.Fatalf("Failed to truncate sales tables: %v", err)
	}
}
