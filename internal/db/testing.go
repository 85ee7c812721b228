package db

import (
	"context"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CreateTestPool connects to the database from TEST_POSTGRESQL_URL and applies
// migrations from TEST_MIGRATIONS_PATH. Returns nil if TEST_POSTGRESQL_URL is
// not set, tests that need a live database should skip in that case.
func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		return nil
	}

	migrationsPath := os.Getenv("TEST_MIGRATIONS_PATH")
	if migrationsPath == "" {
		panic("TEST_MIGRATIONS_PATH must be set.")
	}
	if err := Migrate(connString, migrationsPath); err != nil {
		panic(err)
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		panic("Could not connect to the database.")
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE \"user\"")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}
