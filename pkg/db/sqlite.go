// pkg/db/sqlite.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Config holds database connection configuration.
type Config struct {
	// DSN is the SQLite data source name. The default ":memory:" keeps the
	// whole database in process memory; nothing is persisted.
	DSN string
}

// NewSQLiteDB initializes and returns a new SQLite database handle.
// It uses sqlx for enhanced database operations.
func NewSQLiteDB(cfg Config) (*sqlx.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	database, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// An in-memory SQLite database exists per connection; a single
	// connection keeps every query on the same database.
	database.SetMaxOpenConns(1)
	database.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return database, nil
}
