package database

import (
	"context"
	"fmt"

	"github.com/yourusername/courtside/internal/config"
)

// Initialize creates a database connection pool and verifies the engine
// schema is present.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	// The ingestion collaborators own the schema; the engine only verifies
	// its tables exist before running.
	var tableName string
	err = db.pool.QueryRow(ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = 'predictions'",
	).Scan(&tableName)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("predictions table not found, run database migrations first: %w", err)
	}

	// Verify migrations are applied by checking schema_migrations table
	var migrationCount int
	err = db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&migrationCount)
	if err != nil {
		// Table might not exist yet, which is OK for initial setup
		return db, nil
	}

	if migrationCount == 0 {
		fmt.Println("Warning: No migrations have been applied. Please run database migrations.")
	}

	return db, nil
}
