package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/courtside/internal/database"
	"github.com/yourusername/courtside/internal/models"
)

// PostgresResolutionAuditRepository implements ResolutionAuditRepository for PostgreSQL
type PostgresResolutionAuditRepository struct {
	db *database.DB
}

// NewPostgresResolutionAuditRepository creates a new resolution audit repository
func NewPostgresResolutionAuditRepository(db *database.DB) ResolutionAuditRepository {
	return &PostgresResolutionAuditRepository{db: db}
}

// Insert records one team-name lookup attempt
func (r *PostgresResolutionAuditRepository) Insert(ctx context.Context, audit *models.ResolutionAudit) error {
	query := `
		INSERT INTO resolution_audits (id, raw_name, resolved, canonical, stage, looked_up_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		audit.ID, audit.RawName, audit.Resolved, audit.Canonical, audit.Stage, audit.LookedUpAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resolution audit: %w", err)
	}

	return nil
}

// GetResolutionRate counts resolved and total lookups since the given time
func (r *PostgresResolutionAuditRepository) GetResolutionRate(ctx context.Context, since time.Time) (int64, int64, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE resolved), COUNT(*)
		FROM resolution_audits
		WHERE looked_up_at >= $1
	`

	var resolved, total int64
	if err := r.db.GetPool().QueryRow(ctx, query, since).Scan(&resolved, &total); err != nil {
		return 0, 0, fmt.Errorf("failed to get resolution rate: %w", err)
	}

	return resolved, total, nil
}
