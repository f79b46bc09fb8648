package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtside/internal/database"
	"github.com/yourusername/courtside/internal/models"
)

const ratingsColumns = `
	id, team_name, rating_date, adj_o, adj_d, tempo, rank, wins, losses,
	efg, efgd, tor, tord, orb, drb, ftr, ftrd,
	two_pt_pct, two_pt_pct_d, three_pt_pct, three_pt_pct_d,
	three_pt_rate, three_pt_rate_d, barthag, wab`

// PostgresRatingsRepository implements RatingsRepository for PostgreSQL
type PostgresRatingsRepository struct {
	db *database.DB
}

// NewPostgresRatingsRepository creates a new ratings repository
func NewPostgresRatingsRepository(db *database.DB) RatingsRepository {
	return &PostgresRatingsRepository{db: db}
}

// GetLatestForTeam retrieves the most recent snapshot at or before asOf.
// The date bound enforces the look-ahead-leakage invariant.
func (r *PostgresRatingsRepository) GetLatestForTeam(ctx context.Context, team string, asOf time.Time) (*models.TeamRatings, error) {
	query := `
		SELECT ` + ratingsColumns + `
		FROM team_ratings
		WHERE team_name = $1 AND rating_date <= $2
		ORDER BY rating_date DESC
		LIMIT 1
	`

	ratings, err := scanRatingsRow(r.db.GetPool().QueryRow(ctx, query, team, asOf))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest ratings for %s: %w", team, err)
	}

	return ratings, nil
}

// GetByID retrieves a ratings snapshot by its ID
func (r *PostgresRatingsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TeamRatings, error) {
	query := `
		SELECT ` + ratingsColumns + `
		FROM team_ratings
		WHERE id = $1
	`

	ratings, err := scanRatingsRow(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings by id: %w", err)
	}

	return ratings, nil
}

// InsertBatch inserts multiple ratings snapshots using a bulk COPY
func (r *PostgresRatingsRepository) InsertBatch(ctx context.Context, ratings []*models.TeamRatings) error {
	if len(ratings) == 0 {
		return nil
	}

	columns := []string{
		"id", "team_name", "rating_date", "adj_o", "adj_d", "tempo", "rank", "wins", "losses",
		"efg", "efgd", "tor", "tord", "orb", "drb", "ftr", "ftrd",
		"two_pt_pct", "two_pt_pct_d", "three_pt_pct", "three_pt_pct_d",
		"three_pt_rate", "three_pt_rate_d", "barthag", "wab",
	}

	rows := make([][]interface{}, len(ratings))
	for i, t := range ratings {
		rows[i] = []interface{}{
			t.ID, t.TeamName, t.RatingDate, t.AdjO, t.AdjD, t.Tempo, t.Rank, t.Wins, t.Losses,
			t.EFG, t.EFGD, t.TOR, t.TORD, t.ORB, t.DRB, t.FTR, t.FTRD,
			t.TwoPtPct, t.TwoPtPctD, t.ThreePtPct, t.ThreePtPctD,
			t.ThreePtRate, t.ThreePtRateD, t.Barthag, t.WAB,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"team_ratings"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert ratings: %w", err)
	}
	if count != int64(len(ratings)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(ratings))
	}

	return nil
}

func scanRatingsRow(row pgx.Row) (*models.TeamRatings, error) {
	t := &models.TeamRatings{}
	err := row.Scan(
		&t.ID, &t.TeamName, &t.RatingDate, &t.AdjO, &t.AdjD, &t.Tempo, &t.Rank, &t.Wins, &t.Losses,
		&t.EFG, &t.EFGD, &t.TOR, &t.TORD, &t.ORB, &t.DRB, &t.FTR, &t.FTRD,
		&t.TwoPtPct, &t.TwoPtPctD, &t.ThreePtPct, &t.ThreePtPctD,
		&t.ThreePtRate, &t.ThreePtRateD, &t.Barthag, &t.WAB,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
