package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/courtside/internal/database"
	"github.com/yourusername/courtside/internal/models"
)

const recommendationColumns = `
	id, run_id, game_id, market, pick, line, price, edge, probability, confidence,
	ev_percent, kelly_fraction, units, tier,
	against_sharp, steam_move, reverse_line_movement, sharp_square_diverge,
	closing_line, created_at`

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// Insert appends a recommendation. Rows are immutable apart from the closing
// line captured later by the CLV job.
func (r *PostgresRecommendationRepository) Insert(ctx context.Context, rec *models.Recommendation) error {
	query := `
		INSERT INTO recommendations (` + recommendationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		rec.ID, rec.RunID, rec.GameID, rec.Market, rec.Pick, rec.Line, rec.Price,
		rec.Edge, rec.Probability, rec.Confidence,
		rec.EVPercent, rec.KellyFraction, rec.Units, rec.Tier,
		rec.Flags.AgainstSharp, rec.Flags.SteamMove, rec.Flags.ReverseLineMovement, rec.Flags.SharpSquareDiverge,
		rec.ClosingLine, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}

	return nil
}

// GetByRunID retrieves all recommendations from one run
func (r *PostgresRecommendationRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.Recommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations
		WHERE run_id = $1
		ORDER BY created_at ASC
	`
	return r.queryRecommendations(ctx, query, runID)
}

// GetAwaitingClosingLine retrieves recommendations for games that have tipped
// off but have no closing line captured yet.
func (r *PostgresRecommendationRepository) GetAwaitingClosingLine(ctx context.Context, tippedBefore time.Time) ([]*models.Recommendation, error) {
	query := `
		SELECT ` + prefixColumns("r", recommendationColumns) + `
		FROM recommendations r
		JOIN games g ON g.id = r.game_id
		WHERE r.closing_line IS NULL AND g.tipoff <= $1
		ORDER BY g.tipoff ASC
	`
	return r.queryRecommendations(ctx, query, tippedBefore)
}

// SetClosingLine records the captured closing line for a recommendation
func (r *PostgresRecommendationRepository) SetClosingLine(ctx context.Context, id uuid.UUID, closingLine float64) error {
	query := `UPDATE recommendations SET closing_line = $2 WHERE id = $1 AND closing_line IS NULL`

	tag, err := r.db.GetPool().Exec(ctx, query, id, closingLine)
	if err != nil {
		return fmt.Errorf("failed to set closing line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetGradedSample counts wins among the most recent recommendations for a
// market whose games have gone final. Pushes are excluded from both counts.
// The result feeds the Bayesian prior blend.
func (r *PostgresRecommendationRepository) GetGradedSample(ctx context.Context, market models.MarketKind, limit int) (int, int, error) {
	homeCol, awayCol := "g.home_score", "g.away_score"
	if market.Period() == models.PeriodFirstHalf {
		homeCol, awayCol = "g.home_h1_score", "g.away_h1_score"
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE outcome = 1) AS wins,
			COUNT(*) FILTER (WHERE outcome != 0) AS graded
		FROM (
			SELECT CASE
				WHEN r.pick = 'home'  AND (%[1]s - %[2]s) + r.line > 0 THEN 1
				WHEN r.pick = 'away'  AND (%[2]s - %[1]s) - r.line > 0 THEN 1
				WHEN r.pick = 'over'  AND (%[1]s + %[2]s) > r.line THEN 1
				WHEN r.pick = 'under' AND (%[1]s + %[2]s) < r.line THEN 1
				WHEN r.pick = 'home'  AND (%[1]s - %[2]s) + r.line = 0 THEN 0
				WHEN r.pick = 'away'  AND (%[2]s - %[1]s) - r.line = 0 THEN 0
				WHEN (%[1]s + %[2]s) = r.line AND r.pick IN ('over', 'under') THEN 0
				ELSE -1
			END AS outcome
			FROM recommendations r
			JOIN games g ON g.id = r.game_id
			WHERE r.market = $1 AND g.status = 'final'
				AND %[1]s IS NOT NULL AND %[2]s IS NOT NULL
			ORDER BY r.created_at DESC
			LIMIT $2
		) graded_picks
	`, homeCol, awayCol)

	var wins, total int
	err := r.db.GetPool().QueryRow(ctx, query, market, limit).Scan(&wins, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get graded sample: %w", err)
	}

	return wins, total, nil
}

func (r *PostgresRecommendationRepository) queryRecommendations(ctx context.Context, query string, arg interface{}) ([]*models.Recommendation, error) {
	rows, err := r.db.GetPool().Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec := &models.Recommendation{}
		err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.GameID, &rec.Market, &rec.Pick, &rec.Line, &rec.Price,
			&rec.Edge, &rec.Probability, &rec.Confidence,
			&rec.EVPercent, &rec.KellyFraction, &rec.Units, &rec.Tier,
			&rec.Flags.AgainstSharp, &rec.Flags.SteamMove, &rec.Flags.ReverseLineMovement, &rec.Flags.SharpSquareDiverge,
			&rec.ClosingLine, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// prefixColumns qualifies a comma-separated column list with a table alias
func prefixColumns(alias, columns string) string {
	out := ""
	for i, col := range splitColumns(columns) {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + col
	}
	return out
}

func splitColumns(columns string) []string {
	var cols []string
	current := ""
	for _, ch := range columns {
		switch ch {
		case ',':
			cols = append(cols, current)
			current = ""
		case ' ', '\n', '\t':
		default:
			current += string(ch)
		}
	}
	if current != "" {
		cols = append(cols, current)
	}
	return cols
}
