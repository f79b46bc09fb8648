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

const oddsColumns = `
	id, game_id, market, period, bookmaker, line,
	home_price, away_price, over_price, under_price,
	open_line, public_bet_pct, fetched_at`

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Insert inserts a single odds record
func (o *PostgresOddsRepository) Insert(ctx context.Context, odds *models.MarketOdds) error {
	query := `
		INSERT INTO market_odds (` + oddsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := o.db.GetPool().Exec(ctx, query,
		odds.ID, odds.GameID, odds.Market, odds.Period, odds.Bookmaker, odds.Line,
		odds.HomePrice, odds.AwayPrice, odds.OverPrice, odds.UnderPrice,
		odds.OpenLine, odds.PublicBetPct, odds.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert odds record: %w", err)
	}

	return nil
}

// InsertBatch inserts multiple odds records using a bulk COPY
func (o *PostgresOddsRepository) InsertBatch(ctx context.Context, odds []*models.MarketOdds) error {
	if len(odds) == 0 {
		return nil
	}

	columns := []string{
		"id", "game_id", "market", "period", "bookmaker", "line",
		"home_price", "away_price", "over_price", "under_price",
		"open_line", "public_bet_pct", "fetched_at",
	}

	rows := make([][]interface{}, len(odds))
	for i, rec := range odds {
		rows[i] = []interface{}{
			rec.ID, rec.GameID, rec.Market, rec.Period, rec.Bookmaker, rec.Line,
			rec.HomePrice, rec.AwayPrice, rec.OverPrice, rec.UnderPrice,
			rec.OpenLine, rec.PublicBetPct, rec.FetchedAt,
		}
	}

	count, err := o.db.GetPool().CopyFrom(ctx, pgx.Identifier{"market_odds"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert odds records: %w", err)
	}
	if count != int64(len(odds)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(odds))
	}

	return nil
}

// GetLatest retrieves the latest odds record, walking the supplied bookmaker
// preference list in order before falling back to any bookmaker.
func (o *PostgresOddsRepository) GetLatest(ctx context.Context, gameID uuid.UUID, market models.MarketType, period models.Period, bookmakers []string) (*models.MarketOdds, error) {
	for _, book := range bookmakers {
		odds, err := o.GetLatestByBookmaker(ctx, gameID, market, period, book)
		if err == models.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		return odds, nil
	}

	query := `
		SELECT ` + oddsColumns + `
		FROM market_odds
		WHERE game_id = $1 AND market = $2 AND period = $3
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	odds, err := scanOddsRow(o.db.GetPool().QueryRow(ctx, query, gameID, market, period))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest odds: %w", err)
	}

	return odds, nil
}

// GetLatestByBookmaker retrieves the latest odds record for one bookmaker
func (o *PostgresOddsRepository) GetLatestByBookmaker(ctx context.Context, gameID uuid.UUID, market models.MarketType, period models.Period, bookmaker string) (*models.MarketOdds, error) {
	query := `
		SELECT ` + oddsColumns + `
		FROM market_odds
		WHERE game_id = $1 AND market = $2 AND period = $3 AND bookmaker = $4
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	odds, err := scanOddsRow(o.db.GetPool().QueryRow(ctx, query, gameID, market, period, bookmaker))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest odds for %s: %w", bookmaker, err)
	}

	return odds, nil
}

// GetHistory retrieves the time-ordered odds records for a market in a window
func (o *PostgresOddsRepository) GetHistory(ctx context.Context, gameID uuid.UUID, market models.MarketType, period models.Period, start, end time.Time) ([]*models.MarketOdds, error) {
	query := `
		SELECT ` + oddsColumns + `
		FROM market_odds
		WHERE game_id = $1 AND market = $2 AND period = $3 AND fetched_at >= $4 AND fetched_at <= $5
		ORDER BY fetched_at ASC
	`

	rows, err := o.db.GetPool().Query(ctx, query, gameID, market, period, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds history: %w", err)
	}
	defer rows.Close()

	var records []*models.MarketOdds
	for rows.Next() {
		rec, err := scanOddsRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan odds record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanOddsRow(row pgx.Row) (*models.MarketOdds, error) {
	rec := &models.MarketOdds{}
	err := row.Scan(
		&rec.ID, &rec.GameID, &rec.Market, &rec.Period, &rec.Bookmaker, &rec.Line,
		&rec.HomePrice, &rec.AwayPrice, &rec.OverPrice, &rec.UnderPrice,
		&rec.OpenLine, &rec.PublicBetPct, &rec.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
