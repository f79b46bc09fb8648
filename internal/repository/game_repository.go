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

const gameColumns = `
	id, home_team, away_team, tipoff, neutral_site, status,
	home_score, away_score, home_h1_score, away_h1_score`

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Create inserts a new game
func (g *PostgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (` + gameColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := g.db.GetPool().Exec(ctx, query,
		game.ID, game.HomeTeam, game.AwayTeam, game.Tipoff, game.NeutralSite, game.Status,
		game.HomeScore, game.AwayScore, game.HomeH1Score, game.AwayH1Score,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by ID
func (g *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGameRow(g.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByDate retrieves all games tipping off on a calendar date (UTC)
func (g *PostgresGameRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE tipoff >= $1 AND tipoff < $2
		ORDER BY tipoff ASC
	`

	rows, err := g.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGameRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// GetLastPlayed retrieves the most recent game a team appeared in before a
// cutoff, for rest-day computation.
func (g *PostgresGameRepository) GetLastPlayed(ctx context.Context, team string, before time.Time) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE (home_team = $1 OR away_team = $1) AND tipoff < $2
		ORDER BY tipoff DESC
		LIMIT 1
	`

	game, err := scanGameRow(g.db.GetPool().QueryRow(ctx, query, team, before))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last game for %s: %w", team, err)
	}

	return game, nil
}

// SetFinal records final scores and transitions the game to final status
func (g *PostgresGameRepository) SetFinal(ctx context.Context, id uuid.UUID, homeScore, awayScore, homeH1, awayH1 int) error {
	query := `
		UPDATE games
		SET status = $2, home_score = $3, away_score = $4, home_h1_score = $5, away_h1_score = $6
		WHERE id = $1
	`

	tag, err := g.db.GetPool().Exec(ctx, query, id, models.GameStatusFinal, homeScore, awayScore, homeH1, awayH1)
	if err != nil {
		return fmt.Errorf("failed to finalize game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func scanGameRow(row pgx.Row) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID, &game.HomeTeam, &game.AwayTeam, &game.Tipoff, &game.NeutralSite, &game.Status,
		&game.HomeScore, &game.AwayScore, &game.HomeH1Score, &game.AwayH1Score,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}
