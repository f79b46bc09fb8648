package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtside/internal/database"
	"github.com/yourusername/courtside/internal/models"
)

const predictionColumns = `
	id, run_id, game_id, market, value, confidence, sigma, model_version, predicted_at`

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// InsertBatch appends a run's predictions using a bulk COPY. Rows are never
// updated; each run writes under its own run ID.
func (p *PostgresPredictionRepository) InsertBatch(ctx context.Context, predictions []*models.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	columns := []string{
		"id", "run_id", "game_id", "market", "value", "confidence", "sigma", "model_version", "predicted_at",
	}

	rows := make([][]interface{}, len(predictions))
	for i, pred := range predictions {
		rows[i] = []interface{}{
			pred.ID, pred.RunID, pred.GameID, pred.Market, pred.Value,
			pred.Confidence, pred.Sigma, pred.ModelVersion, pred.PredictedAt,
		}
	}

	count, err := p.db.GetPool().CopyFrom(ctx, pgx.Identifier{"predictions"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert predictions: %w", err)
	}
	if count != int64(len(predictions)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(predictions))
	}

	return nil
}

// GetByRunID retrieves all predictions from one run
func (p *PostgresPredictionRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE run_id = $1
		ORDER BY game_id, market
	`
	return p.queryPredictions(ctx, query, runID)
}

// GetByGameID retrieves the full prediction history for a game across runs
func (p *PostgresPredictionRepository) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE game_id = $1
		ORDER BY predicted_at ASC
	`
	return p.queryPredictions(ctx, query, gameID)
}

func (p *PostgresPredictionRepository) queryPredictions(ctx context.Context, query string, arg interface{}) ([]*models.Prediction, error) {
	rows, err := p.db.GetPool().Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		pred := &models.Prediction{}
		err := rows.Scan(
			&pred.ID, &pred.RunID, &pred.GameID, &pred.Market, &pred.Value,
			&pred.Confidence, &pred.Sigma, &pred.ModelVersion, &pred.PredictedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, pred)
	}

	return predictions, rows.Err()
}
