//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtside/internal/database"
	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/repository"
)

const skipIntegration = "Skipping integration test in short mode"

// TestRepositoryIntegration tests the repositories against a real PostgreSQL
// instance configured via config.yaml.test
func TestRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip(skipIntegration)
	}

	ctx := context.Background()
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := repository.NewRepositories(db)
	require.NoError(t, err)

	game := &models.Game{
		ID:       uuid.New(),
		HomeTeam: "Duke",
		AwayTeam: "UNC",
		Tipoff:   time.Now().Add(-2 * time.Hour).UTC(),
		Status:   models.GameStatusScheduled,
	}
	runID := uuid.New()

	t.Run("GameRepository", func(t *testing.T) {
		require.NoError(t, repos.Game.Create(ctx, game))

		retrieved, err := repos.Game.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.HomeTeam, retrieved.HomeTeam)
		assert.Equal(t, game.AwayTeam, retrieved.AwayTeam)

		byDate, err := repos.Game.GetByDate(ctx, game.Tipoff)
		require.NoError(t, err)
		assert.NotEmpty(t, byDate)
	})

	t.Run("PredictionRepository", func(t *testing.T) {
		preds := []*models.Prediction{{
			ID:           uuid.New(),
			RunID:        runID,
			GameID:       game.ID,
			Market:       models.MarketKindFGSpread,
			Value:        -6.5,
			Confidence:   0.72,
			Sigma:        11.0,
			ModelVersion: "v33",
			PredictedAt:  time.Now().UTC(),
		}}
		require.NoError(t, repos.Prediction.InsertBatch(ctx, preds))

		byRun, err := repos.Prediction.GetByRunID(ctx, runID)
		require.NoError(t, err)
		require.Len(t, byRun, 1)
		assert.InDelta(t, -6.5, byRun[0].Value, 1e-9)
	})

	t.Run("RecommendationRepository", func(t *testing.T) {
		rec := &models.Recommendation{
			ID:          uuid.New(),
			RunID:       runID,
			GameID:      game.ID,
			Market:      models.MarketKindFGSpread,
			Pick:        models.SideHome,
			Line:        -3.5,
			Price:       -110,
			Edge:        3.0,
			Probability: 0.58,
			Confidence:  0.70,
			EVPercent:   5.2,
			Units:       1.25,
			Tier:        models.TierMedium,
			CreatedAt:   time.Now().UTC(),
		}
		require.NoError(t, repos.Recommendation.Insert(ctx, rec))

		pending, err := repos.Recommendation.GetAwaitingClosingLine(ctx, time.Now())
		require.NoError(t, err)
		require.NotEmpty(t, pending)

		require.NoError(t, repos.Recommendation.SetClosingLine(ctx, rec.ID, -5.0))

		// The closing line is written once; a second write finds no row
		assert.ErrorIs(t, repos.Recommendation.SetClosingLine(ctx, rec.ID, -6.0), models.ErrNotFound)

		byRun, err := repos.Recommendation.GetByRunID(ctx, runID)
		require.NoError(t, err)
		require.Len(t, byRun, 1)
		require.NotNil(t, byRun[0].ClosingLine)
		assert.InDelta(t, -5.0, *byRun[0].ClosingLine, 1e-9)
	})
}
