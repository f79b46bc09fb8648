package repository

import (
	"fmt"

	"github.com/yourusername/courtside/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Ratings         RatingsRepository
	Game            GameRepository
	Odds            OddsRepository
	Prediction      PredictionRepository
	Recommendation  RecommendationRepository
	ResolutionAudit ResolutionAuditRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Ratings:         NewPostgresRatingsRepository(db),
		Game:            NewPostgresGameRepository(db),
		Odds:            NewPostgresOddsRepository(db),
		Prediction:      NewPostgresPredictionRepository(db),
		Recommendation:  NewPostgresRecommendationRepository(db),
		ResolutionAudit: NewPostgresResolutionAuditRepository(db),
	}, nil
}
