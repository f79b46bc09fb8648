package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/courtside/internal/models"
)

// RatingsRepository defines the interface for team ratings data access.
// Snapshots are written by the ingestion collaborator; the engine only reads
// the latest snapshot at or before a date (never future-dated data).
type RatingsRepository interface {
	GetLatestForTeam(ctx context.Context, team string, asOf time.Time) (*models.TeamRatings, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TeamRatings, error)
	InsertBatch(ctx context.Context, ratings []*models.TeamRatings) error
}

// GameRepository defines the interface for game data access
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error)
	GetLastPlayed(ctx context.Context, team string, before time.Time) (*models.Game, error)
	SetFinal(ctx context.Context, id uuid.UUID, homeScore, awayScore, homeH1, awayH1 int) error
}

// OddsRepository defines the interface for market odds data access. GetLatest
// walks the bookmaker preference list in order and falls back to any book; the
// caller supplies the order so the repository stays preference-agnostic.
type OddsRepository interface {
	Insert(ctx context.Context, odds *models.MarketOdds) error
	InsertBatch(ctx context.Context, odds []*models.MarketOdds) error
	GetLatest(ctx context.Context, gameID uuid.UUID, market models.MarketType, period models.Period, bookmakers []string) (*models.MarketOdds, error)
	GetLatestByBookmaker(ctx context.Context, gameID uuid.UUID, market models.MarketType, period models.Period, bookmaker string) (*models.MarketOdds, error)
	GetHistory(ctx context.Context, gameID uuid.UUID, market models.MarketType, period models.Period, start, end time.Time) ([]*models.MarketOdds, error)
}

// PredictionRepository defines append-only prediction persistence
type PredictionRepository interface {
	InsertBatch(ctx context.Context, predictions []*models.Prediction) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.Prediction, error)
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.Prediction, error)
}

// RecommendationRepository defines append-only recommendation persistence plus
// the reads that support closing-line capture and prior-rate blending.
type RecommendationRepository interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.Recommendation, error)
	GetAwaitingClosingLine(ctx context.Context, tippedBefore time.Time) ([]*models.Recommendation, error)
	SetClosingLine(ctx context.Context, id uuid.UUID, closingLine float64) error
	GetGradedSample(ctx context.Context, market models.MarketKind, limit int) (wins int, total int, err error)
}

// ResolutionAuditRepository defines reads over the team-name resolution audit
// log written by the ratings ingestion job.
type ResolutionAuditRepository interface {
	Insert(ctx context.Context, audit *models.ResolutionAudit) error
	GetResolutionRate(ctx context.Context, since time.Time) (resolved int64, total int64, err error)
}
