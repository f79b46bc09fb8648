package clv

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside/internal/metrics"
	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/repository"
)

// Capture fills in closing lines for recommendations whose games have tipped
// off. Each recommendation's closing line is written once; re-running the job
// only touches rows still awaiting one.
type Capture struct {
	recs   repository.RecommendationRepository
	games  repository.GameRepository
	source ClosingLineSource
	logger *logrus.Logger
}

// NewCapture creates a closing-line capture job
func NewCapture(recs repository.RecommendationRepository, games repository.GameRepository, source ClosingLineSource, logger *logrus.Logger) *Capture {
	return &Capture{
		recs:   recs,
		games:  games,
		source: source,
		logger: logger,
	}
}

// Run captures closing lines for all recommendations awaiting one. Per-row
// failures are logged and skipped; the next run retries them.
func (c *Capture) Run(ctx context.Context) (int, error) {
	pending, err := c.recs.GetAwaitingClosingLine(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to load pending recommendations: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	captured := 0
	for _, rec := range pending {
		game, err := c.games.GetByID(ctx, rec.GameID)
		if err != nil {
			c.logger.WithError(err).WithField("game_id", rec.GameID).Warn("Game lookup failed, skipping recommendation")
			continue
		}

		line, err := c.source.ClosingLine(ctx, game, rec.Market)
		if err == models.ErrNotFound {
			c.logger.WithFields(logrus.Fields{
				"game_id": rec.GameID,
				"market":  rec.Market,
			}).Debug("No closing line posted yet")
			continue
		}
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"game_id": rec.GameID,
				"market":  rec.Market,
			}).Warn("Closing line fetch failed")
			continue
		}

		if err := c.recs.SetClosingLine(ctx, rec.ID, line); err != nil {
			c.logger.WithError(err).WithField("recommendation_id", rec.ID).Warn("Closing line write failed")
			continue
		}

		metrics.RecordClosingLine()
		captured++
	}

	c.logger.WithFields(logrus.Fields{
		"pending":  len(pending),
		"captured": captured,
	}).Info("Closing line capture completed")

	return captured, nil
}
