// Package gate implements the data quality gate that guards prediction runs.
package gate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/repository"
)

// Skip reasons attached to games the gate routes out of a run
const (
	ReasonMissingRatings    = "missing ratings"
	ReasonIncompleteRatings = "incomplete ratings"
	ReasonNoOdds            = "no odds"
	ReasonIncompleteOdds    = "incomplete odds"
	ReasonStaleOdds         = "stale odds"
)

// RatingsGetter is the read surface the gate needs from the ratings layer.
// Both the repository and the read-through cache satisfy it.
type RatingsGetter interface {
	GetLatestForTeam(ctx context.Context, team string, asOf time.Time) (*models.TeamRatings, error)
}

// UsableGame bundles a game with the validated inputs the predictors need
type UsableGame struct {
	Game *models.Game
	Home *models.TeamRatings
	Away *models.TeamRatings
	Odds map[models.MarketKind]*models.MarketOdds
}

// SkippedGame records a game the gate filtered out, with its reason
type SkippedGame struct {
	Game   *models.Game
	Reason string
	Detail string
}

// Gate validates upstream data quality before and during a prediction run.
// The resolution-rate check is fatal to the whole run; per-game checks only
// route individual games to the skip report.
type Gate struct {
	ratings RatingsGetter
	odds    repository.OddsRepository
	audits  repository.ResolutionAuditRepository
	cfg     *config.GateConfig
	logger  *logrus.Logger
}

// NewGate creates a new data quality gate
func NewGate(ratings RatingsGetter, odds repository.OddsRepository, audits repository.ResolutionAuditRepository, cfg *config.GateConfig, logger *logrus.Logger) *Gate {
	return &Gate{
		ratings: ratings,
		odds:    odds,
		audits:  audits,
		cfg:     cfg,
		logger:  logger,
	}
}

// CanRun checks the global team-name resolution rate over the lookback
// window. A rate below the threshold indicates systemic upstream corruption;
// no per-game workaround is safe, so the whole batch is blocked.
func (g *Gate) CanRun(ctx context.Context) (bool, float64, error) {
	since := time.Now().AddDate(0, 0, -g.cfg.LookbackDays)

	resolved, total, err := g.audits.GetResolutionRate(ctx, since)
	if err != nil {
		return false, 0, fmt.Errorf("failed to read resolution audit: %w", err)
	}

	if total == 0 {
		g.logger.WithField("lookback_days", g.cfg.LookbackDays).Warn("No resolution lookups in window, allowing run")
		return true, 1.0, nil
	}

	rate := float64(resolved) / float64(total)
	if rate < g.cfg.MinResolutionRate {
		g.logger.WithFields(logrus.Fields{
			"resolution_rate": rate,
			"threshold":       g.cfg.MinResolutionRate,
			"resolved":        resolved,
			"total":           total,
		}).Error("Resolution rate below threshold, blocking run")
		return false, rate, nil
	}

	return true, rate, nil
}

// FilterGames splits games into usable and skipped. A usable game has
// complete ratings snapshots for both teams and, for every market the engine
// predicts, a fresh odds record with both sides explicitly priced.
func (g *Gate) FilterGames(ctx context.Context, games []*models.Game, asOf time.Time) ([]UsableGame, []SkippedGame, error) {
	var usable []UsableGame
	var skipped []SkippedGame

	for _, game := range games {
		checked, skip, err := g.checkGame(ctx, game, asOf)
		if err != nil {
			return nil, nil, err
		}
		if skip != nil {
			g.logger.WithFields(logrus.Fields{
				"game_id":   game.ID,
				"home_team": game.HomeTeam,
				"away_team": game.AwayTeam,
				"reason":    skip.Reason,
				"detail":    skip.Detail,
			}).Info("Game filtered out")
			skipped = append(skipped, *skip)
			continue
		}
		usable = append(usable, *checked)
	}

	return usable, skipped, nil
}

func (g *Gate) checkGame(ctx context.Context, game *models.Game, asOf time.Time) (*UsableGame, *SkippedGame, error) {
	home, skip, err := g.checkRatings(ctx, game, game.HomeTeam)
	if err != nil || skip != nil {
		return nil, skip, err
	}
	away, skip, err := g.checkRatings(ctx, game, game.AwayTeam)
	if err != nil || skip != nil {
		return nil, skip, err
	}

	books := append(append([]string{}, g.cfg.SharpBooks...), g.cfg.SquareBooks...)
	odds := make(map[models.MarketKind]*models.MarketOdds, 4)
	for _, kind := range models.AllMarketKinds() {
		rec, err := g.odds.GetLatest(ctx, game.ID, kind.Type(), kind.Period(), books)
		if err == models.ErrNotFound {
			return nil, &SkippedGame{Game: game, Reason: ReasonNoOdds, Detail: string(kind)}, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load odds for game %s: %w", game.ID, err)
		}
		if !rec.HasBothPrices() {
			return nil, &SkippedGame{Game: game, Reason: ReasonIncompleteOdds, Detail: string(kind)}, nil
		}
		if !rec.IsFresh(asOf, g.cfg.MaxOddsAge()) {
			detail := fmt.Sprintf("%s fetched %s ago", kind, asOf.Sub(rec.FetchedAt).Round(time.Minute))
			return nil, &SkippedGame{Game: game, Reason: ReasonStaleOdds, Detail: detail}, nil
		}
		odds[kind] = rec
	}

	return &UsableGame{Game: game, Home: home, Away: away, Odds: odds}, nil, nil
}

func (g *Gate) checkRatings(ctx context.Context, game *models.Game, team string) (*models.TeamRatings, *SkippedGame, error) {
	snapshot, err := g.ratings.GetLatestForTeam(ctx, team, game.GameDate())
	if err == models.ErrNotFound {
		return nil, &SkippedGame{Game: game, Reason: ReasonMissingRatings, Detail: team}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ratings for %s: %w", team, err)
	}

	if missing := snapshot.MissingFields(); len(missing) > 0 {
		detail := fmt.Sprintf("%s: %s", team, strings.Join(missing, ", "))
		return nil, &SkippedGame{Game: game, Reason: ReasonIncompleteRatings, Detail: detail}, nil
	}

	return snapshot, nil, nil
}
