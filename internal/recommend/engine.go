// Package recommend converts model-vs-market discrepancies into graded,
// risk-sized bet recommendations.
package recommend

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/predictor"
)

// Rejection reasons for candidates that failed a filter. Rejection is the
// expected negative outcome of the engine, not a failure.
const (
	RejectEdge       = "edge"
	RejectConfidence = "confidence"
	RejectEV         = "ev"
)

// gradedSampleLimit caps how much graded history feeds the Bayesian blend
const gradedSampleLimit = 200

// Candidate bundles everything the engine needs to grade one (game, market)
type Candidate struct {
	Game     *models.Game
	RunID    uuid.UUID
	Kind     models.MarketKind
	Value    float64
	BaseConf float64
	Sigma    float64
	MinEdge  float64
	StdError float64
	Odds     *models.MarketOdds
	Context  MarketContext
	Home     *models.TeamRatings
	Away     *models.TeamRatings
}

// GradedSampleSource supplies graded recommendation history for the Bayesian
// prior blend. A nil source disables the blend.
type GradedSampleSource interface {
	GetGradedSample(ctx context.Context, market models.MarketKind, limit int) (wins, total int, err error)
}

// Engine applies the edge, confidence and EV gates in order and sizes
// whatever survives with fractional Kelly.
type Engine struct {
	cfg    *config.RecommendationConfig
	prob   ProbabilitySource
	grades GradedSampleSource
	logger *logrus.Logger
}

// NewEngine creates a recommendation engine
func NewEngine(cfg *config.RecommendationConfig, prob ProbabilitySource, grades GradedSampleSource, logger *logrus.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		prob:   prob,
		grades: grades,
		logger: logger,
	}
}

// Recommend grades one candidate. Exactly one of three outcomes is returned:
// a recommendation, a non-empty rejection reason, or an error. Rejections are
// logged by the caller, never persisted.
func (e *Engine) Recommend(ctx context.Context, c Candidate) (*models.Recommendation, string, error) {
	line := c.Odds.Line

	edge := math.Abs(c.Value - line)
	if edge < c.MinEdge {
		return nil, RejectEdge, nil
	}

	pick := pickSide(c.Kind, c.Value, line)

	conf, flags := e.adjustConfidence(c, pick, edge)
	if conf < e.cfg.MinConfidence {
		return nil, RejectConfidence, nil
	}

	prob, err := e.calibratedProbability(ctx, c, edge, conf)
	if err != nil {
		return nil, "", err
	}

	price, err := c.Odds.PriceFor(pick)
	if err != nil {
		return nil, "", fmt.Errorf("no price for %s %s on game %s: %w", c.Kind, pick, c.Game.ID, err)
	}

	payout, _ := models.AmericanToDecimal(price).Float64()
	b := payout - 1.0

	ev := prob*b - (1.0 - prob)
	evPercent := ev * 100.0
	if ev < 0 || evPercent < e.cfg.MinEVPercent {
		return nil, RejectEV, nil
	}

	kelly := (b*prob - (1.0 - prob)) / b
	if kelly < 0 {
		kelly = 0
	}
	staked := kelly * e.cfg.KellyFraction
	units := math.Min(staked*e.cfg.UnitScale, e.cfg.MaxUnits)

	rec := &models.Recommendation{
		ID:            uuid.New(),
		RunID:         c.RunID,
		GameID:        c.Game.ID,
		Market:        c.Kind,
		Pick:          pick,
		Line:          line,
		Price:         price,
		Edge:          edge,
		Probability:   prob,
		Confidence:    conf,
		EVPercent:     evPercent,
		KellyFraction: staked,
		Units:         units,
		Tier:          e.tierFor(edge, conf),
		Flags:         flags,
		CreatedAt:     time.Now().UTC(),
	}
	// Persisted stakes are rounded to the cent of a unit
	rec.Units = rec.RoundedUnits()

	return rec, "", nil
}

// calibratedProbability runs the probability pipeline: raw source estimate,
// confidence shrink toward the coin flip, optional Bayesian history blend,
// then the hard clamp that keeps Kelly sizing out of degenerate territory.
func (e *Engine) calibratedProbability(ctx context.Context, c Candidate, edge, conf float64) (float64, error) {
	p, err := e.prob.CoverProbability(ctx, c.Kind, edge, c.Sigma)
	if err != nil {
		return 0, fmt.Errorf("probability source failed for %s: %w", c.Kind, err)
	}

	p = shrinkProbability(p, conf)

	if e.grades != nil {
		wins, total, err := e.grades.GetGradedSample(ctx, c.Kind, gradedSampleLimit)
		if err != nil {
			e.logger.WithError(err).WithField("market", c.Kind).Warn("Graded sample unavailable, skipping Bayesian blend")
		} else {
			p = bayesianBlend(p, wins, total, e.cfg.Bayes)
		}
	}

	return clampFloat(p, e.cfg.ProbabilityFloor, e.cfg.ProbabilityCeiling), nil
}

// adjustConfidence blends the predictor's base confidence with the pairing's
// statistical confidence, then applies the market-context signals.
func (e *Engine) adjustConfidence(c Candidate, pick models.Side, edge float64) (float64, models.ContextFlags) {
	stat := predictor.StatisticalConfidence(c.Home, c.Away, edge, c.StdError)
	conf := (c.BaseConf + stat) / 2.0

	var flags models.ContextFlags
	flags.SharpSquareDiverge = c.Context.SharpSquareDiverge

	if c.Context.SharpSide != "" && c.Context.SharpSide != pick {
		flags.AgainstSharp = true
		conf *= 1.0 - e.cfg.AgainstSharpPenalty
	}

	if c.Context.SteamSide != "" {
		flags.SteamMove = true
		if c.Context.SteamSide == pick {
			conf += e.cfg.SteamBoost
		} else {
			conf -= e.cfg.SteamPenalty
		}
	}

	if c.Context.RLMSide != "" && c.Context.RLMSide == pick {
		flags.ReverseLineMovement = true
		conf += e.cfg.RLMBoost
	}

	return clampFloat(conf, 0.30, 0.95), flags
}

// tierFor grades a surviving candidate by edge and confidence
func (e *Engine) tierFor(edge, conf float64) models.BetTier {
	switch {
	case edge >= 5.0 && conf >= 0.75:
		return models.TierMax
	case edge >= 3.0 && conf >= 0.70:
		return models.TierMedium
	default:
		return models.TierStandard
	}
}

// pickSide maps the model-vs-market discrepancy to the side being backed.
// Spread lines are quoted on the home team with negative meaning favored, so
// a model number below the market line backs home.
func pickSide(kind models.MarketKind, predicted, line float64) models.Side {
	if kind.IsSpread() {
		if predicted < line {
			return models.SideHome
		}
		return models.SideAway
	}
	if predicted > line {
		return models.SideOver
	}
	return models.SideUnder
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
