// Package predictor implements the four per-market line predictors. Each
// market carries its own calibration constants but shares one base scoring
// model; dispatch happens through the Predictor interface.
package predictor

import (
	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/models"
)

// Input bundles the validated per-game inputs every market consumes. The
// data quality gate guarantees both ratings snapshots are complete before
// an Input is built, so predictors never re-check field presence.
type Input struct {
	Home        *models.TeamRatings
	Away        *models.TeamRatings
	RestHome    int
	RestAway    int
	NeutralSite bool
}

// Result is one market's prediction output
type Result struct {
	Value      float64
	Confidence float64
	Sigma      float64
}

// Predictor is one market's prediction strategy. The boolean is false when
// the market's plausibility gate rejects the raw value; that is a per-market
// no-prediction outcome, not an error, and never blocks sibling markets.
type Predictor interface {
	Kind() models.MarketKind
	MinEdge() float64
	StdError() float64
	Predict(in Input) (Result, bool)
}

// market carries the calibration block and model parameters shared by all
// four implementations.
type market struct {
	kind   models.MarketKind
	cfg    config.MarketConfig
	params model.Params
}

func (m market) Kind() models.MarketKind { return m.kind }

func (m market) MinEdge() float64 { return m.cfg.MinEdge }

func (m market) StdError() float64 { return m.cfg.StdError }

// All constructs the four market predictors from configuration, in the
// stable market order.
func All(markets *config.MarketsConfig, params model.Params) []Predictor {
	return []Predictor{
		NewFGSpread(markets.FGSpread, params),
		NewFGTotal(markets.FGTotal, params),
		NewH1Spread(markets.H1Spread, markets.FirstHalf, params),
		NewH1Total(markets.H1Total, markets.FirstHalf, params),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
