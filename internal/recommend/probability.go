package recommend

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

// ProbabilitySource estimates the probability that a pick covers, given the
// model-vs-market edge and the market's sigma estimate. The default is the
// statistical CDF source below; callers with a trained model substitute a
// different implementation without changing the engine's contract.
type ProbabilitySource interface {
	CoverProbability(ctx context.Context, market models.MarketKind, edge, sigma float64) (float64, error)
}

// CDFSource is the default statistical probability source: the standard
// normal CDF of edge over sigma, with the z-score capped so a single huge
// edge cannot claim near-certainty the backtest never validated.
type CDFSource struct {
	zCap float64
}

// NewCDFSource creates the default probability source
func NewCDFSource(zCap float64) *CDFSource {
	return &CDFSource{zCap: zCap}
}

// CoverProbability implements ProbabilitySource
func (s *CDFSource) CoverProbability(_ context.Context, _ models.MarketKind, edge, sigma float64) (float64, error) {
	if sigma <= 0 {
		return 0, fmt.Errorf("invalid sigma %f", sigma)
	}

	z := edge / sigma
	if z > s.zCap {
		z = s.zCap
	}

	std := distuv.Normal{Mu: 0, Sigma: 1}
	return std.CDF(z), nil
}

// shrinkProbability pulls a raw probability toward the coin flip in
// proportion to how little the model trusts this particular prediction.
func shrinkProbability(p, confidence float64) float64 {
	return 0.5 + (p-0.5)*confidence
}

// bayesianBlend mixes the model probability with the posterior hit rate of
// graded recommendations for the same market. Below the sample minimum the
// history carries no signal and the model probability passes through.
func bayesianBlend(p float64, wins, total int, cfg config.BayesConfig) float64 {
	if total < cfg.MinSamples {
		return p
	}
	posterior := (float64(wins) + cfg.PriorRate*cfg.PriorWeight) / (float64(total) + cfg.PriorWeight)
	return (p + posterior) / 2.0
}
