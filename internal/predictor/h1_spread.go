package predictor

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/models"
)

type h1Spread struct {
	market
	fh config.FirstHalfConfig
}

// NewH1Spread builds the first-half spread predictor
func NewH1Spread(cfg config.MarketConfig, fh config.FirstHalfConfig, params model.Params) Predictor {
	return &h1Spread{
		market: market{kind: models.MarketKindH1Spread, cfg: cfg, params: params},
		fh:     fh,
	}
}

// Predict projects the first-half spread. The full-game margin is scaled by
// a regression-fitted first-half share, not halved; the HCA constant is
// already first-half scale.
func (p *h1Spread) Predict(in Input) (Result, bool) {
	base := p.params.BaseScores(in.Home, in.Away)
	sit := p.params.SituationalAdjustments(in.RestHome, in.RestAway)
	matchup := p.params.MatchupAdjustments(in.Home, in.Away)

	hca := p.cfg.HCA
	if in.NeutralSite {
		hca = 0
	}

	adj := sit.MarginAdj() + matchup.MarginAdj()
	scale := p.params.H1MarginScale(p.fh, in.Home, in.Away)
	margin := (base.Margin()+adj)*scale + hca

	return Result{
		Value:      -margin,
		Confidence: model.H1Confidence(p.fh, -math.Abs(adj)*0.01),
		Sigma:      p.params.Sigma(p.cfg.Variance, in.Home, in.Away),
	}, true
}
