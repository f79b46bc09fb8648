package predictor

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/models"
)

type fgSpread struct {
	market
}

// NewFGSpread builds the full-game spread predictor
func NewFGSpread(cfg config.MarketConfig, params model.Params) Predictor {
	return &fgSpread{market{kind: models.MarketKindFGSpread, cfg: cfg, params: params}}
}

// Predict projects the full-game spread. Sign convention follows the
// sportsbook: negative means the home team is favored.
func (p *fgSpread) Predict(in Input) (Result, bool) {
	base := p.params.BaseScores(in.Home, in.Away)
	sit := p.params.SituationalAdjustments(in.RestHome, in.RestAway)
	matchup := p.params.MatchupAdjustments(in.Home, in.Away)

	hca := p.cfg.HCA
	if in.NeutralSite {
		hca = 0
	}

	adj := sit.MarginAdj() + matchup.MarginAdj()
	margin := base.Margin() + hca + adj

	return Result{
		Value:      -margin,
		Confidence: clamp(0.72-math.Abs(adj)*0.015, 0.55, 0.85),
		Sigma:      p.params.Sigma(p.cfg.Variance, in.Home, in.Away),
	}, true
}
