package predictor

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/models"
)

type fgTotal struct {
	market
}

// NewFGTotal builds the full-game total predictor
func NewFGTotal(cfg config.MarketConfig, params model.Params) Predictor {
	return &fgTotal{market{kind: models.MarketKindFGTotal, cfg: cfg, params: params}}
}

// Predict projects the full-game total. The raw value must fall inside the
// pre-registered plausible range or the market emits no prediction; outside
// that band the linear approximation is known to break down.
func (p *fgTotal) Predict(in Input) (Result, bool) {
	base := p.params.BaseScores(in.Home, in.Away)
	sit := p.params.SituationalAdjustments(in.RestHome, in.RestAway)

	hca := p.cfg.HCA
	if in.NeutralSite {
		hca = 0
	}

	styleAdj := p.styleAdjustments(base, in.Home, in.Away)
	sitAdj := sit.TotalAdj(p.params.TotalFatigueDamp)

	total := base.Total() + hca + p.cfg.Calibration + sitAdj + styleAdj

	if p.cfg.HasPlausibilityGate() && (total < p.cfg.PlausibleMin || total > p.cfg.PlausibleMax) {
		return Result{}, false
	}

	// Large adjustments mean the projection leans on extrapolation rather
	// than the efficiency identity, so confidence decays with their size.
	adjMag := math.Abs(styleAdj) + math.Abs(sitAdj)

	return Result{
		Value:      total,
		Confidence: clamp(0.70-adjMag*0.02, 0.50, 0.85),
		Sigma:      p.params.Sigma(p.cfg.Variance, in.Home, in.Away),
	}, true
}

// styleAdjustments sums the backtest-fitted corrections for game styles the
// base efficiency identity systematically misprices: extreme paces, quality
// mismatches, three-point volume, elite or broken offenses, turnover-heavy
// and foul-heavy profiles.
func (p *fgTotal) styleAdjustments(base model.BaseScore, home, away *models.TeamRatings) float64 {
	var adj float64

	switch {
	case base.Tempo > 70.0:
		adj += (base.Tempo - 70.0) * 0.3
	case base.Tempo < 66.0:
		adj -= (66.0 - base.Tempo) * 0.3
	}

	// Lopsided games empty the benches early and the total sags.
	if math.Abs(*home.Barthag-*away.Barthag) > 0.15 {
		adj -= 2.0
	}

	avgThreeRate := (*home.ThreePtRate + *away.ThreePtRate) / 2.0
	if avgThreeRate > 38.0 {
		adj += (avgThreeRate - 38.0) * 0.15
	}

	avgEff := (base.HomeEff + base.AwayEff) / 2.0
	switch {
	case avgEff > 115.0:
		adj += (avgEff - 115.0) * 0.2
	case avgEff < 100.0:
		adj -= (100.0 - avgEff) * 0.2
	}

	avgTOR := (*home.TOR + *away.TOR) / 2.0
	switch {
	case avgTOR > 20.0:
		adj -= (avgTOR - 20.0) * 0.3
	case avgTOR < 16.0:
		adj += (16.0 - avgTOR) * 0.3
	}

	avgFTR := (*home.FTR + *away.FTR) / 2.0
	if avgFTR > 36.0 {
		adj += (avgFTR - 36.0) * 0.2
	}

	return adj
}
