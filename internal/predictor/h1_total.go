package predictor

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/models"
)

type h1Total struct {
	market
	fh config.FirstHalfConfig
}

// NewH1Total builds the first-half total predictor
func NewH1Total(cfg config.MarketConfig, fh config.FirstHalfConfig, params model.Params) Predictor {
	return &h1Total{
		market: market{kind: models.MarketKindH1Total, cfg: cfg, params: params},
		fh:     fh,
	}
}

// Predict projects the first-half total from first-half possessions and
// discounted efficiencies. Offenses open colder and defenses fresher than
// the full-game averages, and the regression constants reflect that.
func (p *h1Total) Predict(in Input) (Result, bool) {
	base := p.params.BaseScores(in.Home, in.Away)
	sit := p.params.SituationalAdjustments(in.RestHome, in.RestAway)

	tf := p.params.H1TempoFactor(p.fh, in.Home, in.Away)
	possessions := p.params.H1Possessions(p.fh, base.Tempo*tf/p.fh.TempoFactor)

	effScale := p.fh.OffenseDiscount / p.fh.DefenseIntensity
	homePts := possessions * base.HomeEff / 100.0 * effScale
	awayPts := possessions * base.AwayEff / 100.0 * effScale

	styleAdj := p.styleAdjustments(base, in.Home, in.Away)
	sitAdj := sit.TotalAdj(p.params.H1FatigueDamp)

	total := homePts + awayPts + p.cfg.Calibration + sitAdj + styleAdj

	if p.cfg.HasPlausibilityGate() && (total < p.cfg.PlausibleMin || total > p.cfg.PlausibleMax) {
		return Result{}, false
	}

	adjMag := math.Abs(styleAdj) + math.Abs(sitAdj)

	return Result{
		Value:      total,
		Confidence: model.H1Confidence(p.fh, -adjMag*0.02),
		Sigma:      p.params.Sigma(p.cfg.Variance, in.Home, in.Away),
	}, true
}

// styleAdjustments applies the first-half analogues of the full-game style
// corrections, fitted against actual halftime scores.
func (p *h1Total) styleAdjustments(base model.BaseScore, home, away *models.TeamRatings) float64 {
	var adj float64

	switch {
	case base.Tempo > 71.0:
		adj += (base.Tempo - 71.0) * 0.20
	case base.Tempo < 65.0:
		adj -= (65.0 - base.Tempo) * 0.20
	}

	if math.Abs(*home.Barthag-*away.Barthag) > 0.20 {
		adj -= 1.5
	}

	avgThreeRate := (*home.ThreePtRate + *away.ThreePtRate) / 2.0
	if avgThreeRate > 36.0 {
		adj += (avgThreeRate - 36.0) * 0.20
	}

	return adj
}
