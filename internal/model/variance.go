package model

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

// Sigma estimates the outcome standard deviation for one pairing under a
// market's variance constants. Tempo mismatch and three-point reliance both
// widen the distribution; the clamp keeps a pathological ratings row from
// producing an absurd sigma.
func (p Params) Sigma(cfg config.VarianceConfig, home, away *models.TeamRatings) float64 {
	tempoDiff := math.Abs(*home.Tempo - *away.Tempo)
	avgThreeRate := (*home.ThreePtRate + *away.ThreePtRate) / 2.0

	sigma := cfg.Base +
		tempoDiff*cfg.TempoFactor +
		(avgThreeRate-p.League.ThreePtRate)*cfg.ThreePtFactor

	return clamp(sigma, cfg.Min, cfg.Max)
}
