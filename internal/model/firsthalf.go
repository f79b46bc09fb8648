package model

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

// First-half projections come from a separate regression against actual
// first-half results. Halving the full-game numbers is wrong in both
// directions: second halves run faster (fouling, late pace) and first
// halves open with fresher defenses.

// H1TempoFactor returns the fraction of game tempo expected in the first
// half. Efficient shooting teams get into their sets faster, nudging the
// factor up.
func (p Params) H1TempoFactor(cfg config.FirstHalfConfig, home, away *models.TeamRatings) float64 {
	avgEFG := (*home.EFG + *away.EFG) / 2.0
	factor := cfg.TempoFactor + (avgEFG-p.League.EFG)*p.H1EFGTempoShift
	return clamp(factor, cfg.TempoFactorMin, cfg.TempoFactorMax)
}

// H1MarginScale returns the fraction of the full-game margin expected by
// halftime. A large shooting-quality gap tends to show up early, before
// garbage-time compression.
func (p Params) H1MarginScale(cfg config.FirstHalfConfig, home, away *models.TeamRatings) float64 {
	efgDiff := math.Abs(*home.EFG - *away.EFG)
	scale := cfg.MarginScale + efgDiff*p.H1EFGMarginShift
	return clamp(scale, cfg.MarginScaleMin, cfg.MarginScaleMax)
}

// H1Possessions projects first-half possessions from the expected full-game
// tempo's deviation from league average.
func (p Params) H1Possessions(cfg config.FirstHalfConfig, expectedTempo float64) float64 {
	tempoDev := (expectedTempo - p.League.Tempo) / p.League.Tempo
	return cfg.PossessionsBase * (1.0 + tempoDev*cfg.TempoSwing) * cfg.LatePaceBoost
}

// H1Confidence returns the base confidence for first-half markets, clamped
// to the regression's reliable band.
func H1Confidence(cfg config.FirstHalfConfig, adjustment float64) float64 {
	return clamp(cfg.BaseConfidence+adjustment, cfg.ConfidenceMin, cfg.ConfidenceMax)
}
