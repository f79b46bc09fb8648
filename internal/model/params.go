// Package model implements the base scoring model and its adjusters. All
// functions are pure: two complete ratings snapshots plus rest-day integers
// in, points out. The data quality gate guarantees completeness before any
// snapshot reaches this package.
package model

import "github.com/yourusername/courtside/internal/config"

// Params holds the scoring model's weights and the league baselines it
// adjusts against. Constructed once from configuration and passed explicitly;
// there is no ambient state.
type Params struct {
	League config.LeagueAverages

	BackToBackPenalty float64
	ShortRestPenalty  float64
	RestDiffPerDay    float64
	RestDiffCap       float64
	TotalFatigueDamp  float64
	H1FatigueDamp     float64

	ReboundWeight  float64
	TurnoverWeight float64
	FTRateWeight   float64

	H1EFGTempoShift  float64
	H1EFGMarginShift float64
}

// NewParams builds model parameters from league averages with the
// backtest-fitted adjuster weights.
func NewParams(league config.LeagueAverages) Params {
	return Params{
		League:            league,
		BackToBackPenalty: 2.25,
		ShortRestPenalty:  1.25,
		RestDiffPerDay:    0.5,
		RestDiffCap:       2.0,
		TotalFatigueDamp:  0.3,
		H1FatigueDamp:     0.10,
		ReboundWeight:     0.15,
		TurnoverWeight:    0.10,
		FTRateWeight:      0.15,
		H1EFGTempoShift:   0.005,
		H1EFGMarginShift:  0.01,
	}
}
