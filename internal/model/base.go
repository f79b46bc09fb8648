package model

import "github.com/yourusername/courtside/internal/models"

// BaseScore holds the full-game point projections before any adjustment.
// Period-agnostic; all four market predictors start from it.
type BaseScore struct {
	HomeScore float64
	AwayScore float64
	HomeEff   float64
	AwayEff   float64
	Tempo     float64
}

// Margin returns the projected home margin, positive when home is better
func (b BaseScore) Margin() float64 {
	return b.HomeScore - b.AwayScore
}

// Total returns the projected combined score
func (b BaseScore) Total() float64 {
	return b.HomeScore + b.AwayScore
}

// BaseScores converts two teams' efficiency ratings into expected full-game
// score components. Tempo is additive against the league baseline to capture
// the pace interaction; efficiency uses the standard opponent-adjustment
// identity (own offense + opponent defense − league average).
func (p Params) BaseScores(home, away *models.TeamRatings) BaseScore {
	tempo := *home.Tempo + *away.Tempo - p.League.Tempo

	homeEff := *home.AdjO + *away.AdjD - p.League.Efficiency
	awayEff := *away.AdjO + *home.AdjD - p.League.Efficiency

	return BaseScore{
		HomeScore: homeEff * tempo / 100.0,
		AwayScore: awayEff * tempo / 100.0,
		HomeEff:   homeEff,
		AwayEff:   awayEff,
		Tempo:     tempo,
	}
}
