package model

import "github.com/yourusername/courtside/internal/models"

// Matchup holds the Four-Factors deltas for one pairing, each already
// weighted into points on the home margin.
type Matchup struct {
	Rebounding float64
	Turnovers  float64
	FreeThrows float64
}

// MarginAdj returns the combined matchup adjustment to the home margin
func (m Matchup) MarginAdj() float64 {
	return m.Rebounding + m.Turnovers + m.FreeThrows
}

// MatchupAdjustments computes the Four-Factors edges between two teams.
// Each edge is symmetric: the home advantage minus the mirrored away
// advantage, so swapping the teams negates every component exactly.
func (p Params) MatchupAdjustments(home, away *models.TeamRatings) Matchup {
	return Matchup{
		Rebounding: p.reboundingEdge(home, away),
		Turnovers:  p.turnoverEdge(home, away),
		FreeThrows: p.freeThrowEdge(home, away),
	}
}

// reboundingEdge compares each offense's rebounding against the opposing
// defense. Defensive rebound rate complements offensive rate to 100, which
// converts the defensive stat into offensive-equivalent terms.
func (p Params) reboundingEdge(home, away *models.TeamRatings) float64 {
	avg := p.League.ORB

	homeEdge := (*home.ORB - avg) + ((100.0 - *away.DRB) - avg)
	awayEdge := (*away.ORB - avg) + ((100.0 - *home.DRB) - avg)

	return (homeEdge - awayEdge) * p.ReboundWeight
}

// turnoverEdge estimates each side's expected turnover rate from its own
// rate and the opponent's forced rate, both as deviations from league
// average. Fewer expected turnovers than the opponent is a positive edge.
func (p Params) turnoverEdge(home, away *models.TeamRatings) float64 {
	avg := p.League.TOR

	expHome := avg + (*home.TOR - avg) + (*away.TORD - avg)
	expAway := avg + (*away.TOR - avg) + (*home.TORD - avg)

	return (expAway - expHome) * p.TurnoverWeight
}

// freeThrowEdge compares free-throw generation against the opposing
// defense's foul tendency.
func (p Params) freeThrowEdge(home, away *models.TeamRatings) float64 {
	avg := p.League.FTR

	homeEdge := (*home.FTR - avg) + (*away.FTRD - avg)
	awayEdge := (*away.FTR - avg) + (*home.FTRD - avg)

	return (homeEdge - awayEdge) * p.FTRateWeight
}
