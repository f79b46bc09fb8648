package predictor

import (
	"math"

	"github.com/yourusername/courtside/internal/models"
)

// StatisticalConfidence scores how much the backtested error model should be
// trusted for one particular pairing. Well-ranked teams have tighter rating
// error bars; a large edge relative to the market's historical standard error
// is more likely real than noise; quality and style mismatches widen the
// bars. Clamped to the band the backtest validated.
func StatisticalConfidence(home, away *models.TeamRatings, edge, stdError float64) float64 {
	conf := 0.5

	best, worst := *home.Rank, *away.Rank
	if worst < best {
		best, worst = worst, best
	}

	switch {
	case best <= 25:
		conf += 0.15
	case best <= 50:
		conf += 0.10
	case best <= 100:
		conf += 0.05
	case best > 250:
		conf -= 0.05
	}

	switch {
	case worst <= 50:
		conf += 0.08
	case worst <= 150:
		conf += 0.05
	case worst > 250:
		conf -= 0.03
	}

	z := edge / stdError
	switch {
	case z > 2.0:
		conf += 0.10
	case z > 1.5:
		conf += 0.05
	case z < 0.5:
		conf -= 0.05
	}

	gap := math.Abs(*home.Barthag - *away.Barthag)
	switch {
	case gap < 0.1:
		conf += 0.04
	case gap > 0.3:
		conf -= 0.02
	}

	// Similar paces play out closer to the ratings; extreme mismatches add
	// game-script variance the efficiency numbers cannot see.
	tempoDiff := math.Abs(*home.Tempo - *away.Tempo)
	switch {
	case tempoDiff < 4.0:
		conf += 0.02
	case tempoDiff > 8.0:
		conf -= 0.02
	}

	return clamp(conf, 0.30, 0.95)
}
