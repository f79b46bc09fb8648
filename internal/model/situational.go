package model

// Situational holds the rest-based adjustments for one matchup. Fatigue
// values are positive penalty magnitudes on the team's own scoring.
type Situational struct {
	HomeFatigue float64
	AwayFatigue float64
	RestDiffAdj float64
}

// MarginAdj returns the signed adjustment to the home margin
func (s Situational) MarginAdj() float64 {
	return -s.HomeFatigue + s.AwayFatigue + s.RestDiffAdj
}

// TotalAdj returns the adjustment to the combined score. Fatigue suppresses
// scoring on both sides, damped because tired teams also defend worse.
func (s Situational) TotalAdj(damp float64) float64 {
	return -(s.HomeFatigue + s.AwayFatigue) * damp
}

// SituationalAdjustments computes rest-day penalties for both teams and the
// rest differential applied to the margin.
func (p Params) SituationalAdjustments(restHome, restAway int) Situational {
	diff := float64(restHome-restAway) * p.RestDiffPerDay
	diff = clamp(diff, -p.RestDiffCap, p.RestDiffCap)

	return Situational{
		HomeFatigue: p.fatiguePenalty(restHome),
		AwayFatigue: p.fatiguePenalty(restAway),
		RestDiffAdj: diff,
	}
}

// fatiguePenalty returns the scoring penalty for a team's rest days.
// Zero days is a back-to-back.
func (p Params) fatiguePenalty(restDays int) float64 {
	switch {
	case restDays <= 0:
		return p.BackToBackPenalty
	case restDays == 1:
		return p.ShortRestPenalty
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
