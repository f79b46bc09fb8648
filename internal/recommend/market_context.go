package recommend

import (
	"math"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

// MarketContext summarizes the line-movement signals for one (game, market).
// Side fields are empty when no signal of that kind was detected.
type MarketContext struct {
	LineMove           float64
	SharpSide          models.Side
	SteamSide          models.Side
	RLMSide            models.Side
	SharpSquareDiverge bool
}

// Detector derives market context from odds records. Thresholds are
// market-type specific: spreads move in half points, totals in full points.
type Detector struct {
	cfg *config.RecommendationConfig
}

// NewDetector creates a market context detector
func NewDetector(cfg *config.RecommendationConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect reads movement signals out of the latest odds record plus the
// latest sharp and square book records. sharp and square may be nil when a
// book has not posted the market.
func (d *Detector) Detect(kind models.MarketKind, latest, sharp, square *models.MarketOdds) MarketContext {
	moveThreshold := d.cfg.SpreadMoveThreshold
	steamThreshold := d.cfg.SpreadSteamThreshold
	divergence := d.cfg.SpreadDivergence
	if !kind.IsSpread() {
		moveThreshold = d.cfg.TotalMoveThreshold
		steamThreshold = d.cfg.TotalSteamThreshold
		divergence = d.cfg.TotalDivergence
	}

	mc := MarketContext{LineMove: latest.LineMove()}

	if math.Abs(mc.LineMove) >= moveThreshold {
		mc.SharpSide = sideFavoredByMove(kind, mc.LineMove)
	}
	if math.Abs(mc.LineMove) >= steamThreshold {
		mc.SteamSide = mc.SharpSide
	}

	// Reverse line movement: the public piles on one side and the line
	// moves the other way anyway. Books only do that for sharp money.
	if public := publicSide(kind, latest.PublicBetPct, d.cfg.PublicBetThreshold); public != "" {
		if mc.SharpSide != "" && mc.SharpSide != public {
			mc.RLMSide = mc.SharpSide
		}
	}

	if sharp != nil && square != nil && math.Abs(sharp.Line-square.Line) >= divergence {
		mc.SharpSquareDiverge = true
	}

	return mc
}

// sideFavoredByMove maps a signed line move to the side money is pushing.
// Spread lines are quoted on the home team, so a drop means home money;
// totals rising means over money.
func sideFavoredByMove(kind models.MarketKind, move float64) models.Side {
	if kind.IsSpread() {
		if move < 0 {
			return models.SideHome
		}
		return models.SideAway
	}
	if move > 0 {
		return models.SideOver
	}
	return models.SideUnder
}

// publicSide maps a public bet percentage (home/over share) to the side the
// public is loaded on, empty when the split is not lopsided enough.
func publicSide(kind models.MarketKind, pct *float64, threshold float64) models.Side {
	if pct == nil {
		return ""
	}
	heavy := *pct >= threshold
	light := *pct <= 1.0-threshold
	if !heavy && !light {
		return ""
	}
	if kind.IsSpread() {
		if heavy {
			return models.SideHome
		}
		return models.SideAway
	}
	if heavy {
		return models.SideOver
	}
	return models.SideUnder
}
