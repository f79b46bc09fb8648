package models

// MarketType identifies the kind of line a bookmaker posts
type MarketType string

const (
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
	MarketMoneyline MarketType = "moneyline"
)

// Period identifies which portion of the game a line covers
type Period string

const (
	PeriodFullGame  Period = "full"
	PeriodFirstHalf Period = "1h"
)

// MarketKind is the closed set of markets the engine predicts. Each kind
// carries its own calibration constants; dispatch happens through the
// predictor interface, not through string comparison.
type MarketKind string

const (
	MarketKindFGSpread MarketKind = "fg_spread"
	MarketKindFGTotal  MarketKind = "fg_total"
	MarketKindH1Spread MarketKind = "h1_spread"
	MarketKindH1Total  MarketKind = "h1_total"
)

// AllMarketKinds lists the predicted markets in a stable order
func AllMarketKinds() []MarketKind {
	return []MarketKind{MarketKindFGSpread, MarketKindFGTotal, MarketKindH1Spread, MarketKindH1Total}
}

// Type returns the market type the kind maps onto in the odds data
func (k MarketKind) Type() MarketType {
	switch k {
	case MarketKindFGSpread, MarketKindH1Spread:
		return MarketSpread
	default:
		return MarketTotal
	}
}

// Period returns the game period the kind covers
func (k MarketKind) Period() Period {
	switch k {
	case MarketKindH1Spread, MarketKindH1Total:
		return PeriodFirstHalf
	default:
		return PeriodFullGame
	}
}

// IsSpread reports whether the kind is a spread market
func (k MarketKind) IsSpread() bool {
	return k.Type() == MarketSpread
}
