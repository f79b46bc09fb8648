package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetTier grades a recommendation by edge and confidence
type BetTier string

const (
	TierMax      BetTier = "MAX"
	TierMedium   BetTier = "MEDIUM"
	TierStandard BetTier = "STANDARD"
)

// Rank orders tiers for monotonicity checks, higher is stronger
func (t BetTier) Rank() int {
	switch t {
	case TierMax:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

// ContextFlags records the market-context signals that influenced a
// recommendation's confidence.
type ContextFlags struct {
	AgainstSharp        bool `db:"against_sharp" json:"against_sharp"`
	SteamMove           bool `db:"steam_move" json:"steam_move"`
	ReverseLineMovement bool `db:"reverse_line_movement" json:"reverse_line_movement"`
	SharpSquareDiverge  bool `db:"sharp_square_diverge" json:"sharp_square_diverge"`
}

// Recommendation represents one graded, sized bet recommendation. Records are
// immutable; re-runs append new rows under a fresh run ID so the original
// line is preserved for closing-line-value analysis.
type Recommendation struct {
	ID           uuid.UUID    `db:"id" json:"id" validate:"required,uuid4"`
	RunID        uuid.UUID    `db:"run_id" json:"run_id" validate:"required,uuid4"`
	GameID       uuid.UUID    `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Market       MarketKind   `db:"market" json:"market" validate:"required"`
	Pick         Side         `db:"pick" json:"pick" validate:"required,oneof=home away over under"`
	Line         float64      `db:"line" json:"line"`
	Price        int          `db:"price" json:"price"`
	Edge         float64      `db:"edge" json:"edge" validate:"gte=0"`
	Probability  float64      `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	Confidence   float64      `db:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	EVPercent    float64      `db:"ev_percent" json:"ev_percent"`
	KellyFraction float64     `db:"kelly_fraction" json:"kelly_fraction" validate:"gte=0"`
	Units        float64      `db:"units" json:"units" validate:"gte=0"`
	Tier         BetTier      `db:"tier" json:"tier" validate:"required,oneof=MAX MEDIUM STANDARD"`
	Flags        ContextFlags `db:"flags" json:"flags"`
	ClosingLine  *float64     `db:"closing_line" json:"closing_line"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at" validate:"required"`
}

// RoundedUnits returns the stake rounded to two decimal places
func (r *Recommendation) RoundedUnits() float64 {
	units, _ := decimal.NewFromFloat(r.Units).Round(2).Float64()
	return units
}

// ClosingLineValue returns the signed line CLV once the closing line has been
// captured, zero and false before then. Positive means the market moved toward
// the pick after the recommendation.
func (r *Recommendation) ClosingLineValue() (float64, bool) {
	if r.ClosingLine == nil {
		return 0, false
	}
	clv := *r.ClosingLine - r.Line
	switch r.Pick {
	case SideHome, SideUnder:
		clv = -clv
	}
	return clv, true
}
