package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side identifies which side of a market a price or pick refers to
type Side string

const (
	SideHome  Side = "home"
	SideAway  Side = "away"
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// MarketOdds represents one dated odds record for a (game, market, period,
// bookmaker). Records are append-only; the engine reads the latest one.
// Prices are American odds. A record is only usable when both sides carry an
// explicit price; no implicit default is ever substituted.
type MarketOdds struct {
	ID           uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	GameID       uuid.UUID  `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Market       MarketType `db:"market" json:"market" validate:"required,oneof=spread total moneyline"`
	Period       Period     `db:"period" json:"period" validate:"required,oneof=full 1h"`
	Bookmaker    string     `db:"bookmaker" json:"bookmaker" validate:"required"`
	Line         float64    `db:"line" json:"line"`
	HomePrice    *int       `db:"home_price" json:"home_price"`
	AwayPrice    *int       `db:"away_price" json:"away_price"`
	OverPrice    *int       `db:"over_price" json:"over_price"`
	UnderPrice   *int       `db:"under_price" json:"under_price"`
	OpenLine     *float64   `db:"open_line" json:"open_line"`
	PublicBetPct *float64   `db:"public_bet_pct" json:"public_bet_pct"`
	FetchedAt    time.Time  `db:"fetched_at" json:"fetched_at" validate:"required"`
}

// HasBothPrices reports whether both sides of the market carry explicit prices
func (o *MarketOdds) HasBothPrices() bool {
	if o.Market == MarketTotal {
		return o.OverPrice != nil && o.UnderPrice != nil
	}
	return o.HomePrice != nil && o.AwayPrice != nil
}

// IsFresh reports whether the record is no older than maxAge at asOf
func (o *MarketOdds) IsFresh(asOf time.Time, maxAge time.Duration) bool {
	return asOf.Sub(o.FetchedAt) <= maxAge
}

// PriceFor returns the American price for a side, or ErrMissingPrice when the
// side was not explicitly priced.
func (o *MarketOdds) PriceFor(side Side) (int, error) {
	var price *int
	switch side {
	case SideHome:
		price = o.HomePrice
	case SideAway:
		price = o.AwayPrice
	case SideOver:
		price = o.OverPrice
	case SideUnder:
		price = o.UnderPrice
	}
	if price == nil {
		return 0, ErrMissingPrice
	}
	if !ValidAmericanPrice(*price) {
		return 0, ErrInvalidPrice
	}
	return *price, nil
}

// ValidAmericanPrice reports whether a price is quotable American odds.
// Books never quote inside (-100, +100).
func ValidAmericanPrice(american int) bool {
	return american <= -100 || american >= 100
}

// LineMove returns the signed move from the opening line, zero when no open
// line was captured.
func (o *MarketOdds) LineMove() float64 {
	if o.OpenLine == nil {
		return 0
	}
	return o.Line - *o.OpenLine
}

// AmericanToDecimal converts an American price to decimal odds. Unquotable
// prices convert to 1, the no-payout stake return.
func AmericanToDecimal(american int) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if !ValidAmericanPrice(american) {
		return one
	}
	hundred := decimal.NewFromInt(100)
	a := decimal.NewFromInt(int64(american))
	if american > 0 {
		return one.Add(a.Div(hundred))
	}
	return one.Add(hundred.Div(a.Abs()))
}

// ImpliedProbability returns the no-vig-free implied probability of an
// American price.
func ImpliedProbability(american int) float64 {
	dec := AmericanToDecimal(american)
	if dec.LessThanOrEqual(decimal.NewFromInt(1)) {
		return 0
	}
	p, _ := decimal.NewFromInt(1).Div(dec).Float64()
	return p
}
