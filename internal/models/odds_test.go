package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// TestAmericanToDecimal tests American price conversion for both signs
func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		american int
		decimal  float64
	}{
		{-110, 1.9090909090909092},
		{+150, 2.5},
		{-200, 1.5},
		{+100, 2.0},
	}

	for _, tt := range tests {
		got, _ := AmericanToDecimal(tt.american).Float64()
		assert.InDelta(t, tt.decimal, got, 1e-9, "american %d", tt.american)
	}
}

// TestAmericanToDecimalUnquotable tests that prices inside the unquotable
// band convert to the no-payout return instead of panicking
func TestAmericanToDecimalUnquotable(t *testing.T) {
	for _, american := range []int{0, 50, -50, 99, -99} {
		got, _ := AmericanToDecimal(american).Float64()
		assert.InDelta(t, 1.0, got, 1e-9, "american %d", american)
	}
}

// TestValidAmericanPrice tests the quotable price band
func TestValidAmericanPrice(t *testing.T) {
	assert.True(t, ValidAmericanPrice(-110))
	assert.True(t, ValidAmericanPrice(+100))
	assert.True(t, ValidAmericanPrice(-100))
	assert.False(t, ValidAmericanPrice(0))
	assert.False(t, ValidAmericanPrice(99))
	assert.False(t, ValidAmericanPrice(-99))
}

// TestImpliedProbability tests implied probability from American prices
func TestImpliedProbability(t *testing.T) {
	assert.InDelta(t, 0.5238, ImpliedProbability(-110), 1e-3)
	assert.InDelta(t, 0.4, ImpliedProbability(+150), 1e-9)
	assert.InDelta(t, 0.5, ImpliedProbability(+100), 1e-9)
	assert.Zero(t, ImpliedProbability(0))
}

// TestPriceForMissingPrice tests that an unpriced side surfaces the sentinel
func TestPriceForMissingPrice(t *testing.T) {
	odds := &MarketOdds{
		Market:    MarketSpread,
		HomePrice: intPtr(-110),
	}

	price, err := odds.PriceFor(SideHome)
	require.NoError(t, err)
	assert.Equal(t, -110, price)

	_, err = odds.PriceFor(SideAway)
	assert.ErrorIs(t, err, ErrMissingPrice)
}

// TestPriceForInvalidPrice tests that a corrupt quoted price surfaces the
// sentinel rather than flowing into EV math
func TestPriceForInvalidPrice(t *testing.T) {
	odds := &MarketOdds{
		Market:    MarketSpread,
		HomePrice: intPtr(50),
	}

	_, err := odds.PriceFor(SideHome)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

// TestHasBothPrices tests the two-sided price requirement per market type
func TestHasBothPrices(t *testing.T) {
	spread := &MarketOdds{Market: MarketSpread, HomePrice: intPtr(-110), AwayPrice: intPtr(-110)}
	assert.True(t, spread.HasBothPrices())

	spread.AwayPrice = nil
	assert.False(t, spread.HasBothPrices())

	total := &MarketOdds{Market: MarketTotal, OverPrice: intPtr(-105), UnderPrice: intPtr(-115)}
	assert.True(t, total.HasBothPrices())

	total.OverPrice = nil
	assert.False(t, total.HasBothPrices())
}

// TestIsFresh tests the odds freshness window
func TestIsFresh(t *testing.T) {
	now := time.Now()
	odds := &MarketOdds{FetchedAt: now.Add(-10 * time.Minute)}

	assert.True(t, odds.IsFresh(now, 60*time.Minute))

	odds.FetchedAt = now.Add(-75 * time.Minute)
	assert.False(t, odds.IsFresh(now, 60*time.Minute))
}

// TestLineMove tests the signed move from the opening line
func TestLineMove(t *testing.T) {
	odds := &MarketOdds{Line: -4.5, OpenLine: floatPtr(-3.5)}
	assert.InDelta(t, -1.0, odds.LineMove(), 1e-9)

	odds.OpenLine = nil
	assert.Zero(t, odds.LineMove())
}
