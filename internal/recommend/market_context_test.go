package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

func testDetector() *Detector {
	cfg := config.Defaults().Recommendation
	return NewDetector(&cfg)
}

func movedSpread(open, latest float64) *models.MarketOdds {
	return &models.MarketOdds{
		Market:   models.MarketSpread,
		Period:   models.PeriodFullGame,
		Line:     latest,
		OpenLine: floatPtr(open),
	}
}

// TestDetectQuietMarket tests that a small move produces no signals
func TestDetectQuietMarket(t *testing.T) {
	mc := testDetector().Detect(models.MarketKindFGSpread, movedSpread(-3.5, -3.75), nil, nil)

	assert.InDelta(t, -0.25, mc.LineMove, 1e-9)
	assert.Empty(t, mc.SharpSide)
	assert.Empty(t, mc.SteamSide)
	assert.Empty(t, mc.RLMSide)
	assert.False(t, mc.SharpSquareDiverge)
}

// TestDetectSharpMove tests sharp-side attribution from a spread drop
func TestDetectSharpMove(t *testing.T) {
	mc := testDetector().Detect(models.MarketKindFGSpread, movedSpread(-3.5, -4.25), nil, nil)

	assert.Equal(t, models.SideHome, mc.SharpSide)
	assert.Empty(t, mc.SteamSide, "a 0.75 move is under the steam threshold")
}

// TestDetectSteamMove tests that a large move also flags steam
func TestDetectSteamMove(t *testing.T) {
	mc := testDetector().Detect(models.MarketKindFGSpread, movedSpread(-3.5, -5.0), nil, nil)

	assert.Equal(t, models.SideHome, mc.SharpSide)
	assert.Equal(t, models.SideHome, mc.SteamSide)
}

// TestDetectTotalMove tests the total-market thresholds and side mapping
func TestDetectTotalMove(t *testing.T) {
	latest := &models.MarketOdds{
		Market:   models.MarketTotal,
		Period:   models.PeriodFullGame,
		Line:     147.0,
		OpenLine: floatPtr(145.5),
	}

	mc := testDetector().Detect(models.MarketKindFGTotal, latest, nil, nil)
	assert.Equal(t, models.SideOver, mc.SharpSide)
	assert.Equal(t, models.SideOver, mc.SteamSide)
}

// TestDetectReverseLineMovement tests RLM: public on away, line moving home
func TestDetectReverseLineMovement(t *testing.T) {
	latest := movedSpread(-3.5, -5.0)
	latest.PublicBetPct = floatPtr(0.30)

	mc := testDetector().Detect(models.MarketKindFGSpread, latest, nil, nil)
	assert.Equal(t, models.SideHome, mc.RLMSide)
}

// TestDetectNoRLMWhenAligned tests that sharp and public on the same side is
// not reverse movement
func TestDetectNoRLMWhenAligned(t *testing.T) {
	latest := movedSpread(-3.5, -5.0)
	latest.PublicBetPct = floatPtr(0.70)

	mc := testDetector().Detect(models.MarketKindFGSpread, latest, nil, nil)
	assert.Empty(t, mc.RLMSide)
}

// TestDetectSharpSquareDivergence tests book divergence detection and the
// nil-book guard
func TestDetectSharpSquareDivergence(t *testing.T) {
	latest := movedSpread(-3.5, -3.5)
	sharp := movedSpread(-5.0, -5.0)
	square := movedSpread(-4.0, -4.0)

	mc := testDetector().Detect(models.MarketKindFGSpread, latest, sharp, square)
	assert.True(t, mc.SharpSquareDiverge)

	mc = testDetector().Detect(models.MarketKindFGSpread, latest, sharp, nil)
	assert.False(t, mc.SharpSquareDiverge)
}
