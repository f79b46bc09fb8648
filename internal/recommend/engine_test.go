package recommend

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testRatings(rank int, barthag, tempo float64) *models.TeamRatings {
	f := func(v float64) *float64 { return &v }
	return &models.TeamRatings{
		AdjO: f(112.0), AdjD: f(95.0), Tempo: f(tempo), Rank: &rank,
		Barthag: f(barthag),
	}
}

func spreadOdds(line float64) *models.MarketOdds {
	return &models.MarketOdds{
		ID:        uuid.New(),
		Market:    models.MarketSpread,
		Period:    models.PeriodFullGame,
		Line:      line,
		HomePrice: intPtr(-110),
		AwayPrice: intPtr(-110),
		FetchedAt: time.Now(),
	}
}

func spreadCandidate(value, line float64) Candidate {
	return Candidate{
		Game:     &models.Game{ID: uuid.New(), HomeTeam: "Duke", AwayTeam: "UNC"},
		RunID:    uuid.New(),
		Kind:     models.MarketKindFGSpread,
		Value:    value,
		BaseConf: 0.75,
		Sigma:    10.0,
		MinEdge:  2.0,
		StdError: 10.57,
		Odds:     spreadOdds(line),
		Home:     testRatings(10, 0.95, 67.0),
		Away:     testRatings(40, 0.90, 66.0),
	}
}

func testEngine(grades GradedSampleSource) (*Engine, *config.RecommendationConfig) {
	cfg := config.Defaults().Recommendation
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(&cfg, NewCDFSource(cfg.ZScoreCap), grades, log), &cfg
}

// TestRecommendEdgeGate tests rejection when the edge is under the market
// minimum
func TestRecommendEdgeGate(t *testing.T) {
	e, _ := testEngine(nil)

	rec, reason, err := e.Recommend(context.Background(), spreadCandidate(-4.5, -3.5))
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, RejectEdge, reason)
}

// TestRecommendHomeSpread tests the full path for a home spread pick
func TestRecommendHomeSpread(t *testing.T) {
	e, cfg := testEngine(nil)

	rec, reason, err := e.Recommend(context.Background(), spreadCandidate(-8.5, -3.5))
	require.NoError(t, err)
	require.NotNil(t, rec, "unexpected rejection: %s", reason)

	assert.Equal(t, models.SideHome, rec.Pick)
	assert.InDelta(t, 5.0, rec.Edge, 1e-9)
	assert.Equal(t, -110, rec.Price)
	assert.Equal(t, models.TierMedium, rec.Tier)
	assert.Greater(t, rec.Probability, 0.5)
	assert.LessOrEqual(t, rec.Probability, cfg.ProbabilityCeiling)
	assert.Positive(t, rec.EVPercent)
	assert.Positive(t, rec.Units)
	assert.LessOrEqual(t, rec.Units, cfg.MaxUnits)
	assert.NotEqual(t, uuid.Nil, rec.ID)
}

// TestRecommendAwaySpread tests the side mapping when the model likes the dog
func TestRecommendAwaySpread(t *testing.T) {
	e, _ := testEngine(nil)

	rec, reason, err := e.Recommend(context.Background(), spreadCandidate(1.5, -3.5))
	require.NoError(t, err)
	require.NotNil(t, rec, "unexpected rejection: %s", reason)
	assert.Equal(t, models.SideAway, rec.Pick)
}

// TestRecommendEVGate tests rejection when the price eats the whole edge
func TestRecommendEVGate(t *testing.T) {
	e, _ := testEngine(nil)

	c := spreadCandidate(-8.5, -3.5)
	c.Odds.HomePrice = intPtr(-2000)

	rec, reason, err := e.Recommend(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, RejectEV, reason)
}

// TestRecommendConfidenceGate tests rejection when context signals crush an
// already weak prediction
func TestRecommendConfidenceGate(t *testing.T) {
	e, _ := testEngine(nil)

	c := spreadCandidate(-8.5, -3.5)
	c.BaseConf = 0.30
	c.Home = testRatings(300, 0.60, 60.0)
	c.Away = testRatings(320, 0.95, 70.0)
	c.Context = MarketContext{SharpSide: models.SideAway, SteamSide: models.SideAway}

	rec, reason, err := e.Recommend(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, RejectConfidence, reason)
}

// TestRecommendMissingPrice tests that an unpriced pick side is an error,
// not a silent default
func TestRecommendMissingPrice(t *testing.T) {
	e, _ := testEngine(nil)

	c := spreadCandidate(1.5, -3.5)
	c.Odds.AwayPrice = nil

	rec, _, err := e.Recommend(context.Background(), c)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, models.ErrMissingPrice)
}

// TestRecommendUnitsCap tests that sizing saturates at the unit ceiling
func TestRecommendUnitsCap(t *testing.T) {
	cfg := config.Defaults().Recommendation
	cfg.MaxUnits = 1.0
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	e := NewEngine(&cfg, NewCDFSource(cfg.ZScoreCap), nil, log)

	c := spreadCandidate(-23.5, -3.5)
	c.Odds.HomePrice = intPtr(+150)

	rec, reason, err := e.Recommend(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, rec, "unexpected rejection: %s", reason)
	assert.InDelta(t, 1.0, rec.Units, 1e-9)
}

// TestRecommendProbabilityMonotonic tests that a larger edge never yields a
// smaller cover probability when everything else is held fixed
func TestRecommendProbabilityMonotonic(t *testing.T) {
	e, _ := testEngine(nil)

	values := []float64{-6.0, -7.5, -9.5, -13.5, -25.5}

	prev := 0.0
	for _, value := range values {
		rec, reason, err := e.Recommend(context.Background(), spreadCandidate(value, -3.5))
		require.NoError(t, err)
		require.NotNil(t, rec, "value %.1f: unexpected rejection: %s", value, reason)

		assert.GreaterOrEqual(t, rec.Probability, prev, "value %.1f", value)
		prev = rec.Probability
	}
}

// TestRecommendUnitsRounded tests that the persisted stake carries at most
// two decimal places
func TestRecommendUnitsRounded(t *testing.T) {
	e, cfg := testEngine(nil)

	rec, reason, err := e.Recommend(context.Background(), spreadCandidate(-8.5, -3.5))
	require.NoError(t, err)
	require.NotNil(t, rec, "unexpected rejection: %s", reason)

	assert.Positive(t, rec.Units)
	assert.LessOrEqual(t, rec.Units, cfg.MaxUnits)
	assert.InDelta(t, math.Round(rec.Units*100)/100, rec.Units, 1e-12)
}

// TestRecommendContextFlags tests that the emitted recommendation carries
// its market-context flags
func TestRecommendContextFlags(t *testing.T) {
	e, _ := testEngine(nil)

	c := spreadCandidate(-8.5, -3.5)
	c.Context = MarketContext{
		SharpSide:          models.SideHome,
		SteamSide:          models.SideHome,
		RLMSide:            models.SideHome,
		SharpSquareDiverge: true,
	}

	rec, reason, err := e.Recommend(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, rec, "unexpected rejection: %s", reason)

	assert.True(t, rec.Flags.SteamMove)
	assert.True(t, rec.Flags.ReverseLineMovement)
	assert.True(t, rec.Flags.SharpSquareDiverge)
	assert.False(t, rec.Flags.AgainstSharp)
}

type fakeGrades struct {
	wins  int
	total int
	err   error
}

func (f *fakeGrades) GetGradedSample(context.Context, models.MarketKind, int) (int, int, error) {
	return f.wins, f.total, f.err
}

// TestRecommendBayesianBlend tests that a cold graded history drags the
// probability down relative to no history
func TestRecommendBayesianBlend(t *testing.T) {
	withoutHistory, _ := testEngine(nil)
	withHistory, _ := testEngine(&fakeGrades{wins: 40, total: 100})

	c := spreadCandidate(-8.5, -3.5)

	plain, _, err := withoutHistory.Recommend(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, plain)

	blended, reason, err := withHistory.Recommend(context.Background(), c)
	require.NoError(t, err)
	if blended == nil {
		// A 40% hit rate can push the EV negative, which is also a
		// correct outcome of the blend.
		assert.Equal(t, RejectEV, reason)
		return
	}
	assert.Less(t, blended.Probability, plain.Probability)
}

// TestTierFor tests tier grading by edge and confidence
func TestTierFor(t *testing.T) {
	e, _ := testEngine(nil)

	assert.Equal(t, models.TierMax, e.tierFor(5.5, 0.80))
	assert.Equal(t, models.TierMedium, e.tierFor(5.5, 0.72))
	assert.Equal(t, models.TierMedium, e.tierFor(3.5, 0.71))
	assert.Equal(t, models.TierStandard, e.tierFor(2.5, 0.90))
	assert.Equal(t, models.TierStandard, e.tierFor(6.0, 0.60))
}

// TestPickSide tests the discrepancy-to-side mapping for both market types
func TestPickSide(t *testing.T) {
	assert.Equal(t, models.SideHome, pickSide(models.MarketKindFGSpread, -8.5, -3.5))
	assert.Equal(t, models.SideAway, pickSide(models.MarketKindFGSpread, 1.5, -3.5))
	assert.Equal(t, models.SideOver, pickSide(models.MarketKindFGTotal, 150.0, 145.5))
	assert.Equal(t, models.SideUnder, pickSide(models.MarketKindH1Total, 62.0, 66.5))
}
