package gate

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/models"
)

type fakeRatings struct {
	byTeam map[string]*models.TeamRatings
}

func (f *fakeRatings) GetLatestForTeam(_ context.Context, team string, _ time.Time) (*models.TeamRatings, error) {
	r, ok := f.byTeam[team]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r, nil
}

type oddsKey struct {
	market models.MarketType
	period models.Period
}

type fakeOdds struct {
	byMarket map[oddsKey]*models.MarketOdds
}

func (f *fakeOdds) Insert(context.Context, *models.MarketOdds) error        { return nil }
func (f *fakeOdds) InsertBatch(context.Context, []*models.MarketOdds) error { return nil }

func (f *fakeOdds) GetLatest(_ context.Context, _ uuid.UUID, market models.MarketType, period models.Period, _ []string) (*models.MarketOdds, error) {
	rec, ok := f.byMarket[oddsKey{market, period}]
	if !ok {
		return nil, models.ErrNotFound
	}
	return rec, nil
}

func (f *fakeOdds) GetLatestByBookmaker(_ context.Context, _ uuid.UUID, market models.MarketType, period models.Period, _ string) (*models.MarketOdds, error) {
	return f.GetLatest(nil, uuid.Nil, market, period, nil)
}

func (f *fakeOdds) GetHistory(context.Context, uuid.UUID, models.MarketType, models.Period, time.Time, time.Time) ([]*models.MarketOdds, error) {
	return nil, nil
}

type fakeAudits struct {
	resolved int64
	total    int64
}

func (f *fakeAudits) Insert(context.Context, *models.ResolutionAudit) error { return nil }

func (f *fakeAudits) GetResolutionRate(context.Context, time.Time) (int64, int64, error) {
	return f.resolved, f.total, nil
}

func intPtr(v int) *int { return &v }

func completeRatings(team string) *models.TeamRatings {
	f := func(v float64) *float64 { return &v }
	rank := 15
	return &models.TeamRatings{
		ID: uuid.New(), TeamName: team, RatingDate: time.Now(),
		AdjO: f(115.0), AdjD: f(92.0), Tempo: f(67.0), Rank: &rank,
		EFG: f(52.0), EFGD: f(48.0), TOR: f(17.0), TORD: f(19.0),
		ORB: f(30.0), DRB: f(72.0), FTR: f(33.0), FTRD: f(30.0),
		TwoPtPct: f(52.0), TwoPtPctD: f(47.0), ThreePtPct: f(35.0), ThreePtPctD: f(32.0),
		ThreePtRate: f(37.0), ThreePtRateD: f(35.0), Barthag: f(0.88), WAB: f(4.0),
	}
}

func freshOdds(now time.Time) map[oddsKey]*models.MarketOdds {
	rec := func(market models.MarketType, period models.Period) *models.MarketOdds {
		o := &models.MarketOdds{
			ID: uuid.New(), Market: market, Period: period,
			Bookmaker: "pinnacle", Line: -3.5, FetchedAt: now.Add(-10 * time.Minute),
		}
		if market == models.MarketTotal {
			o.Line = 145.5
			o.OverPrice = intPtr(-110)
			o.UnderPrice = intPtr(-110)
		} else {
			o.HomePrice = intPtr(-110)
			o.AwayPrice = intPtr(-110)
		}
		return o
	}
	return map[oddsKey]*models.MarketOdds{
		{models.MarketSpread, models.PeriodFullGame}:  rec(models.MarketSpread, models.PeriodFullGame),
		{models.MarketTotal, models.PeriodFullGame}:   rec(models.MarketTotal, models.PeriodFullGame),
		{models.MarketSpread, models.PeriodFirstHalf}: rec(models.MarketSpread, models.PeriodFirstHalf),
		{models.MarketTotal, models.PeriodFirstHalf}:  rec(models.MarketTotal, models.PeriodFirstHalf),
	}
}

func testGame() *models.Game {
	return &models.Game{
		ID: uuid.New(), HomeTeam: "Duke", AwayTeam: "UNC",
		Tipoff: time.Now().Add(2 * time.Hour), Status: models.GameStatusScheduled,
	}
}

func newTestGate(ratings *fakeRatings, odds *fakeOdds, audits *fakeAudits) *Gate {
	cfg := &config.Config{}
	*cfg = *config.Defaults()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewGate(ratings, odds, audits, &cfg.Gate, log)
}

// TestCanRunBelowThreshold tests that a bad resolution rate blocks the run
func TestCanRunBelowThreshold(t *testing.T) {
	g := newTestGate(&fakeRatings{}, &fakeOdds{}, &fakeAudits{resolved: 90, total: 100})

	ok, rate, err := g.CanRun(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.InDelta(t, 0.90, rate, 1e-9)
}

// TestCanRunNoLookups tests that an empty audit window allows the run
func TestCanRunNoLookups(t *testing.T) {
	g := newTestGate(&fakeRatings{}, &fakeOdds{}, &fakeAudits{})

	ok, rate, err := g.CanRun(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, rate, 1e-9)
}

// TestFilterGamesUsable tests the happy path through the gate
func TestFilterGamesUsable(t *testing.T) {
	now := time.Now()
	ratings := &fakeRatings{byTeam: map[string]*models.TeamRatings{
		"Duke": completeRatings("Duke"),
		"UNC":  completeRatings("UNC"),
	}}
	g := newTestGate(ratings, &fakeOdds{byMarket: freshOdds(now)}, &fakeAudits{resolved: 100, total: 100})

	usable, skipped, err := g.FilterGames(context.Background(), []*models.Game{testGame()}, now)
	require.NoError(t, err)
	assert.Len(t, usable, 1)
	assert.Empty(t, skipped)
	assert.Len(t, usable[0].Odds, 4)
}

// TestFilterGamesIncompleteRatings tests that a nulled ratings field skips the
// whole game with no prediction for any market
func TestFilterGamesIncompleteRatings(t *testing.T) {
	now := time.Now()
	unc := completeRatings("UNC")
	unc.EFG = nil
	ratings := &fakeRatings{byTeam: map[string]*models.TeamRatings{
		"Duke": completeRatings("Duke"),
		"UNC":  unc,
	}}
	g := newTestGate(ratings, &fakeOdds{byMarket: freshOdds(now)}, &fakeAudits{})

	usable, skipped, err := g.FilterGames(context.Background(), []*models.Game{testGame()}, now)
	require.NoError(t, err)
	assert.Empty(t, usable)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonIncompleteRatings, skipped[0].Reason)
	assert.Contains(t, skipped[0].Detail, "efg")
}

// TestFilterGamesStaleOdds tests that odds older than the freshness limit
// skip the game regardless of ratings completeness
func TestFilterGamesStaleOdds(t *testing.T) {
	now := time.Now()
	odds := freshOdds(now)
	for _, rec := range odds {
		rec.FetchedAt = now.Add(-75 * time.Minute)
	}
	ratings := &fakeRatings{byTeam: map[string]*models.TeamRatings{
		"Duke": completeRatings("Duke"),
		"UNC":  completeRatings("UNC"),
	}}
	g := newTestGate(ratings, &fakeOdds{byMarket: odds}, &fakeAudits{})

	usable, skipped, err := g.FilterGames(context.Background(), []*models.Game{testGame()}, now)
	require.NoError(t, err)
	assert.Empty(t, usable)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonStaleOdds, skipped[0].Reason)
}

// TestFilterGamesOneSidedOdds tests that a missing price on one side skips
// the game, never substituting a default
func TestFilterGamesOneSidedOdds(t *testing.T) {
	now := time.Now()
	odds := freshOdds(now)
	odds[oddsKey{models.MarketSpread, models.PeriodFullGame}].AwayPrice = nil

	ratings := &fakeRatings{byTeam: map[string]*models.TeamRatings{
		"Duke": completeRatings("Duke"),
		"UNC":  completeRatings("UNC"),
	}}
	g := newTestGate(ratings, &fakeOdds{byMarket: odds}, &fakeAudits{})

	usable, skipped, err := g.FilterGames(context.Background(), []*models.Game{testGame()}, now)
	require.NoError(t, err)
	assert.Empty(t, usable)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonIncompleteOdds, skipped[0].Reason)
}

// TestFilterGamesMissingRatings tests the missing-snapshot skip reason
func TestFilterGamesMissingRatings(t *testing.T) {
	now := time.Now()
	ratings := &fakeRatings{byTeam: map[string]*models.TeamRatings{
		"Duke": completeRatings("Duke"),
	}}
	g := newTestGate(ratings, &fakeOdds{byMarket: freshOdds(now)}, &fakeAudits{})

	usable, skipped, err := g.FilterGames(context.Background(), []*models.Game{testGame()}, now)
	require.NoError(t, err)
	assert.Empty(t, usable)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonMissingRatings, skipped[0].Reason)
	assert.Equal(t, "UNC", skipped[0].Detail)
}
