package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/gate"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/predictor"
	"github.com/yourusername/courtside/internal/recommend"
	"github.com/yourusername/courtside/internal/repository"
)

type fakeRatingsRepo struct {
	byTeam map[string]*models.TeamRatings
}

func (f *fakeRatingsRepo) GetLatestForTeam(_ context.Context, team string, _ time.Time) (*models.TeamRatings, error) {
	r, ok := f.byTeam[team]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r, nil
}

func (f *fakeRatingsRepo) GetByID(context.Context, uuid.UUID) (*models.TeamRatings, error) {
	return nil, models.ErrNotFound
}

func (f *fakeRatingsRepo) InsertBatch(context.Context, []*models.TeamRatings) error { return nil }

type fakeGameRepo struct {
	games []*models.Game
}

func (f *fakeGameRepo) Create(context.Context, *models.Game) error { return nil }

func (f *fakeGameRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Game, error) {
	for _, g := range f.games {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeGameRepo) GetByDate(context.Context, time.Time) ([]*models.Game, error) {
	return f.games, nil
}

func (f *fakeGameRepo) GetLastPlayed(context.Context, string, time.Time) (*models.Game, error) {
	return nil, models.ErrNotFound
}

func (f *fakeGameRepo) SetFinal(context.Context, uuid.UUID, int, int, int, int) error { return nil }

type oddsKey struct {
	market models.MarketType
	period models.Period
}

type fakeOddsRepo struct {
	byMarket map[oddsKey]*models.MarketOdds
}

func (f *fakeOddsRepo) Insert(context.Context, *models.MarketOdds) error        { return nil }
func (f *fakeOddsRepo) InsertBatch(context.Context, []*models.MarketOdds) error { return nil }

func (f *fakeOddsRepo) GetLatest(_ context.Context, _ uuid.UUID, market models.MarketType, period models.Period, _ []string) (*models.MarketOdds, error) {
	rec, ok := f.byMarket[oddsKey{market, period}]
	if !ok {
		return nil, models.ErrNotFound
	}
	return rec, nil
}

func (f *fakeOddsRepo) GetLatestByBookmaker(context.Context, uuid.UUID, models.MarketType, models.Period, string) (*models.MarketOdds, error) {
	return nil, models.ErrNotFound
}

func (f *fakeOddsRepo) GetHistory(context.Context, uuid.UUID, models.MarketType, models.Period, time.Time, time.Time) ([]*models.MarketOdds, error) {
	return nil, nil
}

type fakePredictionRepo struct {
	inserted []*models.Prediction
}

func (f *fakePredictionRepo) InsertBatch(_ context.Context, preds []*models.Prediction) error {
	f.inserted = append(f.inserted, preds...)
	return nil
}

func (f *fakePredictionRepo) GetByRunID(context.Context, uuid.UUID) ([]*models.Prediction, error) {
	return nil, nil
}

func (f *fakePredictionRepo) GetByGameID(context.Context, uuid.UUID) ([]*models.Prediction, error) {
	return nil, nil
}

type fakeRecommendationRepo struct {
	inserted []*models.Recommendation
}

func (f *fakeRecommendationRepo) Insert(_ context.Context, rec *models.Recommendation) error {
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeRecommendationRepo) GetByRunID(context.Context, uuid.UUID) ([]*models.Recommendation, error) {
	return nil, nil
}

func (f *fakeRecommendationRepo) GetAwaitingClosingLine(context.Context, time.Time) ([]*models.Recommendation, error) {
	return nil, nil
}

func (f *fakeRecommendationRepo) SetClosingLine(context.Context, uuid.UUID, float64) error {
	return nil
}

func (f *fakeRecommendationRepo) GetGradedSample(context.Context, models.MarketKind, int) (int, int, error) {
	return 0, 0, nil
}

type fakeAuditRepo struct {
	resolved int64
	total    int64
}

func (f *fakeAuditRepo) Insert(context.Context, *models.ResolutionAudit) error { return nil }

func (f *fakeAuditRepo) GetResolutionRate(context.Context, time.Time) (int64, int64, error) {
	return f.resolved, f.total, nil
}

func engineRatings(adjO, adjD, efg float64, rank int) *models.TeamRatings {
	f := func(v float64) *float64 { return &v }
	return &models.TeamRatings{
		ID: uuid.New(), RatingDate: time.Now(),
		AdjO: f(adjO), AdjD: f(adjD), Tempo: f(68.0), Rank: &rank,
		EFG: f(efg), EFGD: f(48.0), TOR: f(18.0), TORD: f(18.0),
		ORB: f(29.0), DRB: f(71.0), FTR: f(33.0), FTRD: f(33.0),
		TwoPtPct: f(52.0), TwoPtPctD: f(47.0), ThreePtPct: f(35.0), ThreePtPctD: f(32.0),
		ThreePtRate: f(35.0), ThreePtRateD: f(34.0), Barthag: f(0.90), WAB: f(3.0),
	}
}

func intPtr(v int) *int { return &v }

func marketLines(now time.Time) map[oddsKey]*models.MarketOdds {
	rec := func(market models.MarketType, period models.Period, line float64) *models.MarketOdds {
		o := &models.MarketOdds{
			ID: uuid.New(), Market: market, Period: period,
			Bookmaker: "pinnacle", Line: line, FetchedAt: now,
		}
		if market == models.MarketTotal {
			o.OverPrice = intPtr(-110)
			o.UnderPrice = intPtr(-110)
		} else {
			o.HomePrice = intPtr(-110)
			o.AwayPrice = intPtr(-110)
		}
		return o
	}
	return map[oddsKey]*models.MarketOdds{
		{models.MarketSpread, models.PeriodFullGame}:  rec(models.MarketSpread, models.PeriodFullGame, -3.5),
		{models.MarketTotal, models.PeriodFullGame}:   rec(models.MarketTotal, models.PeriodFullGame, 145.5),
		{models.MarketSpread, models.PeriodFirstHalf}: rec(models.MarketSpread, models.PeriodFirstHalf, -2.5),
		{models.MarketTotal, models.PeriodFirstHalf}:  rec(models.MarketTotal, models.PeriodFirstHalf, 61.5),
	}
}

type testHarness struct {
	runner          *Runner
	predictions     *fakePredictionRepo
	recommendations *fakeRecommendationRepo
}

func newTestHarness(t *testing.T, games []*models.Game, audits *fakeAuditRepo) *testHarness {
	t.Helper()

	cfg := config.Defaults()
	cfg.Database.Password = "test"
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	ratings := &fakeRatingsRepo{byTeam: map[string]*models.TeamRatings{
		"Duke": engineRatings(118.0, 94.0, 54.0, 10),
		"UNC":  engineRatings(112.0, 96.0, 52.0, 40),
	}}
	odds := &fakeOddsRepo{byMarket: marketLines(time.Now())}
	predictions := &fakePredictionRepo{}
	recommendations := &fakeRecommendationRepo{}

	repos := &repository.Repositories{
		Ratings:         ratings,
		Game:            &fakeGameRepo{games: games},
		Odds:            odds,
		Prediction:      predictions,
		Recommendation:  recommendations,
		ResolutionAudit: audits,
	}

	params := model.NewParams(cfg.Engine.LeagueAverages)
	qualityGate := gate.NewGate(ratings, odds, audits, &cfg.Gate, log)
	recommender := recommend.NewEngine(&cfg.Recommendation, recommend.NewCDFSource(cfg.Recommendation.ZScoreCap), recommendations, log)
	detector := recommend.NewDetector(&cfg.Recommendation)

	return &testHarness{
		runner:          NewRunner(cfg, repos, qualityGate, predictor.All(&cfg.Markets, params), recommender, detector, log),
		predictions:     predictions,
		recommendations: recommendations,
	}
}

func scheduledGame() *models.Game {
	return &models.Game{
		ID: uuid.New(), HomeTeam: "Duke", AwayTeam: "UNC",
		Tipoff: time.Now().Add(3 * time.Hour), Status: models.GameStatusScheduled,
	}
}

// TestRunBlockedByResolutionRate tests that a corrupted upstream blocks the
// whole run before any game work
func TestRunBlockedByResolutionRate(t *testing.T) {
	h := newTestHarness(t, []*models.Game{scheduledGame()}, &fakeAuditRepo{resolved: 95, total: 100})

	report, err := h.runner.Run(context.Background(), time.Now())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, models.ErrResolutionRate)
	assert.Empty(t, h.predictions.inserted)
}

// TestRunPredictsAllMarkets tests that one usable game produces a prediction
// row per market, all under the run's ID
func TestRunPredictsAllMarkets(t *testing.T) {
	h := newTestHarness(t, []*models.Game{scheduledGame()}, &fakeAuditRepo{resolved: 100, total: 100})

	report, err := h.runner.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalGames)
	assert.Equal(t, 4, report.Predicted)
	assert.Zero(t, report.NoPrediction)
	assert.Empty(t, report.Skipped)

	require.Len(t, h.predictions.inserted, 4)
	seen := make(map[models.MarketKind]bool)
	for _, p := range h.predictions.inserted {
		assert.Equal(t, report.RunID, p.RunID)
		assert.Equal(t, "v33", p.ModelVersion)
		seen[p.Market] = true
	}
	assert.Len(t, seen, 4)

	assert.Equal(t, report.Recommended, len(h.recommendations.inserted))
	total := report.Recommended
	for _, n := range report.Rejected {
		total += n
	}
	assert.Equal(t, 4, total, "every market lands in exactly one terminal state")
}

// TestRunRerunIsAppendOnly tests that re-running a date produces a fresh run
// ID with numerically identical predictions
func TestRunRerunIsAppendOnly(t *testing.T) {
	h := newTestHarness(t, []*models.Game{scheduledGame()}, &fakeAuditRepo{})

	first, err := h.runner.Run(context.Background(), time.Now())
	require.NoError(t, err)
	second, err := h.runner.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	require.Len(t, h.predictions.inserted, 8)

	firstValues := make(map[models.MarketKind]float64)
	for _, p := range h.predictions.inserted[:4] {
		firstValues[p.Market] = p.Value
	}
	for _, p := range h.predictions.inserted[4:] {
		assert.InDelta(t, firstValues[p.Market], p.Value, 1e-12, "market %s", p.Market)
	}
}

// TestRunSkipAccounting tests that a game with missing ratings lands in the
// skip report without aborting the run
func TestRunSkipAccounting(t *testing.T) {
	good := scheduledGame()
	bad := &models.Game{
		ID: uuid.New(), HomeTeam: "Duke", AwayTeam: "Nowhere State",
		Tipoff: time.Now().Add(3 * time.Hour), Status: models.GameStatusScheduled,
	}
	h := newTestHarness(t, []*models.Game{good, bad}, &fakeAuditRepo{})

	report, err := h.runner.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalGames)
	assert.Equal(t, 4, report.Predicted)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, gate.ReasonMissingRatings, report.Skipped[0].Reason)
	assert.Equal(t, bad.ID, report.Skipped[0].Game.ID)
}
