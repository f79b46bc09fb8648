// Package engine orchestrates prediction runs: gate, fan-out across games
// and markets, recommendation grading, and append-only persistence.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/gate"
	"github.com/yourusername/courtside/internal/logger"
	"github.com/yourusername/courtside/internal/metrics"
	"github.com/yourusername/courtside/internal/models"
	"github.com/yourusername/courtside/internal/predictor"
	"github.com/yourusername/courtside/internal/recommend"
	"github.com/yourusername/courtside/internal/repository"
)

// fullyRestedDays is assumed when a team has no prior game on record
const fullyRestedDays = 3

// RunReport is the full accounting for one prediction run. A run always
// completes with every game and market in exactly one terminal state.
type RunReport struct {
	RunID          uuid.UUID
	TargetDate     time.Time
	ResolutionRate float64
	TotalGames     int
	Predicted      int
	NoPrediction   int
	Recommended    int
	Rejected       map[string]int
	Skipped        []gate.SkippedGame
	Duration       time.Duration
}

// Runner drives one prediction run end to end
type Runner struct {
	cfg         *config.Config
	repos       *repository.Repositories
	gate        *gate.Gate
	predictors  []predictor.Predictor
	recommender *recommend.Engine
	detector    *recommend.Detector
	logger      *logrus.Logger
	audit       *logger.AuditLogger
}

// NewRunner creates a prediction run orchestrator
func NewRunner(cfg *config.Config, repos *repository.Repositories, g *gate.Gate, predictors []predictor.Predictor, recommender *recommend.Engine, detector *recommend.Detector, log *logrus.Logger) *Runner {
	return &Runner{
		cfg:         cfg,
		repos:       repos,
		gate:        g,
		predictors:  predictors,
		recommender: recommender,
		detector:    detector,
		logger:      log,
		audit:       logger.NewAuditLogger(log),
	}
}

// gameResult collects one game's outputs before the persistence barrier
type gameResult struct {
	predictions     []*models.Prediction
	recommendations []*models.Recommendation
	noPrediction    int
	rejected        map[string]int
}

// Run executes one prediction run for a target date. The resolution-rate
// check is the only fatal precondition; every later problem is accounted
// per game or per market and never aborts sibling work. Re-running the same
// date appends a new record set under a fresh run ID.
func (r *Runner) Run(ctx context.Context, targetDate time.Time) (*RunReport, error) {
	start := time.Now()
	runID := uuid.New()

	ok, rate, err := r.gate.CanRun(ctx)
	if err != nil {
		metrics.RecordRun("error", time.Since(start).Seconds())
		return nil, err
	}
	metrics.ResolutionRate.Set(rate)
	if !ok {
		metrics.RecordRun("blocked", time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: measured rate %.4f below threshold %.4f",
			models.ErrResolutionRate, rate, r.cfg.Gate.MinResolutionRate)
	}

	games, err := r.repos.Game.GetByDate(ctx, targetDate)
	if err != nil {
		metrics.RecordRun("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to load games for %s: %w", targetDate.Format("2006-01-02"), err)
	}

	r.audit.LogRunStarted(runID.String(), targetDate, rate, len(games))
	metrics.LastRunGames.Set(float64(len(games)))

	usable, skipped, err := r.gate.FilterGames(ctx, games, time.Now())
	if err != nil {
		metrics.RecordRun("error", time.Since(start).Seconds())
		return nil, err
	}
	for _, s := range skipped {
		r.audit.LogGameSkipped(runID.String(), s.Game.ID.String(), s.Game.HomeTeam, s.Game.AwayTeam, s.Reason)
		metrics.RecordGameSkipped(s.Reason)
	}

	report := &RunReport{
		RunID:          runID,
		TargetDate:     targetDate,
		ResolutionRate: rate,
		TotalGames:     len(games),
		Rejected:       make(map[string]int),
		Skipped:        skipped,
	}

	results := make([]gameResult, len(usable))
	sem := make(chan struct{}, r.cfg.Engine.MaxConcurrentGames)
	var wg sync.WaitGroup

	for i, ug := range usable {
		wg.Add(1)
		go func(i int, ug gate.UsableGame) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = r.runGame(ctx, runID, ug)
		}(i, ug)
	}
	wg.Wait()

	var allPredictions []*models.Prediction
	var allRecommendations []*models.Recommendation
	for _, res := range results {
		allPredictions = append(allPredictions, res.predictions...)
		allRecommendations = append(allRecommendations, res.recommendations...)
		report.NoPrediction += res.noPrediction
		for reason, n := range res.rejected {
			report.Rejected[reason] += n
		}
	}
	report.Predicted = len(allPredictions)
	report.Recommended = len(allRecommendations)

	if len(allPredictions) > 0 {
		if err := r.repos.Prediction.InsertBatch(ctx, allPredictions); err != nil {
			metrics.RecordRun("error", time.Since(start).Seconds())
			return nil, fmt.Errorf("failed to persist predictions: %w", err)
		}
	}
	for _, rec := range allRecommendations {
		if err := r.repos.Recommendation.Insert(ctx, rec); err != nil {
			metrics.RecordRun("error", time.Since(start).Seconds())
			return nil, fmt.Errorf("failed to persist recommendation %s: %w", rec.ID, err)
		}
	}

	report.Duration = time.Since(start)

	rejected := 0
	for _, n := range report.Rejected {
		rejected += n
	}
	r.audit.LogRunCompleted(runID.String(), report.Predicted, len(skipped), report.Recommended, rejected, report.Duration)
	metrics.RecordRun("completed", report.Duration.Seconds())

	return report, nil
}

// runGame fans out across the four markets for one usable game. Markets are
// independent; a no-prediction or rejection in one never blocks the others.
func (r *Runner) runGame(ctx context.Context, runID uuid.UUID, ug gate.UsableGame) gameResult {
	in := predictor.Input{
		Home:        ug.Home,
		Away:        ug.Away,
		RestHome:    r.restDays(ctx, ug.Game.HomeTeam, ug.Game.Tipoff),
		RestAway:    r.restDays(ctx, ug.Game.AwayTeam, ug.Game.Tipoff),
		NeutralSite: ug.Game.NeutralSite,
	}

	res := gameResult{rejected: make(map[string]int)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, pred := range r.predictors {
		wg.Add(1)
		go func(pred predictor.Predictor) {
			defer wg.Done()

			kind := pred.Kind()
			out, ok := pred.Predict(in)
			if !ok {
				r.logger.WithFields(logrus.Fields{
					"game_id": ug.Game.ID,
					"market":  kind,
				}).Debug("No prediction, value outside plausible range")
				metrics.RecordNoPrediction(string(kind))
				mu.Lock()
				res.noPrediction++
				mu.Unlock()
				return
			}

			prediction := &models.Prediction{
				ID:           uuid.New(),
				RunID:        runID,
				GameID:       ug.Game.ID,
				Market:       kind,
				Value:        out.Value,
				Confidence:   out.Confidence,
				Sigma:        out.Sigma,
				ModelVersion: r.cfg.Engine.ModelVersion,
				PredictedAt:  time.Now().UTC(),
			}
			metrics.RecordPrediction(string(kind))

			rec, rejectReason, err := r.gradeMarket(ctx, runID, ug, kind, pred, out)

			mu.Lock()
			defer mu.Unlock()
			res.predictions = append(res.predictions, prediction)
			switch {
			case err != nil:
				r.logger.WithError(err).WithFields(logrus.Fields{
					"game_id": ug.Game.ID,
					"market":  kind,
				}).Error("Market grading failed")
			case rec != nil:
				res.recommendations = append(res.recommendations, rec)
			default:
				res.rejected[rejectReason]++
			}
		}(pred)
	}
	wg.Wait()

	return res
}

// gradeMarket runs one predicted market through context detection and the
// recommendation engine.
func (r *Runner) gradeMarket(ctx context.Context, runID uuid.UUID, ug gate.UsableGame, kind models.MarketKind, pred predictor.Predictor, out predictor.Result) (*models.Recommendation, string, error) {
	odds := ug.Odds[kind]
	mc := r.detector.Detect(kind, odds, r.bookRecord(ctx, ug.Game.ID, kind, r.cfg.Gate.SharpBooks), r.bookRecord(ctx, ug.Game.ID, kind, r.cfg.Gate.SquareBooks))

	rec, rejectReason, err := r.recommender.Recommend(ctx, recommend.Candidate{
		Game:     ug.Game,
		RunID:    runID,
		Kind:     kind,
		Value:    out.Value,
		BaseConf: out.Confidence,
		Sigma:    out.Sigma,
		MinEdge:  pred.MinEdge(),
		StdError: pred.StdError(),
		Odds:     odds,
		Context:  mc,
		Home:     ug.Home,
		Away:     ug.Away,
	})
	if err != nil {
		return nil, "", err
	}

	if rec == nil {
		r.audit.LogMarketRejected(runID.String(), ug.Game.ID.String(), string(kind), rejectReason, 0)
		metrics.RecordRejection(string(kind), rejectReason)
		return nil, rejectReason, nil
	}

	r.audit.LogRecommendation(runID.String(), ug.Game.ID.String(), string(kind), string(rec.Pick), string(rec.Tier), rec.Edge, rec.Probability, rec.Units)
	metrics.RecordRecommendation(string(kind), string(rec.Tier), rec.Edge)
	return rec, "", nil
}

// bookRecord returns the latest odds record from the first book in the list
// that has posted this market, nil when none has.
func (r *Runner) bookRecord(ctx context.Context, gameID uuid.UUID, kind models.MarketKind, books []string) *models.MarketOdds {
	for _, book := range books {
		rec, err := r.repos.Odds.GetLatestByBookmaker(ctx, gameID, kind.Type(), kind.Period(), book)
		if err == models.ErrNotFound {
			continue
		}
		if err != nil {
			r.logger.WithError(err).WithField("bookmaker", book).Warn("Bookmaker odds lookup failed")
			return nil
		}
		return rec
	}
	return nil
}

// restDays computes the calendar days of rest before a tipoff. Zero means a
// back-to-back. Teams with no game on record are treated as fully rested.
func (r *Runner) restDays(ctx context.Context, team string, tipoff time.Time) int {
	last, err := r.repos.Game.GetLastPlayed(ctx, team, tipoff)
	if err == models.ErrNotFound {
		return fullyRestedDays
	}
	if err != nil {
		r.logger.WithError(err).WithField("team", team).Warn("Rest-day lookup failed, assuming full rest")
		return fullyRestedDays
	}

	days := int(gameDay(tipoff).Sub(last.GameDate()).Hours()/24) - 1
	if days < 0 {
		days = 0
	}
	return days
}

func gameDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
