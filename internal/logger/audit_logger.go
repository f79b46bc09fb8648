// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for prediction runs. Skip
// reasons and emitted recommendations are part of the run's accounting, so
// they are logged here rather than to the general application log.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRunStarted logs the start of a prediction run.
func (al *AuditLogger) LogRunStarted(runID string, targetDate time.Time, resolutionRate float64, totalGames int) {
	al.WithFields(logrus.Fields{
		"run_id":          runID,
		"target_date":     targetDate.Format("2006-01-02"),
		"resolution_rate": resolutionRate,
		"total_games":     totalGames,
	}).Info("Prediction run started")
}

// LogGameSkipped logs a game skipped by the data quality gate.
func (al *AuditLogger) LogGameSkipped(runID, gameID, homeTeam, awayTeam, reason string) {
	al.WithFields(logrus.Fields{
		"run_id":    runID,
		"game_id":   gameID,
		"home_team": homeTeam,
		"away_team": awayTeam,
		"reason":    reason,
	}).Info("Game skipped")
}

// LogMarketRejected logs a market that failed an edge, confidence or EV gate.
// Rejection is the expected negative-filter outcome, not an error.
func (al *AuditLogger) LogMarketRejected(runID, gameID, market, reason string, edge float64) {
	al.WithFields(logrus.Fields{
		"run_id":  runID,
		"game_id": gameID,
		"market":  market,
		"reason":  reason,
		"edge":    edge,
	}).Debug("Market rejected")
}

// LogRecommendation logs an emitted recommendation.
func (al *AuditLogger) LogRecommendation(runID, gameID, market, pick, tier string, edge, probability, units float64) {
	al.WithFields(logrus.Fields{
		"run_id":      runID,
		"game_id":     gameID,
		"market":      market,
		"pick":        pick,
		"tier":        tier,
		"edge":        edge,
		"probability": probability,
		"units":       units,
	}).Info("Recommendation emitted")
}

// LogRunCompleted logs the final accounting for a run.
func (al *AuditLogger) LogRunCompleted(runID string, predicted, skipped, recommended, rejected int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"run_id":      runID,
		"predicted":   predicted,
		"skipped":     skipped,
		"recommended": recommended,
		"rejected":    rejected,
		"duration":    duration.String(),
	}).Info("Prediction run completed")
}
