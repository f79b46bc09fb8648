// Package metrics provides centralized Prometheus metrics registry for the
// prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "prediction_runs_total",
		Help:      "Total number of prediction runs by terminal status",
	}, []string{"status"})
	GamesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "games_skipped_total",
		Help:      "Total number of games skipped by the data quality gate",
	}, []string{"reason"})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "predictions_total",
		Help:      "Total number of predictions emitted",
	}, []string{"market"})
	NoPredictionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "no_prediction_total",
		Help:      "Total number of plausibility-gate no-prediction outcomes",
	}, []string{"market"})
	MarketsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "markets_rejected_total",
		Help:      "Total number of candidates rejected by a recommendation gate",
	}, []string{"market", "reason"})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "recommendations_total",
		Help:      "Total number of recommendations emitted",
	}, []string{"market", "tier"})
	ClosingLinesCapturedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtside",
		Name:      "closing_lines_captured_total",
		Help:      "Total number of closing lines captured",
	})
)

// Gauge metrics
var (
	ResolutionRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtside",
		Name:      "resolution_rate",
		Help:      "Team-name resolution rate over the gate lookback window",
	})
	RatingsCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtside",
		Name:      "ratings_cache_hit_ratio",
		Help:      "Hit ratio of the ratings read-through cache",
	})
	LastRunGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtside",
		Name:      "last_run_games",
		Help:      "Number of games in the most recent prediction run",
	})
)

// Histogram metrics
var (
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtside",
		Name:      "run_duration_seconds",
		Help:      "Duration of prediction runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
	RecommendationEdge = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "courtside",
		Name:      "recommendation_edge_points",
		Help:      "Edge in points of emitted recommendations",
		Buckets:   []float64{2, 3, 4, 5, 6, 8, 10},
	}, []string{"market"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(PredictionRunsTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(NoPredictionTotal)
		registry.MustRegister(MarketsRejectedTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(ClosingLinesCapturedTotal)

		// Register gauge metrics
		registry.MustRegister(ResolutionRate)
		registry.MustRegister(RatingsCacheHitRatio)
		registry.MustRegister(LastRunGames)

		// Register histogram metrics
		registry.MustRegister(RunDuration)
		registry.MustRegister(RecommendationEdge)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordGameSkipped records a gate skip with its reason.
func RecordGameSkipped(reason string) {
	GamesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordPrediction records an emitted prediction for a market.
func RecordPrediction(market string) {
	PredictionsTotal.WithLabelValues(market).Inc()
}

// RecordNoPrediction records a plausibility-gate no-prediction outcome.
func RecordNoPrediction(market string) {
	NoPredictionTotal.WithLabelValues(market).Inc()
}

// RecordRejection records a recommendation-gate rejection.
func RecordRejection(market, reason string) {
	MarketsRejectedTotal.WithLabelValues(market, reason).Inc()
}

// RecordRecommendation records an emitted recommendation.
func RecordRecommendation(market, tier string, edge float64) {
	RecommendationsTotal.WithLabelValues(market, tier).Inc()
	RecommendationEdge.WithLabelValues(market).Observe(edge)
}

// RecordRun records a completed run with its terminal status.
func RecordRun(status string, durationSeconds float64) {
	PredictionRunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(durationSeconds)
}

// RecordClosingLine records a captured closing line.
func RecordClosingLine() {
	ClosingLinesCapturedTotal.Inc()
}
