// Package config provides configuration management for the Courtside engine.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App            AppConfig            `mapstructure:"app" validate:"required"`
	Database       DatabaseConfig       `mapstructure:"database" validate:"required"`
	Engine         EngineConfig         `mapstructure:"engine" validate:"required"`
	Gate           GateConfig           `mapstructure:"gate" validate:"required"`
	Markets        MarketsConfig        `mapstructure:"markets" validate:"required"`
	Recommendation RecommendationConfig `mapstructure:"recommendation" validate:"required"`
	OddsAPI        OddsAPIConfig        `mapstructure:"odds_api"`
	ModelSource    ModelSourceConfig    `mapstructure:"model_source"`
	Metrics        MetricsConfig        `mapstructure:"metrics" validate:"required"`
	Tracing        TracingConfig        `mapstructure:"tracing"`
	Schedule       ScheduleConfig       `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// EngineConfig represents prediction engine configuration
type EngineConfig struct {
	ModelVersion          string         `mapstructure:"model_version" validate:"required"`
	MaxConcurrentGames    int            `mapstructure:"max_concurrent_games" validate:"required,gt=0"`
	RatingsCacheTTLSeconds int           `mapstructure:"ratings_cache_ttl_seconds" validate:"required,gt=0"`
	RatingsCacheMaxSize   int            `mapstructure:"ratings_cache_max_size" validate:"required,gt=0"`
	LeagueAverages        LeagueAverages `mapstructure:"league_averages" validate:"required"`
}

// LeagueAverages holds the league-wide baselines the scoring model adjusts
// against. Updated once per season from the ratings provider.
type LeagueAverages struct {
	Tempo       float64 `mapstructure:"tempo" validate:"required,gt=0"`
	Efficiency  float64 `mapstructure:"efficiency" validate:"required,gt=0"`
	EFG         float64 `mapstructure:"efg" validate:"required,gt=0"`
	ORB         float64 `mapstructure:"orb" validate:"required,gt=0"`
	TOR         float64 `mapstructure:"tor" validate:"required,gt=0"`
	FTR         float64 `mapstructure:"ftr" validate:"required,gt=0"`
	ThreePtRate float64 `mapstructure:"three_pt_rate" validate:"required,gt=0"`
}

// GateConfig represents data quality gate configuration
type GateConfig struct {
	LookbackDays      int      `mapstructure:"lookback_days" validate:"required,gt=0"`
	MinResolutionRate float64  `mapstructure:"min_resolution_rate" validate:"required,gt=0,lte=1"`
	MaxOddsAgeMinutes int      `mapstructure:"max_odds_age_minutes" validate:"required,gt=0"`
	SharpBooks        []string `mapstructure:"sharp_books" validate:"required,min=1"`
	SquareBooks       []string `mapstructure:"square_books"`
}

// MaxOddsAge returns the odds freshness limit as a duration
func (g *GateConfig) MaxOddsAge() time.Duration {
	return time.Duration(g.MaxOddsAgeMinutes) * time.Minute
}

// MarketsConfig holds the four per-market calibration blocks
type MarketsConfig struct {
	FGSpread MarketConfig `mapstructure:"fg_spread" validate:"required"`
	FGTotal  MarketConfig `mapstructure:"fg_total" validate:"required"`
	H1Spread MarketConfig `mapstructure:"h1_spread" validate:"required"`
	H1Total  MarketConfig `mapstructure:"h1_total" validate:"required"`
	FirstHalf FirstHalfConfig `mapstructure:"first_half" validate:"required"`
}

// MarketConfig represents one market's calibration constants. The numeric
// values are backtest-fitted and recalibrated between seasons, so they live
// in configuration rather than code.
type MarketConfig struct {
	HCA          float64        `mapstructure:"hca"`
	Calibration  float64        `mapstructure:"calibration"`
	MinEdge      float64        `mapstructure:"min_edge" validate:"required,gt=0"`
	StdError     float64        `mapstructure:"std_error" validate:"required,gt=0"`
	Variance     VarianceConfig `mapstructure:"variance" validate:"required"`
	PlausibleMin float64        `mapstructure:"plausible_min"`
	PlausibleMax float64        `mapstructure:"plausible_max"`
}

// HasPlausibilityGate reports whether the market pre-registered a reliable
// prediction range.
func (m *MarketConfig) HasPlausibilityGate() bool {
	return m.PlausibleMax > m.PlausibleMin
}

// VarianceConfig represents one market's sigma estimator constants
type VarianceConfig struct {
	Base          float64 `mapstructure:"base" validate:"required,gt=0"`
	TempoFactor   float64 `mapstructure:"tempo_factor" validate:"gte=0"`
	ThreePtFactor float64 `mapstructure:"three_pt_factor" validate:"gte=0"`
	Min           float64 `mapstructure:"min" validate:"required,gt=0"`
	Max           float64 `mapstructure:"max" validate:"required,gt=0"`
}

// FirstHalfConfig holds the first-half regression constants. These come from
// a separate regression against actual first-half results, not from halving
// the full-game model.
type FirstHalfConfig struct {
	TempoFactor     float64 `mapstructure:"tempo_factor" validate:"required,gt=0"`
	TempoFactorMin  float64 `mapstructure:"tempo_factor_min" validate:"required,gt=0"`
	TempoFactorMax  float64 `mapstructure:"tempo_factor_max" validate:"required,gt=0"`
	MarginScale     float64 `mapstructure:"margin_scale" validate:"required,gt=0"`
	MarginScaleMin  float64 `mapstructure:"margin_scale_min" validate:"required,gt=0"`
	MarginScaleMax  float64 `mapstructure:"margin_scale_max" validate:"required,gt=0"`
	PossessionsBase float64 `mapstructure:"possessions_base" validate:"required,gt=0"`
	TempoSwing      float64 `mapstructure:"tempo_swing" validate:"required,gt=0"`
	LatePaceBoost   float64 `mapstructure:"late_pace_boost" validate:"required,gt=0"`
	OffenseDiscount float64 `mapstructure:"offense_discount" validate:"required,gt=0"`
	DefenseIntensity float64 `mapstructure:"defense_intensity" validate:"required,gt=0"`
	BaseConfidence  float64 `mapstructure:"base_confidence" validate:"required,gt=0,lte=1"`
	ConfidenceMin   float64 `mapstructure:"confidence_min" validate:"required,gt=0,lte=1"`
	ConfidenceMax   float64 `mapstructure:"confidence_max" validate:"required,gt=0,lte=1"`
}

// RecommendationConfig represents recommendation engine configuration
type RecommendationConfig struct {
	KellyFraction       float64     `mapstructure:"kelly_fraction" validate:"required,gt=0,lte=1"`
	MaxUnits            float64     `mapstructure:"max_units" validate:"required,gt=0"`
	UnitScale           float64     `mapstructure:"unit_scale" validate:"required,gt=0"`
	MinEVPercent        float64     `mapstructure:"min_ev_percent" validate:"gte=0"`
	MinConfidence       float64     `mapstructure:"min_confidence" validate:"required,gt=0,lt=1"`
	ProbabilityFloor    float64     `mapstructure:"probability_floor" validate:"required,gt=0,lt=1"`
	ProbabilityCeiling  float64     `mapstructure:"probability_ceiling" validate:"required,gt=0,lt=1"`
	ZScoreCap           float64     `mapstructure:"z_score_cap" validate:"required,gt=0"`
	AgainstSharpPenalty float64     `mapstructure:"against_sharp_penalty" validate:"gte=0,lte=1"`
	SteamBoost          float64     `mapstructure:"steam_boost" validate:"gte=0"`
	SteamPenalty        float64     `mapstructure:"steam_penalty" validate:"gte=0"`
	RLMBoost            float64     `mapstructure:"rlm_boost" validate:"gte=0"`
	PublicBetThreshold  float64     `mapstructure:"public_bet_threshold" validate:"required,gt=0,lt=1"`
	SpreadMoveThreshold float64     `mapstructure:"spread_move_threshold" validate:"required,gt=0"`
	TotalMoveThreshold  float64     `mapstructure:"total_move_threshold" validate:"required,gt=0"`
	SpreadSteamThreshold float64    `mapstructure:"spread_steam_threshold" validate:"required,gt=0"`
	TotalSteamThreshold  float64    `mapstructure:"total_steam_threshold" validate:"required,gt=0"`
	SpreadDivergence    float64     `mapstructure:"spread_divergence" validate:"required,gt=0"`
	TotalDivergence     float64     `mapstructure:"total_divergence" validate:"required,gt=0"`
	Bayes               BayesConfig `mapstructure:"bayes" validate:"required"`
}

// BayesConfig represents the Bayesian prior blend applied once enough graded
// history exists.
type BayesConfig struct {
	PriorRate   float64 `mapstructure:"prior_rate" validate:"required,gt=0,lt=1"`
	PriorWeight float64 `mapstructure:"prior_weight" validate:"required,gt=0"`
	MinSamples  int     `mapstructure:"min_samples" validate:"required,gt=0"`
}

// OddsAPIConfig represents the odds aggregator used for closing-line capture
type OddsAPIConfig struct {
	BaseURL            string  `mapstructure:"base_url"`
	APIKey             string  `mapstructure:"api_key"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds"`
	MaxRetries         int     `mapstructure:"max_retries"`
	RequestsPerSecond  float64 `mapstructure:"requests_per_second"`
}

// ModelSourceConfig represents the optional trained probability model service
type ModelSourceConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	HTTPAddress           string `mapstructure:"http_address"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	ModelVersion          string `mapstructure:"model_version"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// TracingConfig represents AWS X-Ray tracing configuration
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	DaemonAddr   string  `mapstructure:"daemon_addr"`
	SamplingRate float64 `mapstructure:"sampling_rate" validate:"gte=0,lte=1"`
}

// ScheduleConfig represents daemon-mode scheduling
type ScheduleConfig struct {
	DailyRun   string `mapstructure:"daily_run"`
	CLVCapture string `mapstructure:"clv_capture"`
}

// ForKind returns the calibration block for a market kind
func (m *MarketsConfig) ForKind(kind string) (MarketConfig, error) {
	switch kind {
	case "fg_spread":
		return m.FGSpread, nil
	case "fg_total":
		return m.FGTotal, nil
	case "h1_spread":
		return m.H1Spread, nil
	case "h1_total":
		return m.H1Total, nil
	}
	return MarketConfig{}, fmt.Errorf("unknown market kind: %s", kind)
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
