package config

// Defaults returns the fully-populated default configuration. The market
// calibration constants are the current backtest fit; every one of them is
// overridable from the config file so recalibration never needs a rebuild.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:        "courtside",
			Environment: "development",
			LogLevel:    "info",
		},
		Database: DatabaseConfig{
			Host:               "localhost",
			Port:               5432,
			Name:               "courtside",
			User:               "courtside",
			SSLMode:            "disable",
			MaxConnections:     10,
			MaxIdleConnections: 2,
		},
		Engine: EngineConfig{
			ModelVersion:           "v33",
			MaxConcurrentGames:     8,
			RatingsCacheTTLSeconds: 3600,
			RatingsCacheMaxSize:    1000,
			LeagueAverages: LeagueAverages{
				Tempo:       67.6,
				Efficiency:  105.5,
				EFG:         50.0,
				ORB:         28.0,
				TOR:         18.5,
				FTR:         33.0,
				ThreePtRate: 35.0,
			},
		},
		Gate: GateConfig{
			LookbackDays:      3,
			MinResolutionRate: 0.99,
			MaxOddsAgeMinutes: 60,
			SharpBooks:        []string{"pinnacle", "circa", "bookmaker"},
			SquareBooks:       []string{"draftkings", "fanduel"},
		},
		Markets: MarketsConfig{
			FGSpread: MarketConfig{
				HCA:      5.8,
				MinEdge:  2.0,
				StdError: 10.57,
				Variance: VarianceConfig{Base: 11.0, TempoFactor: 0.10, ThreePtFactor: 0.15, Min: 9.0, Max: 14.0},
			},
			FGTotal: MarketConfig{
				Calibration:  -9.5,
				MinEdge:      3.0,
				StdError:     13.1,
				Variance:     VarianceConfig{Base: 20.0, TempoFactor: 0.10, ThreePtFactor: 0.20, Min: 16.0, Max: 26.0},
				PlausibleMin: 120.0,
				PlausibleMax: 170.0,
			},
			H1Spread: MarketConfig{
				HCA:      3.6,
				MinEdge:  3.5,
				StdError: 8.25,
				Variance: VarianceConfig{Base: 12.65, TempoFactor: 0.12, ThreePtFactor: 0.17, Min: 10.0, Max: 16.0},
			},
			H1Total: MarketConfig{
				Calibration:  -11.8,
				MinEdge:      2.0,
				StdError:     8.88,
				Variance:     VarianceConfig{Base: 11.0, TempoFactor: 0.12, ThreePtFactor: 0.23, Min: 9.0, Max: 15.0},
				PlausibleMin: 55.0,
				PlausibleMax: 85.0,
			},
			FirstHalf: FirstHalfConfig{
				TempoFactor:      0.48,
				TempoFactorMin:   0.44,
				TempoFactorMax:   0.52,
				MarginScale:      0.50,
				MarginScaleMin:   0.45,
				MarginScaleMax:   0.55,
				PossessionsBase:  33.0,
				TempoSwing:       0.85,
				LatePaceBoost:    1.02,
				OffenseDiscount:  0.97,
				DefenseIntensity: 1.03,
				BaseConfidence:   0.65,
				ConfidenceMin:    0.50,
				ConfidenceMax:    0.88,
			},
		},
		Recommendation: RecommendationConfig{
			KellyFraction:        0.25,
			MaxUnits:             3.0,
			UnitScale:            10.0,
			MinEVPercent:         0.0,
			MinConfidence:        0.50,
			ProbabilityFloor:     0.15,
			ProbabilityCeiling:   0.85,
			ZScoreCap:            2.5,
			AgainstSharpPenalty:  0.15,
			SteamBoost:           0.05,
			SteamPenalty:         0.10,
			RLMBoost:             0.08,
			PublicBetThreshold:   0.65,
			SpreadMoveThreshold:  0.5,
			TotalMoveThreshold:   1.0,
			SpreadSteamThreshold: 1.0,
			TotalSteamThreshold:  1.5,
			SpreadDivergence:     0.5,
			TotalDivergence:      1.0,
			Bayes: BayesConfig{
				PriorRate:   0.53,
				PriorWeight: 2.0,
				MinSamples:  25,
			},
		},
		OddsAPI: OddsAPIConfig{
			TimeoutSeconds:    30,
			MaxRetries:        5,
			RequestsPerSecond: 5.0,
		},
		ModelSource: ModelSourceConfig{
			RequestTimeoutSeconds: 10,
			ModelVersion:          "latest",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			DaemonAddr:   "127.0.0.1:2000",
			SamplingRate: 0.05,
		},
		Schedule: ScheduleConfig{
			DailyRun:   "0 14 * * *",
			CLVCapture: "*/30 * * * *",
		},
	}
}
