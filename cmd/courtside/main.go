// Package main provides the entry point for the prediction engine.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/courtside/internal/clv"
	"github.com/yourusername/courtside/internal/config"
	"github.com/yourusername/courtside/internal/database"
	"github.com/yourusername/courtside/internal/engine"
	"github.com/yourusername/courtside/internal/gate"
	"github.com/yourusername/courtside/internal/health"
	"github.com/yourusername/courtside/internal/logger"
	"github.com/yourusername/courtside/internal/metrics"
	"github.com/yourusername/courtside/internal/model"
	"github.com/yourusername/courtside/internal/modelsource"
	"github.com/yourusername/courtside/internal/predictor"
	"github.com/yourusername/courtside/internal/ratings"
	"github.com/yourusername/courtside/internal/recommend"
	"github.com/yourusername/courtside/internal/repository"
	"github.com/yourusername/courtside/internal/scheduler"
	"github.com/yourusername/courtside/internal/tracing"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	targetDate string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	runCmd.Flags().StringVar(&targetDate, "date", "", "Target date (YYYY-MM-DD, defaults to today)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(clvCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "courtside",
	Short: "NCAA basketball prediction and recommendation engine",
	Long:  `Predicts full-game and first-half spreads and totals from team efficiency ratings and converts model-vs-market edges into sized, tiered bet recommendations.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one prediction run for a target date",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer teardown()

		date := time.Now().UTC()
		if targetDate != "" {
			parsed, err := time.Parse("2006-01-02", targetDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", targetDate, err)
			}
			date = parsed
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if cfg.Tracing.Enabled {
			segCtx, seg := tracing.StartSegment(ctx, "prediction-run")
			defer seg.Close(nil)
			tracing.AddAnnotation(segCtx, "target_date", date.Format("2006-01-02"))
			ctx = segCtx
		}

		report, err := buildRunner().Run(ctx, date)
		if err != nil {
			return err
		}

		appLog.WithFields(logrus.Fields{
			"run_id":        report.RunID,
			"games":         report.TotalGames,
			"predicted":     report.Predicted,
			"no_prediction": report.NoPrediction,
			"recommended":   report.Recommended,
			"skipped":       len(report.Skipped),
			"rejected":      report.Rejected,
			"duration":      report.Duration.String(),
		}).Info("Prediction run finished")

		return nil
	},
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the engine as a scheduled daemon with health and metrics endpoints",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer teardown()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		healthServer := health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Logger:      appLog,
			DB:          db,
		})
		if err := healthServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}

		if cfg.Metrics.Enabled {
			go serveMetrics()
		}

		sched := scheduler.NewScheduler(buildRunner(), buildCapture(), appLog)
		sched.OnRunCompleted(healthServer.SetLastRun)
		if err := sched.ScheduleDailyRun(cfg.Schedule.DailyRun); err != nil {
			return err
		}
		if err := sched.ScheduleCLVCapture(cfg.Schedule.CLVCapture); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		healthServer.SetReady(true)

		appLog.WithField("next_run", sched.GetNextRun()).Info("Daemon started")
		<-ctx.Done()

		healthServer.SetReady(false)
		return sched.Stop()
	},
}

var clvCmd = &cobra.Command{
	Use:   "clv",
	Short: "Capture closing lines for recommendations awaiting one",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer teardown()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		captured, err := buildCapture().Run(ctx)
		if err != nil {
			return err
		}

		appLog.WithField("captured", captured).Info("Closing line capture finished")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("courtside %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment":   cfg.App.Environment,
		"model_version": cfg.Engine.ModelVersion,
	}).Info("Courtside starting")

	if err := tracing.Initialize(cfg.Tracing, appLog); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func teardown() {
	if db != nil {
		db.Close()
	}
}

func buildRunner() *engine.Runner {
	params := model.NewParams(cfg.Engine.LeagueAverages)

	ratingsCache := ratings.NewCache(
		repos.Ratings,
		time.Duration(cfg.Engine.RatingsCacheTTLSeconds)*time.Second,
		cfg.Engine.RatingsCacheMaxSize,
	)

	qualityGate := gate.NewGate(ratingsCache, repos.Odds, repos.ResolutionAudit, &cfg.Gate, appLog)

	var probSource recommend.ProbabilitySource = recommend.NewCDFSource(cfg.Recommendation.ZScoreCap)
	if cfg.ModelSource.Enabled {
		probSource = modelsource.NewHTTPClient(&cfg.ModelSource, appLog)
		appLog.WithField("address", cfg.ModelSource.HTTPAddress).Info("Using trained model probability source")
	}

	recommender := recommend.NewEngine(&cfg.Recommendation, probSource, repos.Recommendation, appLog)
	detector := recommend.NewDetector(&cfg.Recommendation)

	return engine.NewRunner(cfg, repos, qualityGate, predictor.All(&cfg.Markets, params), recommender, detector, appLog)
}

func buildCapture() *clv.Capture {
	source := clv.NewOddsAPIClient(&cfg.OddsAPI, appLog)
	return clv.NewCapture(repos.Recommendation, repos.Game, source, appLog)
}

func serveMetrics() {
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	appLog.WithField("addr", addr).Info("Metrics server starting")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Error("Metrics server error")
	}
}
