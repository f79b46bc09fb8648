// Package scheduler runs the daily prediction run and the closing-line
// capture job on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtside/internal/clv"
	"github.com/yourusername/courtside/internal/engine"
)

// Scheduler manages the engine's scheduled jobs
type Scheduler struct {
	cron            *cron.Cron
	runner          *engine.Runner
	capture         *clv.Capture
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
	onRunCompleted  func(runID string, at time.Time)
}

// NewScheduler creates a new scheduler
func NewScheduler(runner *engine.Runner, capture *clv.Capture, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		runner:          runner,
		capture:         capture,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// OnRunCompleted registers a callback invoked after each successful
// scheduled prediction run, e.g. to surface the run on the health endpoint.
func (s *Scheduler) OnRunCompleted(fn func(runID string, at time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRunCompleted = fn
}

// ScheduleDailyRun schedules the daily prediction run for today's slate
func (s *Scheduler) ScheduleDailyRun(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		targetDate := time.Now().UTC()
		s.logger.WithField("target_date", targetDate.Format("2006-01-02")).Info("Starting scheduled prediction run")

		report, err := s.runner.Run(ctx, targetDate)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled prediction run failed")
			return
		}

		s.logger.WithFields(logrus.Fields{
			"run_id":      report.RunID,
			"games":       report.TotalGames,
			"predicted":   report.Predicted,
			"recommended": report.Recommended,
			"skipped":     len(report.Skipped),
		}).Info("Scheduled prediction run completed")

		s.mu.RLock()
		callback := s.onRunCompleted
		s.mu.RUnlock()
		if callback != nil {
			callback(report.RunID.String(), time.Now().UTC())
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled daily prediction run")

	return nil
}

// ScheduleCLVCapture schedules the closing-line capture job
func (s *Scheduler) ScheduleCLVCapture(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := s.capture.Run(ctx); err != nil {
			s.logger.WithError(err).Error("Closing line capture failed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled closing line capture")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out, jobs may have been interrupted")
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}
