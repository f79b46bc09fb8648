package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Defaults()
	cfg.Database.Password = "secret"
	return cfg
}

// TestDefaultsValidate tests that the shipped defaults pass validation
func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

// TestValidateProbabilityBand tests the floor/ceiling cross-field check
func TestValidateProbabilityBand(t *testing.T) {
	cfg := validConfig()
	cfg.Recommendation.ProbabilityFloor = 0.9
	cfg.Recommendation.ProbabilityCeiling = 0.85

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probability")
}

// TestValidateVarianceBand tests the per-market variance band ordering
func TestValidateVarianceBand(t *testing.T) {
	cfg := validConfig()
	cfg.Markets.FGSpread.Variance.Min = 15.0
	cfg.Markets.FGSpread.Variance.Max = 9.0

	assert.Error(t, Validate(cfg))
}

// TestValidateProductionSSL tests that production requires SSL
func TestValidateProductionSSL(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"
	cfg.Database.SSLMode = "disable"

	assert.Error(t, Validate(cfg))
}

// TestForKind tests market config dispatch
func TestForKind(t *testing.T) {
	cfg := Defaults()

	fg, err := cfg.Markets.ForKind("fg_spread")
	require.NoError(t, err)
	assert.InDelta(t, 5.8, fg.HCA, 1e-9)

	h1, err := cfg.Markets.ForKind("h1_total")
	require.NoError(t, err)
	assert.InDelta(t, -11.8, h1.Calibration, 1e-9)

	_, err = cfg.Markets.ForKind("moneyline")
	assert.Error(t, err)
}

// TestLoadExpandsEnvironment tests ${VAR} expansion in the config file
func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte(`
app:
  name: courtside
database:
  password: ${TEST_DB_PASSWORD}
gate:
  max_odds_age_minutes: 45
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, 45, cfg.Gate.MaxOddsAgeMinutes)
	// Unset keys keep their calibrated defaults
	assert.InDelta(t, 5.8, cfg.Markets.FGSpread.HCA, 1e-9)
	assert.Equal(t, "v33", cfg.Engine.ModelVersion)
}

// TestLoadMissingFile tests the missing-file error path
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// TestHasPlausibilityGate tests plausibility range detection
func TestHasPlausibilityGate(t *testing.T) {
	cfg := Defaults()
	assert.True(t, cfg.Markets.FGTotal.HasPlausibilityGate())
	assert.False(t, cfg.Markets.FGSpread.HasPlausibilityGate())
}

// TestMaxOddsAge tests duration conversion
func TestMaxOddsAge(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 60.0, cfg.Gate.MaxOddsAge().Minutes())
}
