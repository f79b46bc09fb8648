// Package config provides configuration management for the Courtside engine.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Recommendation.ProbabilityFloor >= cfg.Recommendation.ProbabilityCeiling {
		return fmt.Errorf("probability_floor must be below probability_ceiling")
	}

	for _, mc := range []struct {
		name string
		cfg  MarketConfig
	}{
		{"fg_spread", cfg.Markets.FGSpread},
		{"fg_total", cfg.Markets.FGTotal},
		{"h1_spread", cfg.Markets.H1Spread},
		{"h1_total", cfg.Markets.H1Total},
	} {
		if mc.cfg.Variance.Min > mc.cfg.Variance.Max {
			return fmt.Errorf("markets.%s variance min exceeds max", mc.name)
		}
		if mc.cfg.PlausibleMin != 0 || mc.cfg.PlausibleMax != 0 {
			if mc.cfg.PlausibleMin >= mc.cfg.PlausibleMax {
				return fmt.Errorf("markets.%s plausible range is inverted", mc.name)
			}
		}
	}

	fh := cfg.Markets.FirstHalf
	if fh.TempoFactorMin > fh.TempoFactorMax || fh.MarginScaleMin > fh.MarginScaleMax {
		return fmt.Errorf("first_half factor clamps are inverted")
	}
	if fh.ConfidenceMin > fh.ConfidenceMax {
		return fmt.Errorf("first_half confidence clamp is inverted")
	}

	// Validate production environment requirements
	if cfg.IsProduction() {
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	// Validate connection pool settings
	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	if cfg.ModelSource.Enabled && cfg.ModelSource.HTTPAddress == "" {
		return fmt.Errorf("model_source.http_address is required when model_source is enabled")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
