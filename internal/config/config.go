package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Export modes
const (
	ExportNone = "none"
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
	ExportAll  = "all"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds all configuration for a run
type Config struct {
	NorthCSV        string  `env:"NORTH_CSV" validate:"required"`
	SouthCSV        string  `env:"SOUTH_CSV" validate:"required"`
	OutputDir       string  `env:"OUTPUT_DIR" validate:"required"`
	LogLevel        string  `env:"LOG_LEVEL"`
	SLThresholdSecs float64 `env:"SL_THRESHOLD_SECS" validate:"gt=0"`
	SLTarget        float64 `env:"SL_TARGET" validate:"gt=0,lte=100"` // percent
	AbandonMin      float64 `env:"ABANDON_MIN" validate:"gte=0,ltefield=AbandonMax"`
	AbandonMax      float64 `env:"ABANDON_MAX" validate:"gte=0,lte=1"`
	ExportMode      string  `env:"EXPORT_MODE" validate:"oneof=none xlsx csv all"`
	Charts          bool    `env:"CHARTS"`
	ReportFormat    string  `env:"REPORT_FORMAT" validate:"oneof=text json yaml"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		NorthCSV:     getEnv("NORTH_CSV", "NorthCallCenter.csv"),
		SouthCSV:     getEnv("SOUTH_CSV", "SouthCallCenter.csv"),
		OutputDir:    getEnv("OUTPUT_DIR", "out"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ExportMode:   strings.ToLower(getEnv("EXPORT_MODE", ExportNone)),
		ReportFormat: strings.ToLower(getEnv("REPORT_FORMAT", FormatText)),
	}

	var err error
	if config.SLThresholdSecs, err = strconv.ParseFloat(getEnv("SL_THRESHOLD_SECS", "2"), 64); err != nil {
		return nil, fmt.Errorf("invalid SL_THRESHOLD_SECS: %w", err)
	}
	if config.SLTarget, err = strconv.ParseFloat(getEnv("SL_TARGET", "80"), 64); err != nil {
		return nil, fmt.Errorf("invalid SL_TARGET: %w", err)
	}
	if config.AbandonMin, err = strconv.ParseFloat(getEnv("ABANDON_MIN", "0.02"), 64); err != nil {
		return nil, fmt.Errorf("invalid ABANDON_MIN: %w", err)
	}
	if config.AbandonMax, err = strconv.ParseFloat(getEnv("ABANDON_MAX", "0.05"), 64); err != nil {
		return nil, fmt.Errorf("invalid ABANDON_MAX: %w", err)
	}
	if config.Charts, err = strconv.ParseBool(getEnv("CHARTS", "true")); err != nil {
		return nil, fmt.Errorf("invalid CHARTS: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report environment variable names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Validate checks value ranges. Call it again after applying flag overrides.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("invalid %s: failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// SLTargetFraction returns SLTarget as a fraction of 1
func (c *Config) SLTargetFraction() float64 {
	return c.SLTarget / 100
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
