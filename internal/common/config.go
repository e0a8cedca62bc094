package common

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Validation ValidationConfig
	Database   DatabaseConfig
	Output     OutputConfig
}

// ValidationConfig holds thresholds for the validation stage
type ValidationConfig struct {
	WeightToleranceKG     decimal.Decimal
	MaxReasonableWeightKG decimal.Decimal
	MinReasonableWeightKG decimal.Decimal
	DateHorizonYears      int
}

// DatabaseConfig holds the SQLite archive configuration
type DatabaseConfig struct {
	Path string
}

// OutputConfig holds output-related configuration
type OutputConfig struct {
	Dir        string
	JSONIndent string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			WeightToleranceKG:     getEnvAsDecimal("WEIGHT_TOLERANCE_KG", decimal.NewFromInt(1)),
			MaxReasonableWeightKG: getEnvAsDecimal("MAX_REASONABLE_WEIGHT_KG", decimal.NewFromInt(100000)),
			MinReasonableWeightKG: getEnvAsDecimal("MIN_REASONABLE_WEIGHT_KG", decimal.NewFromInt(1)),
			DateHorizonYears:      getEnvAsInt("DATE_HORIZON_YEARS", 10),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", ""),
		},
		Output: OutputConfig{
			Dir:        getEnv("OUTPUT_DIR", "output"),
			JSONIndent: getEnv("JSON_INDENT", "  "),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Validation.WeightToleranceKG.IsNegative() {
		return NewAppError("CONFIG_ERROR", "WEIGHT_TOLERANCE_KG must not be negative", ErrInvalidInput)
	}
	if c.Validation.MaxReasonableWeightKG.LessThanOrEqual(c.Validation.MinReasonableWeightKG) {
		return NewAppError("CONFIG_ERROR", "MAX_REASONABLE_WEIGHT_KG must exceed MIN_REASONABLE_WEIGHT_KG", ErrInvalidInput)
	}
	if c.Validation.DateHorizonYears <= 0 {
		return NewAppError("CONFIG_ERROR", "DATE_HORIZON_YEARS must be positive", ErrInvalidInput)
	}
	return nil
}
