package config

import (
	"os"
	"strconv"

	"ecodesign/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case the service runs API-only with no project persistence.
type DatabaseConfig struct {
	URL string
}

// DataConfig holds training data settings. TrainingFile points at a workbook
// (or a directory of CSV files) with real historical datasets; when empty or
// unreadable the synthetic generators take over.
type DataConfig struct {
	TrainingFile       string
	CostSamples        int
	PreferenceSamples  int
	HistoricalProjects int
	Seed               int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "5000"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Data: DataConfig{
			TrainingFile:       getEnvOrDefault("TRAINING_DATA_FILE", ""),
			CostSamples:        getEnvIntOrDefault("SYNTHETIC_COST_SAMPLES", 200),
			PreferenceSamples:  getEnvIntOrDefault("SYNTHETIC_PREFERENCE_SAMPLES", 150),
			HistoricalProjects: getEnvIntOrDefault("SYNTHETIC_HISTORICAL_PROJECTS", 100),
			Seed:               int64(getEnvIntOrDefault("SYNTHETIC_SEED", 42)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Data.CostSamples <= 0 {
		return errors.ConfigInvalid("synthetic cost sample count must be positive")
	}
	if config.Data.PreferenceSamples <= 0 {
		return errors.ConfigInvalid("synthetic preference sample count must be positive")
	}
	if config.Data.HistoricalProjects <= 0 {
		return errors.ConfigInvalid("synthetic historical project count must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
