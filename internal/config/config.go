package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath       string
	LogLevel           string
	Port               int
	DevMode            bool
	AnalysisSchedule   string // cron spec for the daily market analysis run
	CleanupSchedule    string // cron spec for alert retention cleanup
	AlertRetentionDays int    // read alerts older than this are deleted
	AnalysisWorkers    int    // per-key fan-out within a trend step
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("PORT", 8080),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		DatabasePath:       getEnv("DATABASE_PATH", "./data/jobmarket.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AnalysisSchedule:   getEnv("ANALYSIS_SCHEDULE", "0 0 6 * * *"), // 06:00 UTC daily
		CleanupSchedule:    getEnv("CLEANUP_SCHEDULE", "0 30 6 * * 0"), // Sunday, after the daily run
		AlertRetentionDays: getEnvAsInt("ALERT_RETENTION_DAYS", 30),
		AnalysisWorkers:    getEnvAsInt("ANALYSIS_WORKERS", 8),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.AlertRetentionDays < 1 {
		return fmt.Errorf("ALERT_RETENTION_DAYS must be positive")
	}
	if c.AnalysisWorkers < 1 {
		return fmt.Errorf("ANALYSIS_WORKERS must be positive")
	}
	return nil
}

// Helper functions
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
