// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// Config holds the application configuration.
type Config struct {
	// DataDir is the directory watched for capture CSVs.
	DataDir string

	// DatabasePath locates the SQLite result archive.
	DatabasePath string

	Battery    models.BatterySpec
	ChartTheme string

	// NotifyThreshold triggers a desktop notification when a committed
	// result projects less battery life than this. Zero disables it.
	NotifyThreshold time.Duration
}

// Default values
const (
	defaultChartTheme      = "dark"
	defaultNotifyThreshold = 24 * time.Hour
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:      getEnvString("DPA_DATA_DIR", defaultDataDir()),
		DatabasePath: getEnvString("DPA_DATABASE_PATH", defaultDatabasePath()),
		Battery: models.BatterySpec{
			CapacityMAh: getEnvFloat("DPA_BATTERY_CAPACITY_MAH", models.DefaultBatterySpec.CapacityMAh),
			Voltage:     getEnvFloat("DPA_BATTERY_VOLTAGE", models.DefaultBatterySpec.Voltage),
		},
		ChartTheme:      getEnvString("DPA_CHART_THEME", defaultChartTheme),
		NotifyThreshold: getEnvDuration("DPA_NOTIFY_THRESHOLD", defaultNotifyThreshold),
	}

	if cfg.Battery.CapacityMAh <= 0 || cfg.Battery.Voltage <= 0 {
		return nil, fmt.Errorf("battery spec must be positive (capacity %.1f mAh, voltage %.2f V)",
			cfg.Battery.CapacityMAh, cfg.Battery.Voltage)
	}

	// Ensure data and database directories exist
	if err := ensureDir(cfg.DataDir); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory location
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "device-power-analyzer", ".env"))
	}

	return paths
}

// defaultDataDir returns the default capture directory.
func defaultDataDir() string {
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "data")
	}
	return "data"
}

// defaultDatabasePath returns the default path for the SQLite archive.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "results.db"
	}
	return filepath.Join(home, ".config", "device-power-analyzer", "results.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
