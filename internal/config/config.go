// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aristath/resourceplan/internal/database"
	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/aristath/resourceplan/internal/modules/settings"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for planning.db (always absolute)
	DBDriver           string // "sqlite" (modernc, default) or "sqlite3" (mattn, cgo)
	LogLevel           string
	LogPretty          bool
	Port               int
	DevMode            bool
	CORSAllowedOrigins []string
	DigestSchedule     string // cron spec with seconds; empty disables the digest job

	DefaultWeeklyCapacityHours float64
	DefaultNonProjectHours     float64
	Thresholds                 capacity.Thresholds
	CurrentDateAwareness       capacity.AwarenessPolicy
}

// DatabasePath returns the planning database file path
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "planning.db")
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	awareness, err := capacity.ParseAwarenessPolicy(getEnv("CURRENT_DATE_AWARENESS", string(capacity.AwarenessAuto)))
	if err != nil {
		return nil, err
	}

	defaults := capacity.DefaultThresholds()
	cfg := &Config{
		DataDir:            absDataDir,
		DBDriver:           getEnv("DB_DRIVER", database.DriverModernc),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogPretty:          getEnvAsBool("LOG_PRETTY", true),
		Port:               getEnvAsInt("PORT", 8001),
		DevMode:            getEnvAsBool("DEV_MODE", false),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		DigestSchedule:     getEnv("DIGEST_SCHEDULE", ""),

		DefaultWeeklyCapacityHours: getEnvAsFloat("DEFAULT_WEEKLY_CAPACITY_HOURS", capacity.DefaultWeeklyCapacityHours),
		DefaultNonProjectHours:     getEnvAsFloat("DEFAULT_NON_PROJECT_HOURS", capacity.DefaultNonProjectHoursPerWeek),
		Thresholds: capacity.Thresholds{
			UntappedBelowPct:       getEnvAsFloat("UNTAPPED_BELOW_PCT", defaults.UntappedBelowPct),
			WarningAbovePct:        getEnvAsFloat("WARNING_ABOVE_PCT", defaults.WarningAbovePct),
			CriticalAbovePct:       getEnvAsFloat("CRITICAL_ABOVE_PCT", defaults.CriticalAbovePct),
			HighCapacityFloorHours: getEnvAsFloat("HIGH_CAPACITY_FLOOR_HOURS", defaults.HighCapacityFloorHours),
		},
		CurrentDateAwareness: awareness,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UpdateFromSettings updates configuration from the settings table.
// This should be called after the planning database is migrated.
// Settings DB values take precedence over environment variables.
func (c *Config) UpdateFromSettings(settingsRepo *settings.Repository) error {
	updated := c.Thresholds
	overrides := []struct {
		key    string
		target *float64
	}{
		{settings.KeyUntappedBelowPct, &updated.UntappedBelowPct},
		{settings.KeyWarningAbovePct, &updated.WarningAbovePct},
		{settings.KeyCriticalAbovePct, &updated.CriticalAbovePct},
		{settings.KeyHighCapacityFloorHours, &updated.HighCapacityFloorHours},
	}

	for _, o := range overrides {
		v, err := settingsRepo.GetFloat(o.key, *o.target)
		if err != nil {
			return fmt.Errorf("failed to get %s from settings: %w", o.key, err)
		}
		*o.target = v
	}

	// Reject the whole override set rather than run with a half-applied policy
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds in settings: %w", err)
	}
	c.Thresholds = updated

	awareness, err := settingsRepo.Get(settings.KeyCurrentDateAwareness)
	if err != nil {
		return fmt.Errorf("failed to get %s from settings: %w", settings.KeyCurrentDateAwareness, err)
	}
	if awareness != nil && *awareness != "" {
		policy, err := capacity.ParseAwarenessPolicy(*awareness)
		if err != nil {
			return err
		}
		c.CurrentDateAwareness = policy
	}

	return nil
}

// Validate checks if the configuration is consistent
func (c *Config) Validate() error {
	if !database.ValidDriver(c.DBDriver) {
		return fmt.Errorf("unsupported DB_DRIVER %q (expected %q or %q)", c.DBDriver, database.DriverModernc, database.DriverMattn)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DefaultWeeklyCapacityHours < 0 || c.DefaultNonProjectHours < 0 {
		return fmt.Errorf("default capacity hours must be non-negative")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, v := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
