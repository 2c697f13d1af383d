// Package settings provides repository implementations for managing application settings.
// Settings are key-value pairs stored in planning.db that override environment
// configuration at startup (categorization thresholds, awareness policy).
package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Setting keys read by config.UpdateFromSettings
const (
	KeyUntappedBelowPct       = "untapped_below_pct"
	KeyWarningAbovePct        = "warning_above_pct"
	KeyCriticalAbovePct       = "critical_above_pct"
	KeyHighCapacityFloorHours = "high_capacity_floor_hours"
	KeyCurrentDateAwareness   = "current_date_awareness"
)

// Repository handles settings database operations.
// Settings take precedence over environment variables, so a deployment can
// tune the categorization policy without a redeploy.
//
// Settings are stored as strings and converted to the appropriate type
// when retrieved.
//
// Database: planning.db (settings table)
type Repository struct {
	db  *sql.DB        // planning.db - settings table
	log zerolog.Logger // Structured logger
}

// NewRepository creates a new settings repository.
//
// Parameters:
//   - db: Database connection to planning.db
//   - log: Structured logger
//
// Returns:
//   - *Repository: Initialized repository instance
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "settings").Logger(),
	}
}

// Get retrieves a setting value by key.
// Returns nil if the setting doesn't exist (not an error).
//
// Parameters:
//   - key: Setting key (e.g., "warning_above_pct")
//
// Returns:
//   - *string: Setting value if found, nil if not found
//   - error: Error if query fails
func (r *Repository) Get(key string) (*string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &value, nil
}

// Set sets a setting value.
// The description is optional and documents the setting's purpose.
//
// Parameters:
//   - key: Setting key
//   - value: Setting value (stored as string)
//   - description: Optional description of the setting
//
// Returns:
//   - error: Error if database operation fails
func (r *Repository) Set(key string, value string, description *string) error {
	now := time.Now().Unix()

	var desc sql.NullString
	if description != nil {
		desc = sql.NullString{String: *description, Valid: true}
	}

	_, err := r.db.Exec(`
		INSERT INTO settings (key, value, description, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			description = COALESCE(excluded.description, settings.description),
			updated_at = excluded.updated_at
	`, key, value, desc, now)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}

	r.log.Debug().Str("key", key).Str("value", value).Msg("Setting updated")
	return nil
}

// GetAll retrieves all settings as a map.
//
// Returns:
//   - map[string]string: Map of setting keys to values
//   - error: Error if query fails
func (r *Repository) GetAll() (map[string]string, error) {
	rows, err := r.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to get all settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan setting row")
			continue
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return result, nil
}

// GetFloat retrieves a setting value as float64.
// Returns defaultValue if the setting doesn't exist or parsing fails.
//
// Parameters:
//   - key: Setting key
//   - defaultValue: Default value to return if setting not found or invalid
//
// Returns:
//   - float64: Setting value as float, or defaultValue
//   - error: Error if query fails (parsing errors are logged but not returned)
func (r *Repository) GetFloat(key string, defaultValue float64) (float64, error) {
	value, err := r.Get(key)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}

	floatVal, err := strconv.ParseFloat(*value, 64)
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("key", key).
			Str("value", *value).
			Msg("Failed to parse float setting")
		return defaultValue, nil
	}

	return floatVal, nil
}

// SetFloat sets a setting value as float64.
func (r *Repository) SetFloat(key string, value float64) error {
	return r.Set(key, strconv.FormatFloat(value, 'f', -1, 64), nil)
}

// GetEffective returns every recognised setting with its stored value applied
// over the default. Unparseable numeric values fall back to the default.
func (r *Repository) GetEffective() ([]Setting, error) {
	stored, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(SettingDefaults))
	for key := range SettingDefaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]Setting, 0, len(keys))
	for _, key := range keys {
		s := Setting{
			Key:         key,
			Value:       SettingDefaults[key],
			Default:     SettingDefaults[key],
			Description: SettingDescriptions[key],
		}

		if raw, ok := stored[key]; ok {
			if StringSettings[key] {
				s.Value = raw
				s.Overridden = true
			} else if v, err := strconv.ParseFloat(raw, 64); err == nil {
				s.Value = v
				s.Overridden = true
			} else {
				r.log.Warn().Str("key", key).Str("value", raw).Msg("Ignoring unparseable setting")
			}
		}

		result = append(result, s)
	}

	return result, nil
}
