// Package roster provides the sqlite-backed planning store: the resource roster
// and its weekly project allocations. The capacity engine reads it through
// capacity.ResourceProvider.
package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Defaults applied to resources stored without explicit capacity figures
type Defaults struct {
	WeeklyCapacityHours    float64
	NonProjectHoursPerWeek float64
}

// DefaultDefaults returns the 40h capacity / 8h overhead defaults
func DefaultDefaults() Defaults {
	return Defaults{
		WeeklyCapacityHours:    capacity.DefaultWeeklyCapacityHours,
		NonProjectHoursPerWeek: capacity.DefaultNonProjectHoursPerWeek,
	}
}

// ResourceRecord is a resource as written to the store.
// Nil capacity figures fall back to the repository defaults on read.
type ResourceRecord struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Role                   string   `json:"role"`
	Department             string   `json:"department"`
	WeeklyCapacityHours    *float64 `json:"weeklyCapacityHours,omitempty"`
	NonProjectHoursPerWeek *float64 `json:"nonProjectHoursPerWeek,omitempty"`
	Active                 *bool    `json:"active,omitempty"`
}

// ResourceRepository handles resource database operations
// Database: planning.db (resources table)
type ResourceRepository struct {
	db       *sql.DB
	defaults Defaults
	log      zerolog.Logger
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *sql.DB, defaults Defaults, log zerolog.Logger) *ResourceRepository {
	return &ResourceRepository{
		db:       db,
		defaults: defaults,
		log:      log.With().Str("repo", "resources").Logger(),
	}
}

const resourceColumns = "id, name, role, department, weekly_capacity_hours, non_project_hours_per_week, active"

// ListActiveResources returns all active resources ordered by id
func (r *ResourceRepository) ListActiveResources() ([]capacity.Resource, error) {
	rows, err := r.db.Query("SELECT " + resourceColumns + " FROM resources WHERE active = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query active resources: %w", err)
	}
	defer rows.Close()

	var resources []capacity.Resource
	for rows.Next() {
		res, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resources: %w", err)
	}

	return resources, nil
}

// GetResourceByID returns a resource regardless of its active flag.
// Unknown ids yield an error wrapping capacity.ErrResourceNotFound.
func (r *ResourceRepository) GetResourceByID(id string) (*capacity.Resource, error) {
	row := r.db.QueryRow("SELECT "+resourceColumns+" FROM resources WHERE id = ?", id)
	res, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", capacity.ErrResourceNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *ResourceRepository) scan(s scanner) (capacity.Resource, error) {
	var res capacity.Resource
	var weekly, overhead sql.NullFloat64
	var active int

	if err := s.Scan(&res.ID, &res.Name, &res.Role, &res.Department, &weekly, &overhead, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return res, err
		}
		return res, fmt.Errorf("failed to scan resource: %w", err)
	}

	res.WeeklyCapacityHours = r.defaults.WeeklyCapacityHours
	if weekly.Valid {
		res.WeeklyCapacityHours = weekly.Float64
	}
	res.NonProjectHoursPerWeek = r.defaults.NonProjectHoursPerWeek
	if overhead.Valid {
		res.NonProjectHoursPerWeek = overhead.Float64
	}
	res.Active = active == 1

	return res, nil
}

// Upsert inserts or updates a resource and returns its id (generated when empty)
func (r *ResourceRepository) Upsert(rec ResourceRecord) (string, error) {
	return upsertResource(r.db, rec, r.log)
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func upsertResource(db execer, rec ResourceRecord, log zerolog.Logger) (string, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return "", fmt.Errorf("resource name is required")
	}
	if err := validateHours("weeklyCapacityHours", rec.WeeklyCapacityHours); err != nil {
		return "", err
	}
	if err := validateHours("nonProjectHoursPerWeek", rec.NonProjectHoursPerWeek); err != nil {
		return "", err
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.New().String()
	}

	active := 1
	if rec.Active != nil && !*rec.Active {
		active = 0
	}

	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO resources (id, name, role, department, weekly_capacity_hours, non_project_hours_per_week, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			department = excluded.department,
			weekly_capacity_hours = excluded.weekly_capacity_hours,
			non_project_hours_per_week = excluded.non_project_hours_per_week,
			active = excluded.active,
			updated_at = excluded.updated_at
	`, id, strings.TrimSpace(rec.Name), rec.Role, rec.Department,
		nullFloat(rec.WeeklyCapacityHours), nullFloat(rec.NonProjectHoursPerWeek), active, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to upsert resource %s: %w", id, err)
	}

	log.Debug().Str("resource_id", id).Str("name", rec.Name).Msg("Resource upserted")
	return id, nil
}

func validateHours(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > capacity.MaxHoursPerWeek {
		return fmt.Errorf("%s must be between 0 and %.0f, got %v", field, capacity.MaxHoursPerWeek, *v)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
