package roster

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// AllocationRecord is an allocation as written to the store.
// Week keys are "YYYY-Www"; hours are clamped to [0, 168] on write.
type AllocationRecord struct {
	ID          string             `json:"id"`
	ResourceID  string             `json:"resourceId"`
	ProjectID   string             `json:"projectId"`
	Status      string             `json:"status"`
	WeeklyHours map[string]float64 `json:"weeklyHours"`
}

// AllocationRepository handles allocation database operations
// Database: planning.db (allocations table)
type AllocationRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *sql.DB, log zerolog.Logger) *AllocationRepository {
	return &AllocationRepository{
		db:  db,
		log: log.With().Str("repo", "allocations").Logger(),
	}
}

const allocationColumns = "a.id, a.resource_id, a.project_id, a.status, a.weekly_hours"

// ListActiveAllocations returns active allocations of active resources ordered by id
func (r *AllocationRepository) ListActiveAllocations() ([]capacity.Allocation, error) {
	return r.query(`
		SELECT `+allocationColumns+`
		FROM allocations a
		JOIN resources res ON res.id = a.resource_id
		WHERE a.status = 'active' AND res.active = 1
		ORDER BY a.id
	`)
}

// ListActiveAllocationsForResource returns the active allocations of one resource ordered by id
func (r *AllocationRepository) ListActiveAllocationsForResource(resourceID string) ([]capacity.Allocation, error) {
	return r.query(`
		SELECT `+allocationColumns+`
		FROM allocations a
		WHERE a.status = 'active' AND a.resource_id = ?
		ORDER BY a.id
	`, resourceID)
}

func (r *AllocationRepository) query(query string, args ...interface{}) ([]capacity.Allocation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []capacity.Allocation
	for rows.Next() {
		var a capacity.Allocation
		var status string
		var blob []byte

		if err := rows.Scan(&a.ID, &a.ResourceID, &a.ProjectID, &status, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}

		a.Status = capacity.AllocationStatus(status)
		a.WeeklyHours, err = decodeWeeklyHours(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to decode weekly hours of allocation %s: %w", a.ID, err)
		}

		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// Upsert inserts or updates an allocation and returns its id (generated when empty)
func (r *AllocationRepository) Upsert(rec AllocationRecord) (string, error) {
	return upsertAllocation(r.db, rec, r.log)
}

func upsertAllocation(db execer, rec AllocationRecord, log zerolog.Logger) (string, error) {
	if strings.TrimSpace(rec.ResourceID) == "" {
		return "", fmt.Errorf("allocation resourceId is required")
	}
	if strings.TrimSpace(rec.ProjectID) == "" {
		return "", fmt.Errorf("allocation projectId is required")
	}

	status := capacity.AllocationStatus(strings.ToLower(strings.TrimSpace(rec.Status)))
	switch status {
	case "":
		status = capacity.AllocationActive
	case capacity.AllocationActive, capacity.AllocationInactive:
	default:
		return "", fmt.Errorf("invalid allocation status %q", rec.Status)
	}

	hours, err := normalizeWeeklyHours(rec.WeeklyHours)
	if err != nil {
		return "", err
	}
	blob, err := encodeWeeklyHours(hours)
	if err != nil {
		return "", fmt.Errorf("failed to encode weekly hours: %w", err)
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.New().String()
	}

	now := time.Now().Unix()
	_, err = db.Exec(`
		INSERT INTO allocations (id, resource_id, project_id, status, weekly_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			resource_id = excluded.resource_id,
			project_id = excluded.project_id,
			status = excluded.status,
			weekly_hours = excluded.weekly_hours,
			updated_at = excluded.updated_at
	`, id, rec.ResourceID, rec.ProjectID, string(status), blob, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to upsert allocation %s: %w", id, err)
	}

	log.Debug().
		Str("allocation_id", id).
		Str("resource_id", rec.ResourceID).
		Str("project_id", rec.ProjectID).
		Int("weeks", len(hours)).
		Msg("Allocation upserted")

	return id, nil
}

// normalizeWeeklyHours validates week keys and clamps hours to [0, 168].
func normalizeWeeklyHours(in map[string]float64) (map[capacity.WeekID]float64, error) {
	out := make(map[capacity.WeekID]float64, len(in))
	for key, hours := range in {
		week, err := capacity.ParseWeekID(strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}
		if math.IsNaN(hours) {
			return nil, fmt.Errorf("hours for %s is not a number", key)
		}
		out[week] = math.Min(math.Max(hours, 0), capacity.MaxHoursPerWeek)
	}
	return out, nil
}

func encodeWeeklyHours(hours map[capacity.WeekID]float64) ([]byte, error) {
	plain := make(map[string]float64, len(hours))
	for w, h := range hours {
		plain[string(w)] = h
	}
	return msgpack.Marshal(plain)
}

func decodeWeeklyHours(blob []byte) (map[capacity.WeekID]float64, error) {
	var plain map[string]float64
	if err := msgpack.Unmarshal(blob, &plain); err != nil {
		return nil, err
	}
	hours := make(map[capacity.WeekID]float64, len(plain))
	for w, h := range plain {
		hours[capacity.WeekID(w)] = h
	}
	return hours, nil
}
