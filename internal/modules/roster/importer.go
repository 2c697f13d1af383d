package roster

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aristath/resourceplan/internal/database"
	"github.com/rs/zerolog"
)

// Snapshot is the JSON document accepted by the importer
type Snapshot struct {
	Resources   []ResourceRecord   `json:"resources"`
	Allocations []AllocationRecord `json:"allocations"`
}

// ImportResult counts what an import wrote
type ImportResult struct {
	Resources   int `json:"resources"`
	Allocations int `json:"allocations"`
}

// Importer loads roster snapshots into the planning store
type Importer struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewImporter creates a new snapshot importer
func NewImporter(db *sql.DB, log zerolog.Logger) *Importer {
	return &Importer{
		db:  db,
		log: log.With().Str("component", "importer").Logger(),
	}
}

// ImportJSON decodes a snapshot from r and imports it
func (i *Importer) ImportJSON(r io.Reader) (*ImportResult, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return i.Import(snap)
}

// Import upserts every resource, then every allocation, in a single transaction.
// Any invalid record aborts the whole import.
func (i *Importer) Import(snap Snapshot) (*ImportResult, error) {
	result := &ImportResult{}

	err := database.WithTransaction(i.db, func(tx *sql.Tx) error {
		for idx, rec := range snap.Resources {
			if _, err := upsertResource(tx, rec, i.log); err != nil {
				return fmt.Errorf("resource #%d: %w", idx, err)
			}
			result.Resources++
		}
		for idx, rec := range snap.Allocations {
			if _, err := upsertAllocation(tx, rec, i.log); err != nil {
				return fmt.Errorf("allocation #%d: %w", idx, err)
			}
			result.Allocations++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	i.log.Info().
		Int("resources", result.Resources).
		Int("allocations", result.Allocations).
		Msg("Roster snapshot imported")

	return result, nil
}
