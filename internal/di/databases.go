// Package di provides dependency injection for database connections.
package di

import (
	"fmt"

	"github.com/aristath/resourceplan/internal/config"
	"github.com/aristath/resourceplan/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens planning.db and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	planningDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "planning",
		Driver:  cfg.DBDriver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize planning database: %w", err)
	}

	if err := planningDB.Migrate(); err != nil {
		planningDB.Close()
		return nil, fmt.Errorf("failed to migrate planning database: %w", err)
	}
	container.PlanningDB = planningDB

	log.Info().
		Str("path", planningDB.Path()).
		Str("driver", planningDB.Driver()).
		Msg("Planning database initialized")

	return container, nil
}
