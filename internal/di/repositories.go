// Package di provides dependency injection for repository implementations.
package di

import (
	"fmt"

	"github.com/aristath/resourceplan/internal/config"
	"github.com/aristath/resourceplan/internal/modules/roster"
	"github.com/aristath/resourceplan/internal/modules/settings"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates all repositories and applies settings overrides to cfg
func InitializeRepositories(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	conn := container.PlanningDB.Conn()

	container.SettingsRepo = settings.NewRepository(conn, log)
	if err := cfg.UpdateFromSettings(container.SettingsRepo); err != nil {
		return fmt.Errorf("failed to apply settings overrides: %w", err)
	}

	defaults := roster.Defaults{
		WeeklyCapacityHours:    cfg.DefaultWeeklyCapacityHours,
		NonProjectHoursPerWeek: cfg.DefaultNonProjectHours,
	}
	container.ResourceRepo = roster.NewResourceRepository(conn, defaults, log)
	container.AllocationRepo = roster.NewAllocationRepository(conn, log)
	container.Store = roster.NewStore(container.ResourceRepo, container.AllocationRepo)

	return nil
}
