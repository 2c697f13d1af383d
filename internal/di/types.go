/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to handlers for access to services.
 */
package di

import (
	"github.com/aristath/resourceplan/internal/database"
	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/aristath/resourceplan/internal/modules/roster"
	"github.com/aristath/resourceplan/internal/modules/settings"
	"github.com/aristath/resourceplan/internal/scheduler"
)

/**
 * Container holds all dependencies for the application.
 *
 * Architecture:
 * - Databases: planning.db (resources, allocations, settings)
 * - Repositories: roster and settings data access
 * - Services: capacity alert engine
 */
type Container struct {
	// Databases
	PlanningDB *database.DB

	// Repositories
	SettingsRepo   *settings.Repository
	ResourceRepo   *roster.ResourceRepository
	AllocationRepo *roster.AllocationRepository
	Store          *roster.Store

	// Services
	CapacityService *capacity.Service
}

// Close releases the container's databases
func (c *Container) Close() error {
	if c == nil || c.PlanningDB == nil {
		return nil
	}
	return c.PlanningDB.Close()
}

// JobInstances holds the scheduled job instances
type JobInstances struct {
	UtilizationDigest scheduler.Job
	WALCheckpoint     scheduler.Job
}
