// Package di provides dependency injection for service implementations.
package di

import (
	"fmt"

	"github.com/aristath/resourceplan/internal/config"
	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/rs/zerolog"
)

// InitializeServices creates the capacity alert engine
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.Store == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	container.CapacityService = capacity.NewService(
		container.Store,
		capacity.SystemClock{},
		capacity.ServiceConfig{
			Thresholds: cfg.Thresholds,
			Awareness:  cfg.CurrentDateAwareness,
		},
		log,
	)

	log.Info().
		Float64("untapped_below_pct", cfg.Thresholds.UntappedBelowPct).
		Float64("warning_above_pct", cfg.Thresholds.WarningAbovePct).
		Float64("critical_above_pct", cfg.Thresholds.CriticalAbovePct).
		Float64("high_capacity_floor_hours", cfg.Thresholds.HighCapacityFloorHours).
		Str("current_date_awareness", string(cfg.CurrentDateAwareness)).
		Msg("Capacity service initialized")

	return nil
}
