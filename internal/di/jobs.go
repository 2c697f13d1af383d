// Package di provides dependency injection for scheduler jobs.
package di

import (
	"fmt"

	"github.com/aristath/resourceplan/internal/config"
	"github.com/aristath/resourceplan/internal/scheduler"
	"github.com/rs/zerolog"
)

// walCheckpointSchedule runs the WAL checkpoint hourly
const walCheckpointSchedule = "0 0 * * * *"

// RegisterJobs creates the background jobs and registers them with sched.
// The digest is registered only when cfg.DigestSchedule is set.
func RegisterJobs(container *Container, cfg *config.Config, sched *scheduler.Scheduler, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	instances := &JobInstances{
		UtilizationDigest: scheduler.NewUtilizationDigestJob(container.CapacityService, log),
		WALCheckpoint:     scheduler.NewCheckWALCheckpointJob(container.PlanningDB, log),
	}

	if sched == nil {
		return instances, nil
	}

	if err := sched.AddJob(walCheckpointSchedule, instances.WALCheckpoint); err != nil {
		return nil, err
	}

	if cfg.DigestSchedule != "" {
		if err := sched.AddJob(cfg.DigestSchedule, instances.UtilizationDigest); err != nil {
			return nil, fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", cfg.DigestSchedule, err)
		}
	}

	return instances, nil
}
