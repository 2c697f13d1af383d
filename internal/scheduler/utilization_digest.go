package scheduler

import (
	"fmt"

	"github.com/aristath/resourceplan/internal/modules/capacity"
	"github.com/rs/zerolog"
)

// AlertsComputer computes capacity alerts for a period
type AlertsComputer interface {
	ComputeAlerts(q capacity.AlertsQuery) (*capacity.AlertsResponse, error)
}

// UtilizationDigestJob computes the current-week alerts and logs a summary.
// It only reads; it never modifies allocation data.
type UtilizationDigestJob struct {
	computer AlertsComputer
	log      zerolog.Logger
}

// NewUtilizationDigestJob creates a new digest job
func NewUtilizationDigestJob(computer AlertsComputer, log zerolog.Logger) *UtilizationDigestJob {
	return &UtilizationDigestJob{
		computer: computer,
		log:      log.With().Str("job", "utilization_digest").Logger(),
	}
}

// Name returns the job name
func (j *UtilizationDigestJob) Name() string {
	return "utilization_digest"
}

// Run computes the default-period alerts and logs the counts
func (j *UtilizationDigestJob) Run() error {
	resp, err := j.computer.ComputeAlerts(capacity.AlertsQuery{ForwardLooking: true})
	if err != nil {
		return fmt.Errorf("failed to compute utilization digest: %w", err)
	}

	event := j.log.Info()
	if resp.Summary.CriticalCount > 0 {
		event = j.log.Warn()
	}

	event.
		Str("start", resp.Period.StartDate).
		Str("end", resp.Period.EndDate).
		Int("resources", resp.Summary.ResourceCount).
		Int("critical", resp.Summary.CriticalCount).
		Int("warning", resp.Summary.WarningCount).
		Int("info", resp.Summary.InfoCount).
		Int("unassigned", resp.Summary.UnassignedCount).
		Int("untapped", resp.Summary.UntappedCount).
		Int("conflicts", resp.Summary.ConflictsCount).
		Float64("avg_utilization", resp.Summary.AverageUtilization).
		Msg("Utilization digest")

	return nil
}
