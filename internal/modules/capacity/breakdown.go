package capacity

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ParseBucketType validates a breakdown bucket size; empty means week.
func ParseBucketType(s string) (PeriodType, error) {
	switch PeriodType(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodQuarter:
		return PeriodQuarter, nil
	}
	return "", fmt.Errorf("%w: unsupported periodType %q (expected week, month or quarter)", ErrInvalidPeriod, s)
}

// ResourceInfo identifies the resource a breakdown belongs to.
type ResourceInfo struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Role                    string  `json:"role"`
	Department              string  `json:"department"`
	WeeklyCapacityHours     float64 `json:"weeklyCapacityHours"`
	NonProjectHoursPerWeek  float64 `json:"nonProjectHoursPerWeek"`
	EffectiveWeeklyCapacity float64 `json:"effectiveWeeklyCapacity"`
}

// BreakdownPeriod is one display bucket of a breakdown.
type BreakdownPeriod struct {
	Label              string   `json:"label"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	Weeks              []WeekID `json:"weeks"`
	AllocatedHours     float64  `json:"allocatedHours"`
	CapacityHours      float64  `json:"capacityHours"`
	UtilizationPercent int      `json:"utilizationPercent"`
	Saturated          bool     `json:"saturated,omitempty"`
}

// BreakdownSummary aggregates across buckets.
type BreakdownSummary struct {
	OverallUtilization  int     `json:"overallUtilization"`
	TotalPeriods        int     `json:"totalPeriods"`
	TotalAllocatedHours float64 `json:"totalAllocatedHours"`
	TotalCapacityHours  float64 `json:"totalCapacityHours"`
	AverageUtilization  float64 `json:"averageUtilization"`
	PeakUtilization     int     `json:"peakUtilization"`
	PeakPeriod          string  `json:"peakPeriod"`
}

// Breakdown is the per-bucket utilization table of one resource.
type Breakdown struct {
	Resource   ResourceInfo      `json:"resource"`
	PeriodType PeriodType        `json:"periodType"`
	Period     PeriodInfo        `json:"period"`
	Periods    []BreakdownPeriod `json:"periods"`
	Summary    BreakdownSummary  `json:"summary"`
}

// bucketLabel names the bucket a week belongs to. Weeks are assigned to
// months and quarters by their Monday, matching how periods select weeks.
func bucketLabel(w Week, bucket PeriodType) string {
	switch bucket {
	case PeriodMonth:
		return w.Monday.Format("2006-01")
	case PeriodQuarter:
		return fmt.Sprintf("%d-Q%d", w.Monday.Year(), (int(w.Monday.Month())-1)/3+1)
	default:
		return string(w.ID)
	}
}

// BuildBreakdown re-buckets the period's weeks and computes utilization per bucket.
func BuildBreakdown(r Resource, usage *ResourceUsage, period Period, bucket PeriodType) *Breakdown {
	effective := EffectiveWeeklyCapacity(r)

	var periods []BreakdownPeriod
	var current *BreakdownPeriod
	for _, w := range period.Weeks {
		label := bucketLabel(w, bucket)
		if current == nil || current.Label != label {
			periods = append(periods, BreakdownPeriod{
				Label:     label,
				StartDate: w.Monday.Format(DateLayout),
			})
			current = &periods[len(periods)-1]
		}
		current.Weeks = append(current.Weeks, w.ID)
		current.EndDate = w.Monday.AddDate(0, 0, 6).Format(DateLayout)
		current.AllocatedHours += usage.HoursForWeek(w.ID)
		current.CapacityHours += effective
	}

	summary := BreakdownSummary{TotalPeriods: len(periods)}
	utilizations := make([]float64, 0, len(periods))
	var totalAllocated, totalCapacity float64
	for i := range periods {
		p := &periods[i]
		totalAllocated += p.AllocatedHours
		totalCapacity += p.CapacityHours

		p.UtilizationPercent, p.Saturated = UtilizationPercent(p.AllocatedHours, p.CapacityHours)
		p.AllocatedHours = round(p.AllocatedHours, 2)
		p.CapacityHours = round(p.CapacityHours, 2)
		utilizations = append(utilizations, float64(p.UtilizationPercent))

		if i == 0 || p.UtilizationPercent > summary.PeakUtilization {
			summary.PeakUtilization = p.UtilizationPercent
			summary.PeakPeriod = p.Label
		}
	}

	summary.OverallUtilization, _ = UtilizationPercent(totalAllocated, totalCapacity)
	summary.TotalAllocatedHours = round(totalAllocated, 2)
	summary.TotalCapacityHours = round(totalCapacity, 2)
	if len(utilizations) > 0 {
		summary.AverageUtilization = round(stat.Mean(utilizations, nil), 1)
	}

	return &Breakdown{
		Resource: ResourceInfo{
			ID:                      r.ID,
			Name:                    r.Name,
			Role:                    r.Role,
			Department:              r.Department,
			WeeklyCapacityHours:     r.WeeklyCapacityHours,
			NonProjectHoursPerWeek:  r.NonProjectHoursPerWeek,
			EffectiveWeeklyCapacity: effective,
		},
		PeriodType: bucket,
		Period:     period.Info(),
		Periods:    periods,
		Summary:    summary,
	}
}
