package capacity

import (
	"fmt"
	"math"
)

// Category is an alert label.
type Category string

const (
	CategoryCritical   Category = "critical"
	CategoryWarning    Category = "warning"
	CategoryInfo       Category = "info"
	CategoryUnassigned Category = "unassigned"
	CategoryUntapped   Category = "untapped"
	// CategoryConflicts is an orthogonal tag, not part of the exclusive set.
	CategoryConflicts Category = "conflicts"
)

// Thresholds are the categorization cut points.
//
//	critical:   utilization >  CriticalAbovePct
//	warning:    WarningAbovePct < utilization <= CriticalAbovePct
//	untapped:   utilization < UntappedBelowPct and effective weekly capacity >= HighCapacityFloorHours
//	info:       everything else with hours allocated
type Thresholds struct {
	UntappedBelowPct       float64 `json:"untappedBelowPct"`
	WarningAbovePct        float64 `json:"warningAbovePct"`
	CriticalAbovePct       float64 `json:"criticalAbovePct"`
	HighCapacityFloorHours float64 `json:"highCapacityFloorHours"`
}

// DefaultThresholds returns the 70/80/100% and 35h policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		UntappedBelowPct:       70,
		WarningAbovePct:        80,
		CriticalAbovePct:       100,
		HighCapacityFloorHours: 35,
	}
}

// Validate checks that the cut points are ordered and non-negative.
func (t Thresholds) Validate() error {
	if t.UntappedBelowPct < 0 || t.WarningAbovePct < 0 || t.CriticalAbovePct < 0 {
		return fmt.Errorf("thresholds must be non-negative")
	}
	if t.UntappedBelowPct > t.WarningAbovePct {
		return fmt.Errorf("untapped threshold %.0f%% exceeds warning threshold %.0f%%", t.UntappedBelowPct, t.WarningAbovePct)
	}
	if t.WarningAbovePct > t.CriticalAbovePct {
		return fmt.Errorf("warning threshold %.0f%% exceeds critical threshold %.0f%%", t.WarningAbovePct, t.CriticalAbovePct)
	}
	if t.HighCapacityFloorHours < 0 {
		return fmt.Errorf("high-capacity floor must be non-negative")
	}
	return nil
}

// UtilizationPercent returns round(allocated / capacity * 100).
// With zero capacity the result is 0 when nothing is allocated; otherwise the
// resource is saturated and 100 is reported alongside saturated=true.
func UtilizationPercent(allocatedHours, capacityHours float64) (percent int, saturated bool) {
	if capacityHours <= 0 {
		if allocatedHours <= 0 {
			return 0, false
		}
		return 100, true
	}
	return int(math.Round(allocatedHours / capacityHours * 100)), false
}

// Classification is the Categorizer's verdict for one resource.
type Classification struct {
	Category           Category
	UtilizationPercent int
	Saturated          bool
}

// Categorize assigns exactly one exclusive category. First match wins:
// unassigned, critical, warning, untapped, info.
func Categorize(allocatedHours, capacityHours, effectiveWeeklyCapacity float64, t Thresholds) Classification {
	pct, saturated := UtilizationPercent(allocatedHours, capacityHours)
	c := Classification{UtilizationPercent: pct, Saturated: saturated}

	u := float64(pct)
	switch {
	case allocatedHours <= 0:
		c.Category = CategoryUnassigned
	case saturated || u > t.CriticalAbovePct:
		c.Category = CategoryCritical
	case u > t.WarningAbovePct:
		c.Category = CategoryWarning
	case u < t.UntappedBelowPct && effectiveWeeklyCapacity >= t.HighCapacityFloorHours:
		c.Category = CategoryUntapped
	default:
		c.Category = CategoryInfo
	}
	return c
}
