// Package capacity computes resource utilization over a reporting period and
// classifies resources into alert categories.
//
// Every computation is a pure fold over a snapshot read from a ResourceProvider:
// nothing is cached, nothing is written, and identical inputs (including the
// injected Clock) produce identical output.
package capacity

const (
	// DefaultWeeklyCapacityHours is the nominal capacity assumed when a resource has none recorded.
	DefaultWeeklyCapacityHours = 40.0
	// DefaultNonProjectHoursPerWeek is the recurring overhead assumed when none is recorded.
	DefaultNonProjectHoursPerWeek = 8.0
	// MaxHoursPerWeek bounds a single allocation's hours in one week (24x7).
	MaxHoursPerWeek = 168.0
)

// Resource is a person (or role) whose capacity is planned.
type Resource struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Role                   string  `json:"role"`
	Department             string  `json:"department"`
	WeeklyCapacityHours    float64 `json:"weeklyCapacityHours"`
	NonProjectHoursPerWeek float64 `json:"nonProjectHoursPerWeek"`
	Active                 bool    `json:"active"`
}

// AllocationStatus is the lifecycle state of an allocation.
type AllocationStatus string

const (
	AllocationActive   AllocationStatus = "active"
	AllocationInactive AllocationStatus = "inactive"
)

// Allocation assigns a resource to a project for a set of ISO weeks.
type Allocation struct {
	ID          string             `json:"id"`
	ResourceID  string             `json:"resourceId"`
	ProjectID   string             `json:"projectId"`
	Status      AllocationStatus   `json:"status"`
	WeeklyHours map[WeekID]float64 `json:"weeklyHours"`
}

// IsActive reports whether the allocation contributes to utilization.
func (a Allocation) IsActive() bool {
	return a.Status == AllocationActive
}

// AlertResource is one resource's utilization for the requested period.
type AlertResource struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Role               string   `json:"role"`
	Department         string   `json:"department"`
	AllocatedHours     float64  `json:"allocatedHours"`
	CapacityHours      float64  `json:"capacityHours"`
	UtilizationPercent int      `json:"utilizationPercent"`
	Saturated          bool     `json:"saturated,omitempty"`
	Category           Category `json:"category"`

	// Conflicts view only.
	ProjectIDs            []string `json:"projectIds,omitempty"`
	MaxConcurrentProjects int      `json:"maxConcurrentProjects,omitempty"`
}

// AlertCategory groups resources under one alert label.
type AlertCategory struct {
	Type        Category        `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Count       int             `json:"count"`
	Resources   []AlertResource `json:"resources"`
}

// PeriodInfo describes the resolved reporting period.
type PeriodInfo struct {
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	PeriodType    PeriodType `json:"periodType"`
	WeekCount     int        `json:"weekCount"`
	Weeks         []WeekID   `json:"weeks"`
	Adjusted      bool       `json:"adjusted"`
	ExcludedWeeks []WeekID   `json:"excludedWeeks,omitempty"`
}

// AlertSummary holds top-level counts. TotalAlerts excludes the conflicts tag,
// which overlaps the mutually exclusive categories.
type AlertSummary struct {
	TotalAlerts        int     `json:"totalAlerts"`
	CriticalCount      int     `json:"criticalCount"`
	WarningCount       int     `json:"warningCount"`
	InfoCount          int     `json:"infoCount"`
	UnassignedCount    int     `json:"unassignedCount"`
	UntappedCount      int     `json:"untappedCount"`
	ConflictsCount     int     `json:"conflictsCount"`
	ResourceCount      int     `json:"resourceCount"`
	AverageUtilization float64 `json:"averageUtilization"`
	MedianUtilization  float64 `json:"medianUtilization"`
	UtilizationStdDev  float64 `json:"utilizationStdDev"`
}

// AlertsResponse is the result of an alerts computation.
type AlertsResponse struct {
	Categories []AlertCategory `json:"categories"`
	Summary    AlertSummary    `json:"summary"`
	Period     PeriodInfo      `json:"period"`
	Thresholds Thresholds      `json:"thresholds"`
}
