package testing

import (
	"github.com/aristath/resourceplan/internal/modules/capacity"
)

// NewResourceFixture returns an active resource with the given weekly figures
func NewResourceFixture(id, name string, weekly, nonProject float64) capacity.Resource {
	return capacity.Resource{
		ID:                     id,
		Name:                   name,
		Role:                   "Engineer",
		Department:             "Engineering",
		WeeklyCapacityHours:    weekly,
		NonProjectHoursPerWeek: nonProject,
		Active:                 true,
	}
}

// NewAllocationFixture returns an active allocation with the given weekly hours
func NewAllocationFixture(id, resourceID, projectID string, hours map[capacity.WeekID]float64) capacity.Allocation {
	return capacity.Allocation{
		ID:          id,
		ResourceID:  resourceID,
		ProjectID:   projectID,
		Status:      capacity.AllocationActive,
		WeeklyHours: hours,
	}
}

// NewTeamFixtures returns a small team covering every alert category for week 2025-W10
// (2025-03-03..2025-03-09) under the default thresholds:
//   - r1 Alice: 40h/8h, 36h allocated -> 113% critical
//   - r2 Bob: 40h/8h, 28h allocated -> 88% warning
//   - r3 Carol: 40h/5h, 20h allocated -> 57% untapped
//   - r4 Dan: 40h/8h, nothing allocated -> unassigned
//   - r5 Eve: 20h/4h, 12h allocated -> 75% info (below the high-capacity floor)
func NewTeamFixtures() ([]capacity.Resource, []capacity.Allocation) {
	resources := []capacity.Resource{
		NewResourceFixture("r1", "Alice", 40, 8),
		NewResourceFixture("r2", "Bob", 40, 8),
		NewResourceFixture("r3", "Carol", 40, 5),
		NewResourceFixture("r4", "Dan", 40, 8),
		NewResourceFixture("r5", "Eve", 20, 4),
	}
	resources[4].Department = "Design"

	const week capacity.WeekID = "2025-W10"
	allocations := []capacity.Allocation{
		NewAllocationFixture("a1", "r1", "p1", map[capacity.WeekID]float64{week: 20}),
		NewAllocationFixture("a2", "r1", "p2", map[capacity.WeekID]float64{week: 16}),
		NewAllocationFixture("a3", "r2", "p1", map[capacity.WeekID]float64{week: 28}),
		NewAllocationFixture("a4", "r3", "p3", map[capacity.WeekID]float64{week: 20}),
		NewAllocationFixture("a5", "r5", "p3", map[capacity.WeekID]float64{week: 12}),
	}
	return resources, allocations
}
