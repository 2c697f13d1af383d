package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alloc(id, resourceID, projectID string, hours map[WeekID]float64) Allocation {
	return Allocation{ID: id, ResourceID: resourceID, ProjectID: projectID, Status: AllocationActive, WeeklyHours: hours}
}

func TestAggregateAllocations(t *testing.T) {
	weeks := []WeekID{"2025-W10", "2025-W11"}
	allocations := []Allocation{
		alloc("a1", "r1", "p1", map[WeekID]float64{"2025-W10": 20, "2025-W11": 10, "2025-W12": 40}),
		alloc("a2", "r1", "p2", map[WeekID]float64{"2025-W10": 12.5}),
		alloc("a3", "r2", "p1", map[WeekID]float64{"2025-W11": 8}),
		alloc("a4", "r2", "p3", map[WeekID]float64{"2025-W10": 0, "2025-W09": 30}),
		{ID: "a5", ResourceID: "r2", ProjectID: "p4", Status: AllocationInactive, WeeklyHours: map[WeekID]float64{"2025-W11": 99}},
	}

	usage := AggregateAllocations(allocations, weeks)
	require.Len(t, usage, 2)

	r1 := usage["r1"]
	assert.Equal(t, 42.5, r1.AllocatedHours)
	assert.Equal(t, 32.5, r1.HoursForWeek("2025-W10"))
	assert.Equal(t, 10.0, r1.HoursForWeek("2025-W11"))
	assert.Equal(t, 0.0, r1.HoursForWeek("2025-W12"), "weeks outside the period are ignored")
	assert.Equal(t, []string{"p1", "p2"}, r1.ProjectIDs)
	assert.Equal(t, 2, r1.MaxConcurrentProjects)
	assert.True(t, r1.HasConflict())

	r2 := usage["r2"]
	assert.Equal(t, 8.0, r2.AllocatedHours)
	assert.Equal(t, []string{"p1"}, r2.ProjectIDs, "zero-hour and inactive allocations do not count as projects")
	assert.Equal(t, 1, r2.MaxConcurrentProjects)
	assert.False(t, r2.HasConflict())
}

func TestAggregateAllocations_SameProjectTwiceIsNoConflict(t *testing.T) {
	weeks := []WeekID{"2025-W10"}
	usage := AggregateAllocations([]Allocation{
		alloc("a1", "r1", "p1", map[WeekID]float64{"2025-W10": 10}),
		alloc("a2", "r1", "p1", map[WeekID]float64{"2025-W10": 5}),
	}, weeks)

	assert.Equal(t, 15.0, usage["r1"].AllocatedHours)
	assert.False(t, usage["r1"].HasConflict())
}

func TestAggregateAllocations_DifferentWeeksIsNoConflict(t *testing.T) {
	weeks := []WeekID{"2025-W10", "2025-W11"}
	usage := AggregateAllocations([]Allocation{
		alloc("a1", "r1", "p1", map[WeekID]float64{"2025-W10": 10}),
		alloc("a2", "r1", "p2", map[WeekID]float64{"2025-W11": 10}),
	}, weeks)

	assert.Equal(t, []string{"p1", "p2"}, usage["r1"].ProjectIDs)
	assert.Equal(t, 1, usage["r1"].MaxConcurrentProjects)
	assert.False(t, usage["r1"].HasConflict())
}

func TestAggregateForResource(t *testing.T) {
	weeks := []WeekID{"2025-W10"}
	allocations := []Allocation{
		alloc("a1", "r1", "p1", map[WeekID]float64{"2025-W10": 10}),
		alloc("a2", "r2", "p1", map[WeekID]float64{"2025-W10": 30}),
	}

	u := AggregateForResource("r1", allocations, weeks)
	assert.Equal(t, 10.0, u.AllocatedHours)

	none := AggregateForResource("r9", allocations, weeks)
	require.NotNil(t, none)
	assert.Equal(t, "r9", none.ResourceID)
	assert.Equal(t, 0.0, none.AllocatedHours)
}

func TestResourceUsage_NilSafe(t *testing.T) {
	var u *ResourceUsage
	assert.Equal(t, 0.0, u.Allocated())
	assert.Equal(t, 0.0, u.HoursForWeek("2025-W10"))
	assert.False(t, u.HasConflict())
}

func TestCapacity(t *testing.T) {
	r := Resource{WeeklyCapacityHours: 40, NonProjectHoursPerWeek: 8}
	assert.Equal(t, 32.0, EffectiveWeeklyCapacity(r))
	assert.Equal(t, 32.0, PeriodCapacity(r, 1))
	assert.Equal(t, 128.0, PeriodCapacity(r, 4))
	assert.Equal(t, 32.0, PeriodCapacity(r, 0), "week count is at least one")

	overhead := Resource{WeeklyCapacityHours: 10, NonProjectHoursPerWeek: 16}
	assert.Equal(t, 0.0, EffectiveWeeklyCapacity(overhead), "floored at zero")
}
