package capacity

import "sort"

// ResourceUsage is a resource's allocated hours within a resolved period.
type ResourceUsage struct {
	ResourceID     string
	AllocatedHours float64
	WeeklyHours    map[WeekID]float64
	// ProjectIDs lists distinct projects with hours in the period, sorted.
	ProjectIDs []string
	// MaxConcurrentProjects is the largest number of distinct projects
	// holding hours in any single week of the period.
	MaxConcurrentProjects int
}

// HasConflict reports whether the resource worked on more than one project in the same week.
func (u *ResourceUsage) HasConflict() bool {
	return u != nil && u.MaxConcurrentProjects > 1
}

// Allocated returns the period total, treating a nil usage as zero hours.
func (u *ResourceUsage) Allocated() float64 {
	if u == nil {
		return 0
	}
	return u.AllocatedHours
}

// HoursForWeek returns the hours allocated in one week (zero when absent).
func (u *ResourceUsage) HoursForWeek(id WeekID) float64 {
	if u == nil {
		return 0
	}
	return u.WeeklyHours[id]
}

// AggregateAllocations sums active allocation hours per resource over the given weeks.
// Week entries outside the period are ignored; weeks without entries count as zero.
// Hours are trusted as already clamped to [0, MaxHoursPerWeek] by the store.
func AggregateAllocations(allocations []Allocation, weeks []WeekID) map[string]*ResourceUsage {
	usage := make(map[string]*ResourceUsage)
	projects := make(map[string]map[string]struct{})
	weekProjects := make(map[string]map[WeekID]map[string]struct{})

	for _, alloc := range allocations {
		if !alloc.IsActive() {
			continue
		}

		u, ok := usage[alloc.ResourceID]
		if !ok {
			u = &ResourceUsage{
				ResourceID:  alloc.ResourceID,
				WeeklyHours: make(map[WeekID]float64),
			}
			usage[alloc.ResourceID] = u
			projects[alloc.ResourceID] = make(map[string]struct{})
			weekProjects[alloc.ResourceID] = make(map[WeekID]map[string]struct{})
		}

		// Walk the period rather than the map so float sums are order-stable.
		for _, week := range weeks {
			hours := alloc.WeeklyHours[week]
			if hours <= 0 {
				continue
			}
			u.AllocatedHours += hours
			u.WeeklyHours[week] += hours

			projects[alloc.ResourceID][alloc.ProjectID] = struct{}{}
			wp := weekProjects[alloc.ResourceID]
			if wp[week] == nil {
				wp[week] = make(map[string]struct{})
			}
			wp[week][alloc.ProjectID] = struct{}{}
		}
	}

	for id, u := range usage {
		for p := range projects[id] {
			u.ProjectIDs = append(u.ProjectIDs, p)
		}
		sort.Strings(u.ProjectIDs)

		for _, ps := range weekProjects[id] {
			if len(ps) > u.MaxConcurrentProjects {
				u.MaxConcurrentProjects = len(ps)
			}
		}
	}

	return usage
}

// AggregateForResource is AggregateAllocations restricted to one resource.
func AggregateForResource(resourceID string, allocations []Allocation, weeks []WeekID) *ResourceUsage {
	own := make([]Allocation, 0, len(allocations))
	for _, a := range allocations {
		if a.ResourceID == resourceID {
			own = append(own, a)
		}
	}
	if u, ok := AggregateAllocations(own, weeks)[resourceID]; ok {
		return u
	}
	return &ResourceUsage{ResourceID: resourceID, WeeklyHours: map[WeekID]float64{}}
}
