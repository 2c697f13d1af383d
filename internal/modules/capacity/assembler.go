package capacity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// exclusiveCategories is the display order of the mutually exclusive categories.
var exclusiveCategories = []Category{
	CategoryCritical,
	CategoryWarning,
	CategoryInfo,
	CategoryUnassigned,
	CategoryUntapped,
}

// AssembleAlerts groups classified resources into categories and computes the summary.
// Only non-empty categories are listed; the summary always carries every count.
// conflicts holds resources tagged with concurrent project work and may overlap entries.
func AssembleAlerts(entries []AlertResource, conflicts []AlertResource, period Period, t Thresholds) *AlertsResponse {
	grouped := make(map[Category][]AlertResource, len(exclusiveCategories))
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	resp := &AlertsResponse{
		Categories: []AlertCategory{},
		Period:     period.Info(),
		Thresholds: t,
	}

	for _, cat := range exclusiveCategories {
		members := grouped[cat]
		sortCategory(cat, members)

		switch cat {
		case CategoryCritical:
			resp.Summary.CriticalCount = len(members)
		case CategoryWarning:
			resp.Summary.WarningCount = len(members)
		case CategoryInfo:
			resp.Summary.InfoCount = len(members)
		case CategoryUnassigned:
			resp.Summary.UnassignedCount = len(members)
		case CategoryUntapped:
			resp.Summary.UntappedCount = len(members)
		}
		resp.Summary.TotalAlerts += len(members)

		if len(members) == 0 {
			continue
		}
		title, description := describeCategory(cat, t)
		resp.Categories = append(resp.Categories, AlertCategory{
			Type:        cat,
			Title:       title,
			Description: description,
			Count:       len(members),
			Resources:   members,
		})
	}

	if len(conflicts) > 0 {
		tagged := make([]AlertResource, len(conflicts))
		copy(tagged, conflicts)
		sortCategory(CategoryConflicts, tagged)
		title, description := describeCategory(CategoryConflicts, t)
		resp.Categories = append(resp.Categories, AlertCategory{
			Type:        CategoryConflicts,
			Title:       title,
			Description: description,
			Count:       len(tagged),
			Resources:   tagged,
		})
	}
	resp.Summary.ConflictsCount = len(conflicts)

	resp.Summary.ResourceCount = len(entries)
	stats := utilizationStats(entries)
	resp.Summary.AverageUtilization = stats.mean
	resp.Summary.MedianUtilization = stats.median
	resp.Summary.UtilizationStdDev = stats.stdDev

	return resp
}

type spread struct {
	mean, median, stdDev float64
}

// utilizationStats returns mean, median and population standard deviation of
// utilization, rounded to one decimal.
func utilizationStats(entries []AlertResource) spread {
	if len(entries) == 0 {
		return spread{}
	}
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = float64(e.UtilizationPercent)
	}
	sort.Float64s(values)

	mean, std := stat.PopMeanStdDev(values, nil)
	var median float64
	if len(values)%2 == 1 {
		median = values[len(values)/2]
	} else {
		median = (values[len(values)/2-1] + values[len(values)/2]) / 2
	}
	return spread{mean: round(mean, 1), median: round(median, 1), stdDev: round(std, 1)}
}

// sortCategory orders members so the most actionable entries come first.
// Ties fall back to name then id, which keeps output deterministic.
func sortCategory(cat Category, members []AlertResource) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		switch cat {
		case CategoryCritical, CategoryWarning:
			if a.UtilizationPercent != b.UtilizationPercent {
				return a.UtilizationPercent > b.UtilizationPercent
			}
		case CategoryInfo, CategoryUntapped:
			if a.UtilizationPercent != b.UtilizationPercent {
				return a.UtilizationPercent < b.UtilizationPercent
			}
		case CategoryConflicts:
			if a.MaxConcurrentProjects != b.MaxConcurrentProjects {
				return a.MaxConcurrentProjects > b.MaxConcurrentProjects
			}
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func describeCategory(cat Category, t Thresholds) (title, description string) {
	switch cat {
	case CategoryCritical:
		return "Overallocated",
			fmt.Sprintf("Resources allocated above %.0f%% of their capacity", t.CriticalAbovePct)
	case CategoryWarning:
		return "Near capacity",
			fmt.Sprintf("Resources allocated between %.0f%% and %.0f%% of their capacity", t.WarningAbovePct, t.CriticalAbovePct)
	case CategoryInfo:
		return "Under-utilized",
			fmt.Sprintf("Resources allocated at or below %.0f%% of their capacity that do not qualify as untapped", t.WarningAbovePct)
	case CategoryUnassigned:
		return "Unassigned",
			"Resources with no allocated hours in this period"
	case CategoryUntapped:
		return "Untapped capacity",
			fmt.Sprintf("Resources below %.0f%% utilization with at least %.0fh of weekly capacity available for new work",
				t.UntappedBelowPct, t.HighCapacityFloorHours)
	case CategoryConflicts:
		return "Concurrent projects",
			"Resources holding hours on more than one project in the same week"
	}
	return string(cat), ""
}
