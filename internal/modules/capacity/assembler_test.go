package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, name string, pct int, cat Category) AlertResource {
	return AlertResource{ID: id, Name: name, UtilizationPercent: pct, Category: cat}
}

func testPeriod(t *testing.T) Period {
	p, err := ResolvePeriod("2025-03-03", "2025-03-09", resolveOpts(outsideNow))
	require.NoError(t, err)
	return p
}

func categoryByType(resp *AlertsResponse, cat Category) *AlertCategory {
	for i := range resp.Categories {
		if resp.Categories[i].Type == cat {
			return &resp.Categories[i]
		}
	}
	return nil
}

func TestAssembleAlerts(t *testing.T) {
	entries := []AlertResource{
		entry("r1", "Alice", 113, CategoryCritical),
		entry("r2", "Bob", 88, CategoryWarning),
		entry("r3", "Carol", 57, CategoryUntapped),
		entry("r4", "Dan", 0, CategoryUnassigned),
		entry("r5", "Eve", 75, CategoryInfo),
	}
	conflict := entries[0]
	conflict.ProjectIDs = []string{"p1", "p2"}
	conflict.MaxConcurrentProjects = 2

	resp := AssembleAlerts(entries, []AlertResource{conflict}, testPeriod(t), DefaultThresholds())

	var types []Category
	for _, c := range resp.Categories {
		types = append(types, c.Type)
		assert.Equal(t, len(c.Resources), c.Count)
		assert.NotEmpty(t, c.Title)
	}
	assert.Equal(t, []Category{
		CategoryCritical, CategoryWarning, CategoryInfo, CategoryUnassigned, CategoryUntapped, CategoryConflicts,
	}, types)

	s := resp.Summary
	assert.Equal(t, 5, s.TotalAlerts, "conflicts tag is not counted in total")
	assert.Equal(t, 1, s.CriticalCount)
	assert.Equal(t, 1, s.WarningCount)
	assert.Equal(t, 1, s.InfoCount)
	assert.Equal(t, 1, s.UnassignedCount)
	assert.Equal(t, 1, s.UntappedCount)
	assert.Equal(t, 1, s.ConflictsCount)
	assert.Equal(t, 5, s.ResourceCount)
	assert.Equal(t, 66.6, s.AverageUtilization)
	assert.Equal(t, 75.0, s.MedianUtilization)
	assert.Equal(t, 38.0, s.UtilizationStdDev)

	assert.Equal(t, "2025-03-03", resp.Period.StartDate)
	assert.Equal(t, DefaultThresholds(), resp.Thresholds)
}

func TestAssembleAlerts_Descriptions(t *testing.T) {
	entries := []AlertResource{
		entry("r3", "Carol", 57, CategoryUntapped),
		entry("r5", "Eve", 75, CategoryInfo),
	}

	resp := AssembleAlerts(entries, nil, testPeriod(t), DefaultThresholds())

	info := categoryByType(resp, CategoryInfo)
	require.NotNil(t, info)
	assert.Equal(t, "Resources allocated at or below 80% of their capacity that do not qualify as untapped", info.Description)

	untapped := categoryByType(resp, CategoryUntapped)
	require.NotNil(t, untapped)
	assert.Equal(t, "Resources below 70% utilization with at least 35h of weekly capacity available for new work", untapped.Description)
}

func TestAssembleAlerts_Exclusivity(t *testing.T) {
	entries := []AlertResource{
		entry("r1", "A", 120, CategoryCritical),
		entry("r2", "B", 130, CategoryCritical),
		entry("r3", "C", 90, CategoryWarning),
		entry("r4", "D", 0, CategoryUnassigned),
	}
	resp := AssembleAlerts(entries, nil, testPeriod(t), DefaultThresholds())

	seen := make(map[string]int)
	for _, c := range resp.Categories {
		for _, r := range c.Resources {
			seen[r.ID]++
		}
	}
	for _, e := range entries {
		assert.Equal(t, 1, seen[e.ID], "resource %s", e.ID)
	}
	assert.Equal(t, len(entries), resp.Summary.TotalAlerts)
}

func TestAssembleAlerts_OmitsEmptyCategories(t *testing.T) {
	resp := AssembleAlerts([]AlertResource{entry("r1", "A", 0, CategoryUnassigned)}, nil, testPeriod(t), DefaultThresholds())

	require.Len(t, resp.Categories, 1)
	assert.Equal(t, CategoryUnassigned, resp.Categories[0].Type)
	assert.Equal(t, 0, resp.Summary.CriticalCount)
	assert.Nil(t, categoryByType(resp, CategoryConflicts))
}

func TestAssembleAlerts_Empty(t *testing.T) {
	resp := AssembleAlerts(nil, nil, testPeriod(t), DefaultThresholds())

	assert.NotNil(t, resp.Categories)
	assert.Empty(t, resp.Categories)
	assert.Equal(t, 0, resp.Summary.TotalAlerts)
	assert.Equal(t, 0.0, resp.Summary.AverageUtilization)
}

func TestAssembleAlerts_Ordering(t *testing.T) {
	entries := []AlertResource{
		entry("r1", "Zed", 120, CategoryCritical),
		entry("r2", "Amy", 150, CategoryCritical),
		entry("r3", "Bea", 120, CategoryCritical),
		entry("r4", "Cal", 40, CategoryInfo),
		entry("r5", "Dee", 20, CategoryInfo),
		entry("r6", "Amy", 20, CategoryInfo),
	}
	c1 := entries[0]
	c1.MaxConcurrentProjects = 2
	c2 := entries[3]
	c2.MaxConcurrentProjects = 3

	resp := AssembleAlerts(entries, []AlertResource{c1, c2}, testPeriod(t), DefaultThresholds())

	ids := func(cat Category) []string {
		var out []string
		for _, r := range categoryByType(resp, cat).Resources {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids(CategoryCritical), "highest first, ties by name")
	assert.Equal(t, []string{"r6", "r5", "r4"}, ids(CategoryInfo), "lowest first, ties by name")
	assert.Equal(t, []string{"r4", "r1"}, ids(CategoryConflicts), "most concurrent projects first")
}
