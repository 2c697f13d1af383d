package roster

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/aristath/resourceplan/internal/testing"
)

const snapshotJSON = `{
  "resources": [
    {"id": "r1", "name": "Alice", "role": "Engineer", "department": "Engineering", "weeklyCapacityHours": 40, "nonProjectHoursPerWeek": 8},
    {"id": "r2", "name": "Bob", "department": "Design"}
  ],
  "allocations": [
    {"id": "a1", "resourceId": "r1", "projectId": "p1", "weeklyHours": {"2025-W10": 20, "2025-W11": 16}},
    {"id": "a2", "resourceId": "r2", "projectId": "p1", "status": "inactive", "weeklyHours": {"2025-W10": 8}}
  ]
}`

func TestImporter_ImportJSON(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	result, err := NewImporter(db.Conn(), zerolog.Nop()).ImportJSON(strings.NewReader(snapshotJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Resources)
	assert.Equal(t, 2, result.Allocations)

	resources := NewResourceRepository(db.Conn(), DefaultDefaults(), zerolog.Nop())
	bob, err := resources.GetResourceByID("r2")
	require.NoError(t, err)
	assert.Equal(t, 40.0, bob.WeeklyCapacityHours)

	allocations := NewAllocationRepository(db.Conn(), zerolog.Nop())
	active, err := allocations.ListActiveAllocations()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "a1", active[0].ID)
}

func TestImporter_IsIdempotent(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	importer := NewImporter(db.Conn(), zerolog.Nop())
	for i := 0; i < 2; i++ {
		_, err := importer.ImportJSON(strings.NewReader(snapshotJSON))
		require.NoError(t, err)
	}

	var count int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM allocations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestImporter_RollsBackOnInvalidRecord(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	bad := `{
  "resources": [{"id": "r1", "name": "Alice"}],
  "allocations": [{"id": "a1", "resourceId": "r1", "projectId": "p1", "weeklyHours": {"week ten": 20}}]
}`
	_, err := NewImporter(db.Conn(), zerolog.Nop()).ImportJSON(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocation #0")

	var count int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM resources").Scan(&count))
	assert.Equal(t, 0, count, "resources written before the failure are rolled back")
}

func TestImporter_RejectsUnknownFields(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	_, err := NewImporter(db.Conn(), zerolog.Nop()).ImportJSON(strings.NewReader(`{"people": []}`))
	assert.Error(t, err)
}
