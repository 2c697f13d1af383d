package roster

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/resourceplan/internal/modules/capacity"
	testutil "github.com/aristath/resourceplan/internal/testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestResourceRepository_UpsertAndGet(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewResourceRepository(db.Conn(), DefaultDefaults(), zerolog.Nop())

	id, err := repo.Upsert(ResourceRecord{
		ID:                     "r1",
		Name:                   "Alice",
		Role:                   "Engineer",
		Department:             "Engineering",
		WeeklyCapacityHours:    floatPtr(36),
		NonProjectHoursPerWeek: floatPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", id)

	res, err := repo.GetResourceByID("r1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", res.Name)
	assert.Equal(t, "Engineering", res.Department)
	assert.Equal(t, 36.0, res.WeeklyCapacityHours)
	assert.Equal(t, 4.0, res.NonProjectHoursPerWeek)
	assert.True(t, res.Active)

	// Update in place
	_, err = repo.Upsert(ResourceRecord{ID: "r1", Name: "Alice B", Active: boolPtr(false)})
	require.NoError(t, err)

	res, err = repo.GetResourceByID("r1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", res.Name)
	assert.False(t, res.Active)
}

func TestResourceRepository_AppliesDefaults(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewResourceRepository(db.Conn(), Defaults{WeeklyCapacityHours: 37.5, NonProjectHoursPerWeek: 6}, zerolog.Nop())

	id, err := repo.Upsert(ResourceRecord{Name: "Bob"})
	require.NoError(t, err)
	assert.NotEmpty(t, id, "id is generated when empty")

	res, err := repo.GetResourceByID(id)
	require.NoError(t, err)
	assert.Equal(t, 37.5, res.WeeklyCapacityHours)
	assert.Equal(t, 6.0, res.NonProjectHoursPerWeek)
}

func TestResourceRepository_ListActiveResources(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewResourceRepository(db.Conn(), DefaultDefaults(), zerolog.Nop())
	for _, rec := range []ResourceRecord{
		{ID: "r3", Name: "Carol"},
		{ID: "r1", Name: "Alice"},
		{ID: "r2", Name: "Bob", Active: boolPtr(false)},
	} {
		_, err := repo.Upsert(rec)
		require.NoError(t, err)
	}

	resources, err := repo.ListActiveResources()
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "r1", resources[0].ID)
	assert.Equal(t, "r3", resources[1].ID)
}

func TestResourceRepository_NotFound(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewResourceRepository(db.Conn(), DefaultDefaults(), zerolog.Nop())

	res, err := repo.GetResourceByID("missing")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, capacity.ErrResourceNotFound)
}

func TestResourceRepository_UpsertValidation(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewResourceRepository(db.Conn(), DefaultDefaults(), zerolog.Nop())

	tests := []struct {
		name string
		rec  ResourceRecord
	}{
		{"missing name", ResourceRecord{ID: "x"}},
		{"negative capacity", ResourceRecord{Name: "X", WeeklyCapacityHours: floatPtr(-1)}},
		{"capacity above a week", ResourceRecord{Name: "X", WeeklyCapacityHours: floatPtr(200)}},
		{"negative overhead", ResourceRecord{Name: "X", NonProjectHoursPerWeek: floatPtr(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Upsert(tt.rec)
			assert.Error(t, err)
		})
	}
}
