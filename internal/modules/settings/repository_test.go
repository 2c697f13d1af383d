package settings

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/aristath/resourceplan/internal/testing"
)

func TestRepository_GetSet(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewRepository(db.Conn(), zerolog.Nop())

	value, err := repo.Get(KeyWarningAbovePct)
	require.NoError(t, err)
	assert.Nil(t, value, "missing setting is not an error")

	desc := "tuned for the platform team"
	require.NoError(t, repo.Set(KeyWarningAbovePct, "85", &desc))
	require.NoError(t, repo.Set(KeyWarningAbovePct, "90", nil))

	value, err = repo.Get(KeyWarningAbovePct)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "90", *value)

	var stored string
	require.NoError(t, db.Conn().QueryRow("SELECT description FROM settings WHERE key = ?", KeyWarningAbovePct).Scan(&stored))
	assert.Equal(t, desc, stored, "a nil description keeps the previous one")
}

func TestRepository_GetFloat(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewRepository(db.Conn(), zerolog.Nop())

	v, err := repo.GetFloat(KeyCriticalAbovePct, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	require.NoError(t, repo.SetFloat(KeyCriticalAbovePct, 112.5))
	v, err = repo.GetFloat(KeyCriticalAbovePct, 100)
	require.NoError(t, err)
	assert.Equal(t, 112.5, v)

	require.NoError(t, repo.Set(KeyCriticalAbovePct, "lots", nil))
	v, err = repo.GetFloat(KeyCriticalAbovePct, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v, "unparseable values fall back to the default")
}

func TestRepository_GetEffective(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	repo := NewRepository(db.Conn(), zerolog.Nop())
	require.NoError(t, repo.SetFloat(KeyUntappedBelowPct, 60))
	require.NoError(t, repo.Set(KeyCurrentDateAwareness, "off", nil))
	require.NoError(t, repo.Set(KeyHighCapacityFloorHours, "many", nil))
	require.NoError(t, repo.Set("unrelated", "x", nil))

	all, err := repo.GetEffective()
	require.NoError(t, err)
	require.Len(t, all, len(SettingDefaults))

	byKey := make(map[string]Setting)
	for _, s := range all {
		byKey[s.Key] = s
		assert.NotEmpty(t, s.Description, s.Key)
	}

	assert.Equal(t, 60.0, byKey[KeyUntappedBelowPct].Value)
	assert.True(t, byKey[KeyUntappedBelowPct].Overridden)
	assert.Equal(t, "off", byKey[KeyCurrentDateAwareness].Value)
	assert.Equal(t, 35.0, byKey[KeyHighCapacityFloorHours].Value)
	assert.False(t, byKey[KeyHighCapacityFloorHours].Overridden)
	assert.Equal(t, 80.0, byKey[KeyWarningAbovePct].Value)
}
