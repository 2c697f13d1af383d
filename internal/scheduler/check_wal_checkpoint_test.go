package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	testutil "github.com/aristath/resourceplan/internal/testing"
)

func TestCheckWALCheckpointJob_Name(t *testing.T) {
	job := NewCheckWALCheckpointJob(nil, zerolog.Nop())
	assert.Equal(t, "check_wal_checkpoint", job.Name())
}

func TestCheckWALCheckpointJob_Run_NoDatabase(t *testing.T) {
	job := NewCheckWALCheckpointJob(nil, zerolog.Nop())
	assert.NoError(t, job.Run())
}

func TestCheckWALCheckpointJob_Run(t *testing.T) {
	db, cleanup := testutil.NewTestDB(t, "planning")
	defer cleanup()

	job := NewCheckWALCheckpointJob(db, zerolog.Nop())
	assert.NoError(t, job.Run())
}
