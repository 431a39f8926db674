package scheduler

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/jobpulse/internal/database"
)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)
	return db
}

func TestWALCheckpointJob_Run(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Exec("INSERT INTO t (v) VALUES (1), (2), (3)")
	require.NoError(t, err)

	job := NewWALCheckpointJob(db, testLogger())
	assert.Equal(t, "wal_checkpoint", job.Name())
	require.NoError(t, job.Run())
}

func TestVacuumJob_Run(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Exec("INSERT INTO t (v) VALUES (1), (2), (3)")
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM t")
	require.NoError(t, err)

	job := NewVacuumJob(db, testLogger())
	assert.Equal(t, "db_vacuum", job.Name())
	require.NoError(t, job.Run())
}
