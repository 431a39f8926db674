package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesParentDirectories(t *testing.T) {
	db := setupTestDB(t)
	assert.FileExists(t, db.Path())
}

func TestHealthCheck(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.HealthCheck(context.Background()))
}

func TestWALCheckpointAndStats(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Exec("CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO t (v) VALUES (1), (2), (3)")
	require.NoError(t, err)

	require.NoError(t, db.WALCheckpoint("TRUNCATE"))

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Positive(t, stats.SizeBytes)
	assert.Positive(t, stats.PageCount)
	assert.Positive(t, stats.PageSize)
}

func TestVacuum(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Exec("CREATE TABLE t (v INTEGER)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO t (v) VALUES (1), (2), (3)")
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM t")
	require.NoError(t, err)

	require.NoError(t, db.Vacuum())
	require.NoError(t, db.HealthCheck(context.Background()))
}

// Eight goroutines writing through the pool at once; the busy timeout must
// absorb the write-lock contention without surfacing SQLITE_BUSY
func TestConcurrentWriters(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Exec("CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER)")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				_, err := db.Exec(
					"INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v",
					fmt.Sprintf("k-%d-%d", n, j), j,
				)
				if err != nil {
					errs <- err
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count))
	assert.Equal(t, 64, count)
}
