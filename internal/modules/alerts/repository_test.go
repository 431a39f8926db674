package alerts

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/jobpulse/internal/database"
	"github.com/jobpulse/jobpulse/internal/modules/trends"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	wrapper, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { wrapper.Close() })

	db := wrapper.Conn()
	require.NoError(t, trends.InitSchema(db))
	require.NoError(t, InitSchema(db))
	return db
}

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func insertAlert(t *testing.T, repo *Repository, alertType AlertType, entity string) *MarketAlert {
	t.Helper()

	a := &MarketAlert{
		AlertType:         alertType,
		Title:             "test alert",
		Description:       "test description",
		Severity:          SeverityInfo,
		RelatedEntity:     entity,
		RelatedEntityType: EntitySkill,
	}
	require.NoError(t, repo.Insert(a))
	return a
}

func TestRepository_InsertAssignsID(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())

	a := insertAlert(t, repo, TypeSkillSurge, "go")
	assert.NotZero(t, a.ID)
	assert.False(t, a.IsRead)
	assert.NotEmpty(t, a.CreatedAt)

	b := insertAlert(t, repo, TypeSkillSurge, "rust")
	assert.Greater(t, b.ID, a.ID)
}

func TestRepository_UnreadExcludesRead(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())

	a := insertAlert(t, repo, TypeSkillSurge, "go")
	insertAlert(t, repo, TypeHiringSpree, "Acme")

	found, err := repo.MarkRead(a.ID)
	require.NoError(t, err)
	assert.True(t, found)

	unread, err := repo.Unread()
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "Acme", unread[0].RelatedEntity)
}

func TestRepository_ByTypeAndLimit(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())

	insertAlert(t, repo, TypeSkillSurge, "go")
	insertAlert(t, repo, TypeSkillSurge, "rust")
	insertAlert(t, repo, TypeHiringSpree, "Acme")

	surges, err := repo.ByType(TypeSkillSurge, 10)
	require.NoError(t, err)
	assert.Len(t, surges, 2)

	all, err := repo.All(2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_MarkRead_UnknownID(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())

	found, err := repo.MarkRead(999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepository_MarkRead_Idempotent(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())
	a := insertAlert(t, repo, TypeSkillSurge, "go")

	for i := 0; i < 2; i++ {
		found, err := repo.MarkRead(a.ID)
		require.NoError(t, err)
		assert.True(t, found)
	}
}

func TestRepository_MarkAllRead(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())

	insertAlert(t, repo, TypeSkillSurge, "go")
	insertAlert(t, repo, TypeHiringSpree, "Acme")

	affected, err := repo.MarkAllRead()
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	affected, err = repo.MarkAllRead()
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestRepository_CleanupOld_NeverDeletesUnread(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db, testLogger())

	read := insertAlert(t, repo, TypeSkillSurge, "go")
	insertAlert(t, repo, TypeHiringSpree, "Acme")

	_, err := repo.MarkRead(read.ID)
	require.NoError(t, err)

	// Age both rows past any sane retention window
	_, err = db.Exec("UPDATE market_alerts SET created_at = '2020-01-01 00:00:00'")
	require.NoError(t, err)

	deleted, err := repo.CleanupOld(30)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	remaining, err := repo.All(10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Acme", remaining[0].RelatedEntity)
	assert.False(t, remaining[0].IsRead)
}

func TestRepository_CleanupOld_KeepsRecentRead(t *testing.T) {
	repo := NewRepository(setupTestDB(t), testLogger())

	a := insertAlert(t, repo, TypeSkillSurge, "go")
	_, err := repo.MarkRead(a.ID)
	require.NoError(t, err)

	deleted, err := repo.CleanupOld(30)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
