package snapshot

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t), zerolog.New(nil).Level(zerolog.Disabled))
}

func floatPtr(v float64) *float64 { return &v }

func TestRepository_UpsertOverwritesSameDate(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(&MarketSnapshot{
		Date:            "2025-06-15",
		TotalJobs:       10,
		AvgSalary:       floatPtr(90000),
		MarketSentiment: SentimentNeutral,
	}))
	require.NoError(t, repo.Upsert(&MarketSnapshot{
		Date:            "2025-06-15",
		TotalJobs:       12,
		MarketSentiment: SentimentBullish,
	}))

	got, err := repo.GetByDate("2025-06-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.TotalJobs)
	assert.Equal(t, SentimentBullish, got.MarketSentiment)
	// Overwrite clears optionals that the new row does not carry
	assert.Nil(t, got.AvgSalary)
}

func TestRepository_GetByDate_Missing(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByDate("2025-06-15")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_Latest(t *testing.T) {
	repo := newTestRepo(t)

	latest, err := repo.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest)

	for _, date := range []string{"2025-06-13", "2025-06-15", "2025-06-14"} {
		require.NoError(t, repo.Upsert(&MarketSnapshot{Date: date, MarketSentiment: SentimentNeutral}))
	}

	latest, err = repo.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2025-06-15", latest.Date)
}

func TestRepository_HistoryNewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	for _, date := range []string{"2025-06-10", "2025-06-12", "2025-06-14"} {
		require.NoError(t, repo.Upsert(&MarketSnapshot{Date: date, MarketSentiment: SentimentNeutral}))
	}

	history, err := repo.History("2025-06-12")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-06-14", history[0].Date)
	assert.Equal(t, "2025-06-12", history[1].Date)
}

func TestRepository_NewJobsBaseline(t *testing.T) {
	repo := newTestRepo(t)

	baseline, err := repo.NewJobsBaseline("2025-06-08", "2025-06-15")
	require.NoError(t, err)
	assert.Nil(t, baseline)

	require.NoError(t, repo.Upsert(&MarketSnapshot{Date: "2025-06-13", NewJobsToday: 90, MarketSentiment: SentimentNeutral}))
	require.NoError(t, repo.Upsert(&MarketSnapshot{Date: "2025-06-14", NewJobsToday: 110, MarketSentiment: SentimentNeutral}))
	// The day itself is excluded from its own baseline
	require.NoError(t, repo.Upsert(&MarketSnapshot{Date: "2025-06-15", NewJobsToday: 500, MarketSentiment: SentimentNeutral}))

	baseline, err = repo.NewJobsBaseline("2025-06-08", "2025-06-15")
	require.NoError(t, err)
	require.NotNil(t, baseline)
	assert.InDelta(t, 100, *baseline, 0.01)
}
