package analysis

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/jobpulse/internal/clock"
	"github.com/jobpulse/jobpulse/internal/database"
	"github.com/jobpulse/jobpulse/internal/events"
	"github.com/jobpulse/jobpulse/internal/modules/alerts"
	"github.com/jobpulse/jobpulse/internal/modules/facts"
	"github.com/jobpulse/jobpulse/internal/modules/snapshot"
	"github.com/jobpulse/jobpulse/internal/modules/trends"
	"github.com/jobpulse/jobpulse/internal/workers"
)

const testDate = "2025-06-15"

type serviceFixture struct {
	db      *sql.DB
	service *Service
	alerts  *alerts.Repository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	wrapper, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { wrapper.Close() })

	db := wrapper.Conn()
	require.NoError(t, facts.InitSchema(db))
	require.NoError(t, snapshot.InitSchema(db))
	require.NoError(t, trends.InitSchema(db))
	require.NoError(t, alerts.InitSchema(db))

	log := zerolog.New(nil).Level(zerolog.Disabled)
	date, err := time.Parse(clock.DateFormat, testDate)
	require.NoError(t, err)
	clk := clock.Fixed{Time: date}

	jobRepo := facts.NewJobRepository(db, log)
	skillRepo := facts.NewSkillRepository(db, log)
	salaryRepo := facts.NewSalaryRepository(db, log)

	snapshotRepo := snapshot.NewRepository(db, log)
	skillTrendRepo := trends.NewSkillTrendRepository(db, log)
	salaryTrendRepo := trends.NewSalaryTrendRepository(db, log)
	velocityRepo := trends.NewCompanyVelocityRepository(db, log)
	densityRepo := trends.NewLocationDensityRepository(db, log)
	roleTrendRepo := trends.NewRoleTrendRepository(db, log)
	alertRepo := alerts.NewRepository(db, log)

	eventManager := events.NewManager(log)

	builder := snapshot.NewBuilder(jobRepo, skillRepo, salaryRepo, snapshotRepo, clk, log)
	engine := trends.NewEngine(trends.EngineConfig{
		Jobs:         jobRepo,
		Skills:       skillRepo,
		Salaries:     salaryRepo,
		SkillTrends:  skillTrendRepo,
		SalaryTrends: salaryTrendRepo,
		Velocity:     velocityRepo,
		Density:      densityRepo,
		Roles:        roleTrendRepo,
		Pool:         workers.NewPool(2),
		Log:          log,
	})
	detector := alerts.NewDetector(skillTrendRepo, salaryTrendRepo, velocityRepo, alertRepo, eventManager, log)

	service := NewService(ServiceConfig{
		Builder:     builder,
		Engine:      engine,
		Detector:    detector,
		Snapshots:   snapshotRepo,
		SkillTrends: skillTrendRepo,
		Velocity:    velocityRepo,
		Density:     densityRepo,
		Events:      eventManager,
		Clock:       clk,
		Log:         log,
	})

	return &serviceFixture{db: db, service: service, alerts: alertRepo}
}

func (f *serviceFixture) seedFacts(t *testing.T) {
	t.Helper()

	_, err := f.db.Exec(`
		INSERT INTO jobs (job_hash, title, company, location, status, posted_at, updated_at)
		VALUES
			('h1', 'Backend Engineer', 'Acme', 'Berlin', 'active', '2025-06-15 09:00:00', '2025-06-15 09:00:00'),
			('h2', 'Backend Engineer', 'Acme', 'Berlin', 'active', '2025-06-15 10:00:00', '2025-06-15 10:00:00'),
			('h3', 'Data Engineer', 'Globex', 'Remote', 'active', '2025-06-14 09:00:00', '2025-06-14 09:00:00')
	`)
	require.NoError(t, err)

	_, err = f.db.Exec(`
		INSERT INTO job_skills (job_hash, skill_name, created_at)
		VALUES
			('h1', 'Go', '2025-06-15 09:00:00'),
			('h2', 'Go', '2025-06-15 10:00:00'),
			('h3', 'Python', '2025-06-14 09:00:00')
	`)
	require.NoError(t, err)

	_, err = f.db.Exec(`
		INSERT INTO salary_predictions (job_hash, predicted_median, created_at)
		VALUES
			('h1', 90000, '2025-06-15 09:00:00'),
			('h2', 110000, '2025-06-15 10:00:00'),
			('h3', 100000, '2025-06-14 09:00:00')
	`)
	require.NoError(t, err)

	_, err = f.db.Exec(`
		INSERT INTO salary_benchmarks (title_normalized, location_normalized, p50, sample_size)
		VALUES ('backend engineer', 'berlin', 100000, 25)
	`)
	require.NoError(t, err)
}

func TestRunDailyAnalysis_FullPipeline(t *testing.T) {
	f := newServiceFixture(t)
	f.seedFacts(t)

	snap, err := f.service.RunDailyAnalysis(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, testDate, snap.Date)
	assert.Equal(t, 3, snap.TotalJobs)
	assert.Equal(t, 2, snap.NewJobsToday)

	// Every trend table got rows for the run date
	for table, want := range map[string]int{
		"skill_demand_trends":     1, // only "go" mentioned today
		"salary_trends":           1,
		"company_hiring_velocity": 2,
		"location_job_density":    2,
		"role_demand_trends":      2,
	} {
		var count int
		require.NoError(t, f.db.QueryRow(
			"SELECT COUNT(*) FROM "+table+" WHERE date = ?", testDate).Scan(&count))
		assert.Equal(t, want, count, table)
	}
}

func TestRunDailyAnalysis_DetectsSkillSurge(t *testing.T) {
	f := newServiceFixture(t)
	f.seedFacts(t)

	// A week-old row low enough that today's two mentions read as a surge
	log := zerolog.New(nil).Level(zerolog.Disabled)
	require.NoError(t, trends.NewSkillTrendRepository(f.db, log).Upsert(&trends.SkillDemandTrend{
		SkillName: "go", Date: "2025-06-08", MentionCount: 1,
	}))

	_, err := f.service.RunDailyAnalysis(context.Background())
	require.NoError(t, err)

	surges, err := f.alerts.ByType(alerts.TypeSkillSurge, 10)
	require.NoError(t, err)
	require.Len(t, surges, 1)
	assert.Equal(t, "go", surges[0].RelatedEntity)
}

func TestRunDailyAnalysis_RerunIsIdempotentPerDate(t *testing.T) {
	f := newServiceFixture(t)
	f.seedFacts(t)

	_, err := f.service.RunDailyAnalysis(context.Background())
	require.NoError(t, err)
	_, err = f.service.RunDailyAnalysis(context.Background())
	require.NoError(t, err)

	var count int
	require.NoError(t, f.db.QueryRow(
		"SELECT COUNT(*) FROM market_snapshots WHERE date = ?", testDate).Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, f.db.QueryRow(
		"SELECT COUNT(*) FROM skill_demand_trends WHERE date = ?", testDate).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRunDailyAnalysis_StepFailureAbortsRun(t *testing.T) {
	f := newServiceFixture(t)
	f.seedFacts(t)

	// Breaking the first trend table makes the skill step fail
	_, err := f.db.Exec("DROP TABLE skill_demand_trends")
	require.NoError(t, err)

	snap, err := f.service.RunDailyAnalysis(context.Background())
	assert.Error(t, err)
	assert.Nil(t, snap)

	// Later steps never ran
	var count int
	require.NoError(t, f.db.QueryRow(
		"SELECT COUNT(*) FROM company_hiring_velocity").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestGetHistoricalSnapshots_WindowSpansExactlyRequestedDays(t *testing.T) {
	f := newServiceFixture(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := snapshot.NewRepository(f.db, log)

	// 2025-06-09 is the seventh date counting back from 2025-06-15;
	// 2025-06-08 is the eighth and must fall out of a 7-day window
	for _, date := range []string{"2025-06-08", "2025-06-09", testDate} {
		require.NoError(t, repo.Upsert(&snapshot.MarketSnapshot{
			Date: date, MarketSentiment: snapshot.SentimentNeutral,
		}))
	}

	history, err := f.service.GetHistoricalSnapshots(7)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, testDate, history[0].Date)
	assert.Equal(t, "2025-06-09", history[1].Date)
}

func TestGetTrendingSkills_WindowSpansExactlyThirtyDays(t *testing.T) {
	f := newServiceFixture(t)
	log := zerolog.New(nil).Level(zerolog.Disabled)
	repo := trends.NewSkillTrendRepository(f.db, log)

	// 2025-05-17 is the thirtieth date counting back from 2025-06-15;
	// 2025-05-16 is the thirty-first
	require.NoError(t, repo.Upsert(&trends.SkillDemandTrend{
		SkillName: "go", Date: "2025-05-17", MentionCount: 3, JobCount: 3,
	}))
	require.NoError(t, repo.Upsert(&trends.SkillDemandTrend{
		SkillName: "rust", Date: "2025-05-16", MentionCount: 9, JobCount: 9,
	}))

	skills, err := f.service.GetTrendingSkills(5)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "go", skills[0].SkillName)
}

func TestReadFacades(t *testing.T) {
	f := newServiceFixture(t)
	f.seedFacts(t)

	latest, err := f.service.GetMarketSnapshot()
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = f.service.RunDailyAnalysis(context.Background())
	require.NoError(t, err)

	latest, err = f.service.GetMarketSnapshot()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, testDate, latest.Date)

	history, err := f.service.GetHistoricalSnapshots(7)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	skills, err := f.service.GetTrendingSkills(5)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "go", skills[0].SkillName)

	companies, err := f.service.GetMostActiveCompanies(5)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme", companies[0].CompanyName)

	locations, err := f.service.GetHottestLocations(5)
	require.NoError(t, err)
	assert.Len(t, locations, 2)
}
