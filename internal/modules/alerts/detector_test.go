package alerts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobpulse/jobpulse/internal/events"
	"github.com/jobpulse/jobpulse/internal/modules/trends"
)

const detectDate = "2025-06-15"

type detectorFixture struct {
	detector *Detector
	repo     *Repository
	skills   *trends.SkillTrendRepository
	salaries *trends.SalaryTrendRepository
	velocity *trends.CompanyVelocityRepository
}

func newDetectorFixture(t *testing.T) *detectorFixture {
	t.Helper()

	db := setupTestDB(t)
	log := testLogger()

	f := &detectorFixture{
		repo:     NewRepository(db, log),
		skills:   trends.NewSkillTrendRepository(db, log),
		salaries: trends.NewSalaryTrendRepository(db, log),
		velocity: trends.NewCompanyVelocityRepository(db, log),
	}
	f.detector = NewDetector(f.skills, f.salaries, f.velocity, f.repo, events.NewManager(log), log)
	return f
}

func floatPtr(v float64) *float64 { return &v }

func (f *detectorFixture) seedSkill(t *testing.T, skill, date string, mentions int) {
	t.Helper()
	require.NoError(t, f.skills.Upsert(&trends.SkillDemandTrend{
		SkillName: skill, Date: date, MentionCount: mentions,
	}))
}

func (f *detectorFixture) run(t *testing.T) []MarketAlert {
	t.Helper()
	require.NoError(t, f.detector.Run(context.Background(), detectDate))
	alerts, err := f.repo.All(50)
	require.NoError(t, err)
	return alerts
}

func TestDetector_SkillSurge_FiresAtFiftyPercent(t *testing.T) {
	f := newDetectorFixture(t)
	f.seedSkill(t, "go", "2025-06-08", 10)
	f.seedSkill(t, "go", detectDate, 15)

	alerts := f.run(t)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, TypeSkillSurge, a.AlertType)
	assert.Equal(t, SeverityInfo, a.Severity)
	assert.Equal(t, "go", a.RelatedEntity)
	assert.Equal(t, EntitySkill, a.RelatedEntityType)
	require.NotNil(t, a.MetricValue)
	assert.InDelta(t, 15, *a.MetricValue, 0.001)
	require.NotNil(t, a.MetricChangePct)
	assert.InDelta(t, 50.0, *a.MetricChangePct, 0.001)
}

func TestDetector_SkillSurge_BelowThresholdIsQuiet(t *testing.T) {
	f := newDetectorFixture(t)
	f.seedSkill(t, "go", "2025-06-08", 10)
	f.seedSkill(t, "go", detectDate, 14)

	assert.Empty(t, f.run(t))
}

func TestDetector_SkillSurge_NeedsExactSevenDayOldRow(t *testing.T) {
	f := newDetectorFixture(t)
	// Prior row is 6 days old, not 7: no comparison point
	f.seedSkill(t, "go", "2025-06-09", 1)
	f.seedSkill(t, "go", detectDate, 100)

	assert.Empty(t, f.run(t))
}

func TestDetector_SkillSurge_ZeroBaselineIsQuiet(t *testing.T) {
	f := newDetectorFixture(t)
	f.seedSkill(t, "go", "2025-06-08", 0)
	f.seedSkill(t, "go", detectDate, 100)

	assert.Empty(t, f.run(t))
}

func TestDetector_SalarySpike(t *testing.T) {
	f := newDetectorFixture(t)

	require.NoError(t, f.salaries.Upsert(&trends.SalaryTrend{
		TitleNormalized: "backend engineer", LocationNormalized: "berlin",
		Date: detectDate, P50: floatPtr(125000), SalaryGrowthPct: 25.0,
	}))
	require.NoError(t, f.salaries.Upsert(&trends.SalaryTrend{
		TitleNormalized: "data engineer", LocationNormalized: "berlin",
		Date: detectDate, P50: floatPtr(110000), SalaryGrowthPct: 24.9,
	}))

	alerts := f.run(t)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, TypeSalarySpike, a.AlertType)
	assert.Equal(t, EntityRole, a.RelatedEntityType)
	assert.Contains(t, a.RelatedEntity, "backend engineer")
	require.NotNil(t, a.MetricValue)
	assert.InDelta(t, 125000, *a.MetricValue, 0.001)
	require.NotNil(t, a.MetricChangePct)
	assert.InDelta(t, 25.0, *a.MetricChangePct, 0.001)
}

func TestDetector_HiringSpree(t *testing.T) {
	f := newDetectorFixture(t)

	require.NoError(t, f.velocity.Upsert(&trends.CompanyHiringVelocity{
		CompanyName: "Acme", Date: detectDate, JobsPostedCount: 10, HiringTrend: trends.TrendIncreasing,
	}))
	require.NoError(t, f.velocity.Upsert(&trends.CompanyHiringVelocity{
		CompanyName: "Globex", Date: detectDate, JobsPostedCount: 9, HiringTrend: trends.TrendStable,
	}))

	alerts := f.run(t)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, TypeHiringSpree, a.AlertType)
	assert.Equal(t, "Acme", a.RelatedEntity)
	assert.Equal(t, EntityCompany, a.RelatedEntityType)
	require.NotNil(t, a.MetricValue)
	assert.InDelta(t, 10, *a.MetricValue, 0.001)
	assert.Nil(t, a.MetricChangePct)
}

func TestDetector_RerunEmitsAgain(t *testing.T) {
	f := newDetectorFixture(t)
	f.seedSkill(t, "go", "2025-06-08", 10)
	f.seedSkill(t, "go", detectDate, 20)

	require.NoError(t, f.detector.Run(context.Background(), detectDate))
	require.NoError(t, f.detector.Run(context.Background(), detectDate))

	alerts, err := f.repo.All(50)
	require.NoError(t, err)
	// No dedup: each run appends its own alert
	assert.Len(t, alerts, 2)
}
