package alerts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/clock"
	"github.com/jobpulse/jobpulse/internal/events"
	"github.com/jobpulse/jobpulse/internal/modules/trends"
)

// Detection thresholds
const (
	skillSurgeMinGrowthPct  = 50.0
	salarySpikeMinGrowthPct = 25.0
	hiringSpreeMinPosted    = 10
)

// Detector scans freshly computed trend rows for threshold crossings and
// appends alert records. It runs after the trend engine has refreshed the
// current date.
//
// There is no dedup or cooldown: a condition that holds across consecutive
// runs produces one alert per run.
type Detector struct {
	skillTrends  *trends.SkillTrendRepository
	salaryTrends *trends.SalaryTrendRepository
	velocity     *trends.CompanyVelocityRepository
	repo         *Repository
	events       *events.Manager
	log          zerolog.Logger
}

// NewDetector creates a new alert detector
func NewDetector(
	skillTrends *trends.SkillTrendRepository,
	salaryTrends *trends.SalaryTrendRepository,
	velocity *trends.CompanyVelocityRepository,
	repo *Repository,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Detector {
	return &Detector{
		skillTrends:  skillTrends,
		salaryTrends: salaryTrends,
		velocity:     velocity,
		repo:         repo,
		events:       eventManager,
		log:          log.With().Str("component", "alert_detector").Logger(),
	}
}

// Run executes the three active detection rules against the given date
func (d *Detector) Run(ctx context.Context, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	created := 0

	n, err := d.detectSkillSurges(date)
	if err != nil {
		return err
	}
	created += n

	n, err = d.detectSalarySpikes(date)
	if err != nil {
		return err
	}
	created += n

	n, err = d.detectHiringSprees(date)
	if err != nil {
		return err
	}
	created += n

	d.log.Info().Str("date", date).Int("alerts", created).Msg("Alert detection completed")
	return nil
}

// detectSkillSurges compares each of today's skill rows against the row
// dated exactly 7 days earlier. Growth of 50% or more in mentions fires.
func (d *Detector) detectSkillSurges(date string) (int, error) {
	today, err := d.skillTrends.ForDate(date)
	if err != nil {
		return 0, fmt.Errorf("skill surge detection failed: %w", err)
	}

	weekAgo := clock.DaysAgo(date, 7)
	created := 0

	for _, t := range today {
		prev, err := d.skillTrends.GetBySkillAndDate(t.SkillName, weekAgo)
		if err != nil {
			return created, fmt.Errorf("skill surge detection failed: %w", err)
		}
		if prev == nil || prev.MentionCount <= 0 {
			continue
		}

		growthPct := float64(t.MentionCount-prev.MentionCount) / float64(prev.MentionCount) * 100
		if growthPct < skillSurgeMinGrowthPct {
			continue
		}

		mentions := float64(t.MentionCount)
		alert := &MarketAlert{
			AlertType: TypeSkillSurge,
			Title:     fmt.Sprintf("Skill surge: %s", t.SkillName),
			Description: fmt.Sprintf("Mentions of %s grew %.1f%% over the last 7 days (%d → %d)",
				t.SkillName, growthPct, prev.MentionCount, t.MentionCount),
			Severity:          SeverityInfo,
			RelatedEntity:     t.SkillName,
			RelatedEntityType: EntitySkill,
			MetricValue:       &mentions,
			MetricChangePct:   &growthPct,
		}
		if err := d.create(alert); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// detectSalarySpikes fires for today's salary rows whose median grew 25% or
// more against their prior row. Severity stays info by design of the rule set.
func (d *Detector) detectSalarySpikes(date string) (int, error) {
	today, err := d.salaryTrends.ForDate(date)
	if err != nil {
		return 0, fmt.Errorf("salary spike detection failed: %w", err)
	}

	created := 0
	for _, t := range today {
		if t.SalaryGrowthPct < salarySpikeMinGrowthPct {
			continue
		}

		growthPct := t.SalaryGrowthPct
		entity := fmt.Sprintf("%s / %s", t.TitleNormalized, t.LocationNormalized)
		alert := &MarketAlert{
			AlertType: TypeSalarySpike,
			Title:     fmt.Sprintf("Salary spike: %s", entity),
			Description: fmt.Sprintf("Median salary for %s in %s jumped %.1f%%",
				t.TitleNormalized, t.LocationNormalized, growthPct),
			Severity:          SeverityInfo,
			RelatedEntity:     entity,
			RelatedEntityType: EntityRole,
			MetricValue:       t.P50,
			MetricChangePct:   &growthPct,
		}
		if err := d.create(alert); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// detectHiringSprees fires for companies that posted 10 or more jobs today
func (d *Detector) detectHiringSprees(date string) (int, error) {
	today, err := d.velocity.ForDate(date)
	if err != nil {
		return 0, fmt.Errorf("hiring spree detection failed: %w", err)
	}

	created := 0
	for _, v := range today {
		if v.JobsPostedCount < hiringSpreeMinPosted {
			continue
		}

		posted := float64(v.JobsPostedCount)
		alert := &MarketAlert{
			AlertType: TypeHiringSpree,
			Title:     fmt.Sprintf("Hiring spree: %s", v.CompanyName),
			Description: fmt.Sprintf("%s posted %d jobs today",
				v.CompanyName, v.JobsPostedCount),
			Severity:          SeverityInfo,
			RelatedEntity:     v.CompanyName,
			RelatedEntityType: EntityCompany,
			MetricValue:       &posted,
		}
		if err := d.create(alert); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (d *Detector) create(a *MarketAlert) error {
	if err := d.repo.Insert(a); err != nil {
		return err
	}

	d.events.Emit(events.AlertCreated, "alerts", map[string]interface{}{
		"alert_id":   a.ID,
		"alert_type": string(a.AlertType),
		"entity":     a.RelatedEntity,
	})
	return nil
}
