package snapshot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/clock"
	"github.com/jobpulse/jobpulse/internal/modules/facts"
	"github.com/jobpulse/jobpulse/pkg/formulas"
)

// Sentiment thresholds: today's new-job count vs the trailing-7-day mean
const (
	bullishThresholdPct = 20.0
	bearishThresholdPct = -20.0
)

// Builder computes the whole-market daily snapshot from the fact store.
// All reads happen before the single upsert, so a read failure writes nothing.
type Builder struct {
	jobs     *facts.JobRepository
	skills   *facts.SkillRepository
	salaries *facts.SalaryRepository
	repo     *Repository
	clk      clock.Clock
	log      zerolog.Logger
}

// NewBuilder creates a new snapshot builder
func NewBuilder(
	jobs *facts.JobRepository,
	skills *facts.SkillRepository,
	salaries *facts.SalaryRepository,
	repo *Repository,
	clk clock.Clock,
	log zerolog.Logger,
) *Builder {
	return &Builder{
		jobs:     jobs,
		skills:   skills,
		salaries: salaries,
		repo:     repo,
		clk:      clk,
		log:      log.With().Str("component", "snapshot_builder").Logger(),
	}
}

// Build computes and persists today's market snapshot
func (b *Builder) Build(ctx context.Context) (*MarketSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	today := b.clk.Today()

	totalJobs, err := b.jobs.CountAll()
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}
	newToday, err := b.jobs.CountPostedOn(today)
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}
	filledToday, err := b.jobs.CountFilledOn(today)
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}
	companiesHiring, err := b.jobs.CountActiveCompanies()
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}

	salaryPredictions, err := b.salaries.AllPredicted()
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}
	var avgSalary *float64
	if len(salaryPredictions) > 0 {
		avg := formulas.Mean(salaryPredictions)
		avgSalary = &avg
	}
	medianSalary := formulas.Median(salaryPredictions)

	var remotePct *float64
	if totalJobs > 0 {
		remoteCount, err := b.jobs.CountRemote()
		if err != nil {
			return nil, fmt.Errorf("snapshot build failed: %w", err)
		}
		pct := float64(remoteCount) / float64(totalJobs) * 100
		remotePct = &pct
	}

	topSkill, err := b.skills.TopMentionedOn(today)
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}
	topCompany, err := b.jobs.TopCompany()
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}
	topLocation, err := b.jobs.TopLocation()
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}

	sentiment, err := b.computeSentiment(today, newToday)
	if err != nil {
		return nil, fmt.Errorf("snapshot build failed: %w", err)
	}

	snapshot := &MarketSnapshot{
		Date:                 today,
		TotalJobs:            totalJobs,
		NewJobsToday:         newToday,
		JobsFilledToday:      filledToday,
		AvgSalary:            avgSalary,
		MedianSalary:         medianSalary,
		RemoteJobPercentage:  remotePct,
		TopSkill:             topSkill,
		TopCompany:           topCompany,
		TopLocation:          topLocation,
		TotalCompaniesHiring: companiesHiring,
		MarketSentiment:      sentiment,
	}

	if err := b.repo.Upsert(snapshot); err != nil {
		return nil, err
	}

	b.log.Info().
		Str("date", today).
		Int("total_jobs", totalJobs).
		Int("new_jobs", newToday).
		Str("sentiment", sentiment).
		Msg("Market snapshot built")

	return snapshot, nil
}

// computeSentiment compares today's new-job count against the mean of the
// trailing 7 snapshot days, today excluded. No baseline means no signal.
func (b *Builder) computeSentiment(today string, newToday int) (string, error) {
	from := clock.DaysAgo(today, 7)
	baseline, err := b.repo.NewJobsBaseline(from, today)
	if err != nil {
		return "", err
	}
	return ClassifySentiment(newToday, baseline), nil
}

// ClassifySentiment maps today's new-job count against a baseline mean.
// A missing or zero baseline is neutral by definition.
func ClassifySentiment(newToday int, baseline *float64) string {
	if baseline == nil || *baseline == 0 {
		return SentimentNeutral
	}

	pct := formulas.PercentChange(float64(newToday), *baseline)
	switch {
	case pct >= bullishThresholdPct:
		return SentimentBullish
	case pct <= bearishThresholdPct:
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}
