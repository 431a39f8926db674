package trends

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/clock"
	"github.com/jobpulse/jobpulse/internal/modules/facts"
	"github.com/jobpulse/jobpulse/internal/workers"
	"github.com/jobpulse/jobpulse/pkg/formulas"
)

// pairSep joins a (title, location) pair into a single pool key
const pairSep = "\x1f"

// trendWindowDays is the look-back window for hiring/demand direction
const trendWindowDays = 7

// Engine runs the five keyed time-series computations. Every computation
// follows the same shape: enumerate the keys in scope for the date, fan the
// keys across a bounded worker pool, and upsert one row per (key, date).
// Each upsert is a single statement, so a failed or interrupted run leaves
// only whole rows behind and a re-run overwrites them.
type Engine struct {
	jobs     *facts.JobRepository
	skills   *facts.SkillRepository
	salaries *facts.SalaryRepository

	skillTrends  *SkillTrendRepository
	salaryTrends *SalaryTrendRepository
	velocity     *CompanyVelocityRepository
	density      *LocationDensityRepository
	roles        *RoleTrendRepository

	pool *workers.Pool
	log  zerolog.Logger
}

// EngineConfig holds the engine's dependencies
type EngineConfig struct {
	Jobs     *facts.JobRepository
	Skills   *facts.SkillRepository
	Salaries *facts.SalaryRepository

	SkillTrends  *SkillTrendRepository
	SalaryTrends *SalaryTrendRepository
	Velocity     *CompanyVelocityRepository
	Density      *LocationDensityRepository
	Roles        *RoleTrendRepository

	Pool *workers.Pool
	Log  zerolog.Logger
}

// NewEngine creates a new trend engine
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		jobs:         cfg.Jobs,
		skills:       cfg.Skills,
		salaries:     cfg.Salaries,
		skillTrends:  cfg.SkillTrends,
		salaryTrends: cfg.SalaryTrends,
		velocity:     cfg.Velocity,
		density:      cfg.Density,
		roles:        cfg.Roles,
		pool:         cfg.Pool,
		log:          cfg.Log.With().Str("component", "trend_engine").Logger(),
	}
}

// Step is one named trend computation within the daily run
type Step struct {
	Name string
	Run  func(ctx context.Context, date string) error
}

// Steps returns the five computations in their canonical order
func (e *Engine) Steps() []Step {
	return []Step{
		{Name: "skill_demand", Run: e.ComputeSkillDemand},
		{Name: "salary_trends", Run: e.ComputeSalaryTrends},
		{Name: "company_velocity", Run: e.ComputeCompanyVelocity},
		{Name: "location_density", Run: e.ComputeLocationDensity},
		{Name: "role_demand", Run: e.ComputeRoleDemand},
	}
}

// runStep fans compute across the worker pool and logs the step outcome
func (e *Engine) runStep(ctx context.Context, name string, keys []string, compute func(key string) error) error {
	start := time.Now()

	if err := e.pool.ForEach(ctx, keys, compute); err != nil {
		return fmt.Errorf("trend step %s failed: %w", name, err)
	}

	e.log.Info().
		Str("step", name).
		Int("keys", len(keys)).
		Dur("elapsed", time.Since(start)).
		Msg("Trend step completed")
	return nil
}

// salaryStats returns mean and median of the values, both nil when empty
func salaryStats(values []float64) (avg, median *float64) {
	if len(values) > 0 {
		m := formulas.Mean(values)
		avg = &m
	}
	return avg, formulas.Median(values)
}

// ComputeSkillDemand upserts one skill_demand_trends row per skill mentioned
// on the given date. Counts and salary figures are scoped to that date's
// mentions.
func (e *Engine) ComputeSkillDemand(ctx context.Context, date string) error {
	keys, err := e.skills.DistinctMentionedOn(date)
	if err != nil {
		return fmt.Errorf("trend step skill_demand failed: %w", err)
	}

	return e.runStep(ctx, "skill_demand", keys, func(skill string) error {
		mentions, err := e.skills.MentionCountOn(skill, date)
		if err != nil {
			return err
		}
		jobCount, err := e.skills.JobCountOn(skill, date)
		if err != nil {
			return err
		}
		values, err := e.salaries.ForSkillOn(skill, date)
		if err != nil {
			return err
		}
		avg, median := salaryStats(values)

		topCompany, err := e.skills.TopCompanyForSkillOn(skill, date)
		if err != nil {
			return err
		}
		topLocation, err := e.skills.TopLocationForSkillOn(skill, date)
		if err != nil {
			return err
		}

		return e.skillTrends.Upsert(&SkillDemandTrend{
			SkillName:    skill,
			Date:         date,
			MentionCount: mentions,
			JobCount:     jobCount,
			AvgSalary:    avg,
			MedianSalary: median,
			TopCompany:   topCompany,
			TopLocation:  topLocation,
		})
	})
}

// ComputeSalaryTrends upserts one salary_trends row per benchmarked
// (title, location) pair: an as-of-date copy of the percentile stats plus
// median growth against the most recent strictly-earlier row.
func (e *Engine) ComputeSalaryTrends(ctx context.Context, date string) error {
	pairs, err := e.salaries.BenchmarkPairs()
	if err != nil {
		return fmt.Errorf("trend step salary_trends failed: %w", err)
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Title + pairSep + p.Location
	}

	return e.runStep(ctx, "salary_trends", keys, func(key string) error {
		parts := strings.SplitN(key, pairSep, 2)
		title, location := parts[0], parts[1]

		bench, err := e.salaries.Benchmark(title, location)
		if err != nil {
			return err
		}
		if bench == nil {
			// Pair vanished between enumeration and compute; nothing to record
			return nil
		}

		prior, err := e.salaryTrends.LatestBefore(title, location, date)
		if err != nil {
			return err
		}

		var priorMedian *float64
		if prior != nil {
			priorMedian = prior.P50
		}

		return e.salaryTrends.Upsert(&SalaryTrend{
			TitleNormalized:    title,
			LocationNormalized: location,
			Date:               date,
			P10:                bench.P10,
			P25:                bench.P25,
			P50:                bench.P50,
			P75:                bench.P75,
			P90:                bench.P90,
			SampleSize:         bench.SampleSize,
			SalaryGrowthPct:    SalaryGrowthPct(bench.P50, priorMedian),
		})
	})
}

// ComputeCompanyVelocity upserts one company_hiring_velocity row per company.
// Posted count is scoped to the date; active and filled counts are
// as-of-date totals. Direction compares against the most recent row within
// the prior 7 days.
func (e *Engine) ComputeCompanyVelocity(ctx context.Context, date string) error {
	keys, err := e.jobs.DistinctCompanies()
	if err != nil {
		return fmt.Errorf("trend step company_velocity failed: %w", err)
	}

	windowStart := clock.DaysAgo(date, trendWindowDays)

	return e.runStep(ctx, "company_velocity", keys, func(company string) error {
		activity, err := e.jobs.CompanyActivity(company, date)
		if err != nil {
			return err
		}
		topRole, err := e.jobs.TopRoleForCompany(company)
		if err != nil {
			return err
		}
		topLocation, err := e.jobs.TopLocationForCompany(company)
		if err != nil {
			return err
		}

		prior, err := e.velocity.LatestInWindow(company, windowStart, date)
		if err != nil {
			return err
		}
		var priorPosted *int
		if prior != nil {
			priorPosted = &prior.JobsPostedCount
		}

		return e.velocity.Upsert(&CompanyHiringVelocity{
			CompanyName:      company,
			Date:             date,
			JobsPostedCount:  activity.PostedToday,
			JobsActiveCount:  activity.Active,
			JobsFilledCount:  activity.Filled,
			TopRole:          topRole,
			TopLocation:      topLocation,
			IsActivelyHiring: activity.Active > 0,
			HiringTrend:      ClassifyHiringTrend(activity.PostedToday, priorPosted),
		})
	})
}

// ComputeLocationDensity upserts one location_job_density row per location,
// all figures as-of-date totals
func (e *Engine) ComputeLocationDensity(ctx context.Context, date string) error {
	keys, err := e.jobs.DistinctLocations()
	if err != nil {
		return fmt.Errorf("trend step location_density failed: %w", err)
	}

	return e.runStep(ctx, "location_density", keys, func(location string) error {
		total, remote, err := e.jobs.LocationCounts(location)
		if err != nil {
			return err
		}
		values, err := e.salaries.ForLocation(location)
		if err != nil {
			return err
		}
		avg, median := salaryStats(values)

		topSkill, err := e.skills.TopSkillForLocation(location)
		if err != nil {
			return err
		}
		topCompany, err := e.jobs.TopCompanyForLocation(location)
		if err != nil {
			return err
		}
		topRole, err := e.jobs.TopRoleForLocation(location)
		if err != nil {
			return err
		}

		return e.density.Upsert(&LocationJobDensity{
			LocationNormalized: location,
			Date:               date,
			JobCount:           total,
			RemoteJobCount:     remote,
			AvgSalary:          avg,
			MedianSalary:       median,
			TopSkill:           topSkill,
			TopCompany:         topCompany,
			TopRole:            topRole,
		})
	})
}

// ComputeRoleDemand upserts one role_demand_trends row per normalized title,
// all figures as-of-date totals. Direction compares against the most recent
// row within the prior 7 days.
func (e *Engine) ComputeRoleDemand(ctx context.Context, date string) error {
	keys, err := e.jobs.DistinctTitles()
	if err != nil {
		return fmt.Errorf("trend step role_demand failed: %w", err)
	}

	windowStart := clock.DaysAgo(date, trendWindowDays)

	return e.runStep(ctx, "role_demand", keys, func(title string) error {
		total, remote, err := e.jobs.TitleCounts(title)
		if err != nil {
			return err
		}

		var remotePct float64
		if total > 0 {
			remotePct = float64(remote) / float64(total) * 100
		}

		values, err := e.salaries.ForTitle(title)
		if err != nil {
			return err
		}
		avg, median := salaryStats(values)

		topCompany, err := e.jobs.TopCompanyForTitle(title)
		if err != nil {
			return err
		}
		topLocation, err := e.jobs.TopLocationForTitle(title)
		if err != nil {
			return err
		}

		prior, err := e.roles.LatestInWindow(title, windowStart, date)
		if err != nil {
			return err
		}
		var priorCount *int
		if prior != nil {
			priorCount = &prior.JobCount
		}

		return e.roles.Upsert(&RoleDemandTrend{
			TitleNormalized:  title,
			Date:             date,
			JobCount:         total,
			AvgSalary:        avg,
			MedianSalary:     median,
			TopCompany:       topCompany,
			TopLocation:      topLocation,
			RemotePercentage: remotePct,
			DemandTrend:      ClassifyDemandTrend(total, priorCount),
		})
	})
}
