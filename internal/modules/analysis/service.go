// Package analysis orchestrates the daily market analysis run and exposes
// the read-side queries the API serves from the computed tables.
package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/clock"
	"github.com/jobpulse/jobpulse/internal/events"
	"github.com/jobpulse/jobpulse/internal/modules/alerts"
	"github.com/jobpulse/jobpulse/internal/modules/snapshot"
	"github.com/jobpulse/jobpulse/internal/modules/trends"
)

// trendingWindowDays is the look-back window for the trending queries
const trendingWindowDays = 30

// Service runs the daily pipeline: snapshot first, then the five trend
// computations in order, then alert detection over the fresh trend rows.
// Steps are sequential; a step failure aborts the run and leaves earlier
// steps' rows in place, which a re-run overwrites.
type Service struct {
	builder  *snapshot.Builder
	engine   *trends.Engine
	detector *alerts.Detector

	snapshots   *snapshot.Repository
	skillTrends *trends.SkillTrendRepository
	velocity    *trends.CompanyVelocityRepository
	density     *trends.LocationDensityRepository

	events *events.Manager
	clk    clock.Clock
	log    zerolog.Logger
}

// ServiceConfig holds the analysis service's dependencies
type ServiceConfig struct {
	Builder  *snapshot.Builder
	Engine   *trends.Engine
	Detector *alerts.Detector

	Snapshots   *snapshot.Repository
	SkillTrends *trends.SkillTrendRepository
	Velocity    *trends.CompanyVelocityRepository
	Density     *trends.LocationDensityRepository

	Events *events.Manager
	Clock  clock.Clock
	Log    zerolog.Logger
}

// NewService creates a new analysis service
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		builder:     cfg.Builder,
		engine:      cfg.Engine,
		detector:    cfg.Detector,
		snapshots:   cfg.Snapshots,
		skillTrends: cfg.SkillTrends,
		velocity:    cfg.Velocity,
		density:     cfg.Density,
		events:      cfg.Events,
		clk:         cfg.Clock,
		log:         cfg.Log.With().Str("service", "analysis").Logger(),
	}
}

// RunDailyAnalysis executes the full pipeline for the clock's current date
// and returns the snapshot it produced. Safe to re-run for the same date.
func (s *Service) RunDailyAnalysis(ctx context.Context) (*snapshot.MarketSnapshot, error) {
	date := s.clk.Today()
	s.log.Info().Str("date", date).Msg("Starting daily analysis")
	s.events.Emit(events.AnalysisStarted, "analysis", map[string]interface{}{
		"date": date,
	})

	snap, err := s.run(ctx, date)
	if err != nil {
		s.events.Emit(events.AnalysisFailed, "analysis", map[string]interface{}{
			"date": date,
		})
		s.events.EmitError("analysis", err, map[string]interface{}{
			"date": date,
		})
		return nil, err
	}

	s.events.Emit(events.AnalysisCompleted, "analysis", map[string]interface{}{
		"date": date,
	})
	s.log.Info().Str("date", date).Msg("Daily analysis completed")
	return snap, nil
}

func (s *Service) run(ctx context.Context, date string) (*snapshot.MarketSnapshot, error) {
	snap, err := s.builder.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot step failed: %w", err)
	}
	s.events.Emit(events.SnapshotCreated, "analysis", map[string]interface{}{
		"date":       snap.Date,
		"total_jobs": snap.TotalJobs,
	})

	for _, step := range s.engine.Steps() {
		if err := step.Run(ctx, date); err != nil {
			return nil, err
		}
	}

	if err := s.detector.Run(ctx, date); err != nil {
		return nil, fmt.Errorf("alert detection step failed: %w", err)
	}

	return snap, nil
}

// GetMarketSnapshot returns the most recent snapshot, nil when none exists
func (s *Service) GetMarketSnapshot() (*snapshot.MarketSnapshot, error) {
	return s.snapshots.Latest()
}

// GetHistoricalSnapshots returns snapshots from the last N calendar dates
// ending today, newest first
func (s *Service) GetHistoricalSnapshots(days int) ([]snapshot.MarketSnapshot, error) {
	return s.snapshots.History(clock.DaysAgo(s.clk.Today(), days-1))
}

// GetTrendingSkills returns the top skills by summed job count over the
// trailing 30 days
func (s *Service) GetTrendingSkills(limit int) ([]trends.TrendingSkill, error) {
	return s.skillTrends.Trending(s.windowStart(), limit)
}

// GetMostActiveCompanies returns the top companies by jobs posted over the
// trailing 30 days
func (s *Service) GetMostActiveCompanies(limit int) ([]trends.ActiveCompany, error) {
	return s.velocity.MostActive(s.windowStart(), limit)
}

// GetHottestLocations returns the top locations by summed job count over
// the trailing 30 days
func (s *Service) GetHottestLocations(limit int) ([]trends.HotLocation, error) {
	return s.density.Hottest(s.windowStart(), limit)
}

// windowStart returns the inclusive lower bound covering exactly
// trendingWindowDays calendar dates ending today
func (s *Service) windowStart() string {
	return clock.DaysAgo(s.clk.Today(), trendingWindowDays-1)
}
