package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/modules/analysis"
)

// analysisRunTimeout bounds one full pipeline run. The run is sequential
// over five trend steps plus snapshot and detection, so a stuck query must
// not hold the job slot past the next scheduled run.
const analysisRunTimeout = 30 * time.Minute

// DailyAnalysisJob runs the full market analysis pipeline once per day
type DailyAnalysisJob struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewDailyAnalysisJob creates a new daily analysis job
func NewDailyAnalysisJob(service *analysis.Service, log zerolog.Logger) *DailyAnalysisJob {
	return &DailyAnalysisJob{
		service: service,
		log:     log.With().Str("job", "daily_analysis").Logger(),
	}
}

// Name returns the job name
func (j *DailyAnalysisJob) Name() string {
	return "daily_analysis"
}

// Run executes the analysis pipeline with a per-run deadline
func (j *DailyAnalysisJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), analysisRunTimeout)
	defer cancel()

	snap, err := j.service.RunDailyAnalysis(ctx)
	if err != nil {
		return err
	}

	j.log.Info().
		Str("date", snap.Date).
		Int("total_jobs", snap.TotalJobs).
		Str("sentiment", snap.MarketSentiment).
		Msg("Daily analysis job finished")
	return nil
}
