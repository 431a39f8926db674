package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/events"
	"github.com/jobpulse/jobpulse/internal/modules/alerts"
)

// AlertCleanupJob deletes read alerts past the retention window.
// Unread alerts are never deleted regardless of age.
type AlertCleanupJob struct {
	repo          *alerts.Repository
	events        *events.Manager
	retentionDays int
	log           zerolog.Logger
}

// NewAlertCleanupJob creates a new alert cleanup job
func NewAlertCleanupJob(repo *alerts.Repository, eventManager *events.Manager, retentionDays int, log zerolog.Logger) *AlertCleanupJob {
	return &AlertCleanupJob{
		repo:          repo,
		events:        eventManager,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "alert_cleanup").Logger(),
	}
}

// Name returns the job name
func (j *AlertCleanupJob) Name() string {
	return "alert_cleanup"
}

// Run deletes read alerts older than the retention window
func (j *AlertCleanupJob) Run() error {
	deleted, err := j.repo.CleanupOld(j.retentionDays)
	if err != nil {
		return err
	}

	if deleted > 0 {
		j.events.Emit(events.AlertsCleaned, "alerts", map[string]interface{}{
			"deleted":        deleted,
			"retention_days": j.retentionDays,
		})
	}

	j.log.Info().
		Int("deleted", deleted).
		Int("retention_days", j.retentionDays).
		Msg("Alert cleanup finished")
	return nil
}
