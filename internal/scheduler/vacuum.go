package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/database"
)

// VacuumJob rebuilds the database file during the weekly maintenance
// window to reclaim space freed by alert cleanup
type VacuumJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewVacuumJob creates a new vacuum job
func NewVacuumJob(db *database.DB, log zerolog.Logger) *VacuumJob {
	return &VacuumJob{
		db:  db,
		log: log.With().Str("job", "db_vacuum").Logger(),
	}
}

// Name returns the job name
func (j *VacuumJob) Name() string {
	return "db_vacuum"
}

// Run rebuilds the database file
func (j *VacuumJob) Run() error {
	if err := j.db.Vacuum(); err != nil {
		return err
	}

	stats, err := j.db.GetStats()
	if err != nil {
		return err
	}

	j.log.Info().Int64("size_bytes", stats.SizeBytes).Msg("Vacuum finished")
	return nil
}
