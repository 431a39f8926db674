package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/database"
)

// WALCheckpointJob periodically truncates the SQLite WAL file so it does
// not grow unbounded between analysis runs
type WALCheckpointJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewWALCheckpointJob creates a new WAL checkpoint job
func NewWALCheckpointJob(db *database.DB, log zerolog.Logger) *WALCheckpointJob {
	return &WALCheckpointJob{
		db:  db,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run performs a TRUNCATE checkpoint
func (j *WALCheckpointJob) Run() error {
	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		return err
	}

	j.log.Debug().Msg("WAL checkpoint finished")
	return nil
}
