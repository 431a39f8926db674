package snapshot

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles market snapshot persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// Upsert inserts or overwrites the snapshot for its date.
// The date key keeps re-runs idempotent: one row per calendar date.
func (r *Repository) Upsert(s *MarketSnapshot) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(`
		INSERT INTO market_snapshots (
			date, total_jobs, new_jobs_today, jobs_filled_today,
			avg_salary, median_salary, remote_job_percentage,
			top_skill, top_company, top_location,
			total_companies_hiring, market_sentiment, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_jobs = excluded.total_jobs,
			new_jobs_today = excluded.new_jobs_today,
			jobs_filled_today = excluded.jobs_filled_today,
			avg_salary = excluded.avg_salary,
			median_salary = excluded.median_salary,
			remote_job_percentage = excluded.remote_job_percentage,
			top_skill = excluded.top_skill,
			top_company = excluded.top_company,
			top_location = excluded.top_location,
			total_companies_hiring = excluded.total_companies_hiring,
			market_sentiment = excluded.market_sentiment,
			notes = excluded.notes,
			created_at = excluded.created_at
	`,
		s.Date, s.TotalJobs, s.NewJobsToday, s.JobsFilledToday,
		s.AvgSalary, s.MedianSalary, s.RemoteJobPercentage,
		s.TopSkill, s.TopCompany, s.TopLocation,
		s.TotalCompaniesHiring, s.MarketSentiment, s.Notes, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %s: %w", s.Date, err)
	}

	s.CreatedAt = createdAt
	return nil
}

const snapshotColumns = `id, date, total_jobs, new_jobs_today, jobs_filled_today,
	avg_salary, median_salary, remote_job_percentage,
	top_skill, top_company, top_location,
	total_companies_hiring, market_sentiment, notes, created_at`

func (r *Repository) scan(row interface{ Scan(...interface{}) error }) (*MarketSnapshot, error) {
	var s MarketSnapshot
	err := row.Scan(
		&s.ID, &s.Date, &s.TotalJobs, &s.NewJobsToday, &s.JobsFilledToday,
		&s.AvgSalary, &s.MedianSalary, &s.RemoteJobPercentage,
		&s.TopSkill, &s.TopCompany, &s.TopLocation,
		&s.TotalCompaniesHiring, &s.MarketSentiment, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByDate returns the snapshot for a date, nil when none exists
func (r *Repository) GetByDate(date string) (*MarketSnapshot, error) {
	s, err := r.scan(r.db.QueryRow(
		"SELECT "+snapshotColumns+" FROM market_snapshots WHERE date = ?", date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w", date, err)
	}
	return s, nil
}

// Latest returns the most recent snapshot by date, nil when the table is empty
func (r *Repository) Latest() (*MarketSnapshot, error) {
	s, err := r.scan(r.db.QueryRow(
		"SELECT " + snapshotColumns + " FROM market_snapshots ORDER BY date DESC LIMIT 1"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return s, nil
}

// History returns snapshots dated on or after `since`, newest first
func (r *Repository) History(since string) ([]MarketSnapshot, error) {
	rows, err := r.db.Query(
		"SELECT "+snapshotColumns+" FROM market_snapshots WHERE date >= ? ORDER BY date DESC", since)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot history: %w", err)
	}
	defer rows.Close()

	var snapshots []MarketSnapshot
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// NewJobsBaseline returns the mean of new_jobs_today over snapshots with
// from <= date < until, nil when that window holds no rows. Used as the
// trailing-7-day sentiment baseline with today excluded.
func (r *Repository) NewJobsBaseline(from, until string) (*float64, error) {
	var baseline sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT AVG(new_jobs_today) FROM market_snapshots
		WHERE date >= ? AND date < ?
	`, from, until).Scan(&baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to compute new jobs baseline: %w", err)
	}
	if !baseline.Valid {
		return nil, nil
	}
	return &baseline.Float64, nil
}
