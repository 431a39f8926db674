package trends

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CompanyVelocityRepository handles company_hiring_velocity persistence
type CompanyVelocityRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewCompanyVelocityRepository creates a new company velocity repository
func NewCompanyVelocityRepository(db *sql.DB, log zerolog.Logger) *CompanyVelocityRepository {
	return &CompanyVelocityRepository{
		db:  db,
		log: log.With().Str("repo", "company_velocity").Logger(),
	}
}

// Upsert inserts or overwrites the row for (company_name, date)
func (r *CompanyVelocityRepository) Upsert(v *CompanyHiringVelocity) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	isHiring := 0
	if v.IsActivelyHiring {
		isHiring = 1
	}

	_, err := r.db.Exec(`
		INSERT INTO company_hiring_velocity (
			company_name, date, jobs_posted_count, jobs_active_count, jobs_filled_count,
			top_role, top_location, is_actively_hiring, hiring_trend, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_name, date) DO UPDATE SET
			jobs_posted_count = excluded.jobs_posted_count,
			jobs_active_count = excluded.jobs_active_count,
			jobs_filled_count = excluded.jobs_filled_count,
			top_role = excluded.top_role,
			top_location = excluded.top_location,
			is_actively_hiring = excluded.is_actively_hiring,
			hiring_trend = excluded.hiring_trend,
			created_at = excluded.created_at
	`,
		v.CompanyName, v.Date, v.JobsPostedCount, v.JobsActiveCount, v.JobsFilledCount,
		v.TopRole, v.TopLocation, isHiring, v.HiringTrend, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company velocity %s/%s: %w", v.CompanyName, v.Date, err)
	}
	return nil
}

const companyVelocityColumns = `id, company_name, date, jobs_posted_count,
	jobs_active_count, jobs_filled_count, top_role, top_location,
	is_actively_hiring, hiring_trend`

func scanCompanyVelocity(row interface{ Scan(...interface{}) error }) (*CompanyHiringVelocity, error) {
	var (
		v        CompanyHiringVelocity
		isHiring int
	)
	err := row.Scan(
		&v.ID, &v.CompanyName, &v.Date, &v.JobsPostedCount,
		&v.JobsActiveCount, &v.JobsFilledCount, &v.TopRole, &v.TopLocation,
		&isHiring, &v.HiringTrend,
	)
	if err != nil {
		return nil, err
	}
	v.IsActivelyHiring = isHiring != 0
	return &v, nil
}

// LatestInWindow returns the most recent row for a company with
// from <= date < until, nil when the window is empty. Trend classification
// uses the prior 7 days as its window.
func (r *CompanyVelocityRepository) LatestInWindow(company, from, until string) (*CompanyHiringVelocity, error) {
	v, err := scanCompanyVelocity(r.db.QueryRow(`
		SELECT `+companyVelocityColumns+` FROM company_hiring_velocity
		WHERE company_name = ? AND date >= ? AND date < ?
		ORDER BY date DESC LIMIT 1
	`, company, from, until))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prior velocity for %s: %w", company, err)
	}
	return v, nil
}

// ForDate returns every company velocity row for a date
func (r *CompanyVelocityRepository) ForDate(date string) ([]CompanyHiringVelocity, error) {
	rows, err := r.db.Query(
		"SELECT "+companyVelocityColumns+" FROM company_hiring_velocity WHERE date = ?", date)
	if err != nil {
		return nil, fmt.Errorf("failed to query company velocity for %s: %w", date, err)
	}
	defer rows.Close()

	var velocities []CompanyHiringVelocity
	for rows.Next() {
		v, err := scanCompanyVelocity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company velocity: %w", err)
		}
		velocities = append(velocities, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company velocity: %w", err)
	}
	return velocities, nil
}

// MostActive aggregates velocity rows dated on or after `since` per company,
// ordered by summed posted count descending. The reported hiring_trend is
// MAX(hiring_trend) over the group: a representative row, not necessarily
// the latest one.
func (r *CompanyVelocityRepository) MostActive(since string, limit int) ([]ActiveCompany, error) {
	rows, err := r.db.Query(`
		SELECT company_name, SUM(jobs_posted_count), AVG(jobs_active_count), MAX(hiring_trend)
		FROM company_hiring_velocity
		WHERE date >= ?
		GROUP BY company_name
		ORDER BY SUM(jobs_posted_count) DESC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query most active companies: %w", err)
	}
	defer rows.Close()

	var companies []ActiveCompany
	for rows.Next() {
		var c ActiveCompany
		if err := rows.Scan(&c.CompanyName, &c.TotalJobsPosted, &c.AvgActiveJobs, &c.HiringTrend); err != nil {
			return nil, fmt.Errorf("failed to scan active company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active companies: %w", err)
	}
	return companies, nil
}
