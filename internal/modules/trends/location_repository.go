package trends

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// LocationDensityRepository handles location_job_density persistence
type LocationDensityRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewLocationDensityRepository creates a new location density repository
func NewLocationDensityRepository(db *sql.DB, log zerolog.Logger) *LocationDensityRepository {
	return &LocationDensityRepository{
		db:  db,
		log: log.With().Str("repo", "location_density").Logger(),
	}
}

// Upsert inserts or overwrites the row for (location_normalized, date)
func (r *LocationDensityRepository) Upsert(d *LocationJobDensity) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(`
		INSERT INTO location_job_density (
			location_normalized, date, job_count, remote_job_count,
			avg_salary, median_salary, top_skill, top_company, top_role, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(location_normalized, date) DO UPDATE SET
			job_count = excluded.job_count,
			remote_job_count = excluded.remote_job_count,
			avg_salary = excluded.avg_salary,
			median_salary = excluded.median_salary,
			top_skill = excluded.top_skill,
			top_company = excluded.top_company,
			top_role = excluded.top_role,
			created_at = excluded.created_at
	`,
		d.LocationNormalized, d.Date, d.JobCount, d.RemoteJobCount,
		d.AvgSalary, d.MedianSalary, d.TopSkill, d.TopCompany, d.TopRole, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert location density %s/%s: %w", d.LocationNormalized, d.Date, err)
	}
	return nil
}

// GetByLocationAndDate returns the row for an exact (location, date) key,
// nil when absent
func (r *LocationDensityRepository) GetByLocationAndDate(location, date string) (*LocationJobDensity, error) {
	var d LocationJobDensity
	err := r.db.QueryRow(`
		SELECT id, location_normalized, date, job_count, remote_job_count,
			avg_salary, median_salary, top_skill, top_company, top_role
		FROM location_job_density
		WHERE location_normalized = ? AND date = ?
	`, location, date).Scan(
		&d.ID, &d.LocationNormalized, &d.Date, &d.JobCount, &d.RemoteJobCount,
		&d.AvgSalary, &d.MedianSalary, &d.TopSkill, &d.TopCompany, &d.TopRole,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location density %s/%s: %w", location, date, err)
	}
	return &d, nil
}

// Hottest aggregates density rows dated on or after `since` per location,
// ordered by summed job count descending
func (r *LocationDensityRepository) Hottest(since string, limit int) ([]HotLocation, error) {
	rows, err := r.db.Query(`
		SELECT location_normalized, SUM(job_count), AVG(median_salary)
		FROM location_job_density
		WHERE date >= ?
		GROUP BY location_normalized
		ORDER BY SUM(job_count) DESC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query hottest locations: %w", err)
	}
	defer rows.Close()

	var locations []HotLocation
	for rows.Next() {
		var l HotLocation
		var avgMedian sql.NullFloat64
		if err := rows.Scan(&l.Location, &l.TotalJobCount, &avgMedian); err != nil {
			return nil, fmt.Errorf("failed to scan hot location: %w", err)
		}
		if avgMedian.Valid {
			l.AvgMedianSalary = &avgMedian.Float64
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hot locations: %w", err)
	}
	return locations, nil
}
