package trends

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RoleTrendRepository handles role_demand_trends persistence
type RoleTrendRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRoleTrendRepository creates a new role trend repository
func NewRoleTrendRepository(db *sql.DB, log zerolog.Logger) *RoleTrendRepository {
	return &RoleTrendRepository{
		db:  db,
		log: log.With().Str("repo", "role_trends").Logger(),
	}
}

// Upsert inserts or overwrites the row for (title_normalized, date)
func (r *RoleTrendRepository) Upsert(t *RoleDemandTrend) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(`
		INSERT INTO role_demand_trends (
			title_normalized, date, job_count, avg_salary, median_salary,
			top_company, top_location, remote_percentage, demand_trend, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title_normalized, date) DO UPDATE SET
			job_count = excluded.job_count,
			avg_salary = excluded.avg_salary,
			median_salary = excluded.median_salary,
			top_company = excluded.top_company,
			top_location = excluded.top_location,
			remote_percentage = excluded.remote_percentage,
			demand_trend = excluded.demand_trend,
			created_at = excluded.created_at
	`,
		t.TitleNormalized, t.Date, t.JobCount, t.AvgSalary, t.MedianSalary,
		t.TopCompany, t.TopLocation, t.RemotePercentage, t.DemandTrend, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert role trend %s/%s: %w", t.TitleNormalized, t.Date, err)
	}
	return nil
}

const roleTrendColumns = `id, title_normalized, date, job_count, avg_salary,
	median_salary, top_company, top_location, remote_percentage, demand_trend`

func scanRoleTrend(row interface{ Scan(...interface{}) error }) (*RoleDemandTrend, error) {
	var t RoleDemandTrend
	err := row.Scan(
		&t.ID, &t.TitleNormalized, &t.Date, &t.JobCount, &t.AvgSalary,
		&t.MedianSalary, &t.TopCompany, &t.TopLocation, &t.RemotePercentage, &t.DemandTrend,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LatestInWindow returns the most recent row for a title with
// from <= date < until, nil when the window is empty
func (r *RoleTrendRepository) LatestInWindow(title, from, until string) (*RoleDemandTrend, error) {
	t, err := scanRoleTrend(r.db.QueryRow(`
		SELECT `+roleTrendColumns+` FROM role_demand_trends
		WHERE title_normalized = ? AND date >= ? AND date < ?
		ORDER BY date DESC LIMIT 1
	`, title, from, until))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prior role trend for %s: %w", title, err)
	}
	return t, nil
}

// GetByTitleAndDate returns the row for an exact (title, date) key,
// nil when absent
func (r *RoleTrendRepository) GetByTitleAndDate(title, date string) (*RoleDemandTrend, error) {
	t, err := scanRoleTrend(r.db.QueryRow(
		"SELECT "+roleTrendColumns+" FROM role_demand_trends WHERE title_normalized = ? AND date = ?",
		title, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role trend %s/%s: %w", title, date, err)
	}
	return t, nil
}
