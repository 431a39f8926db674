package trends

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SalaryTrendRepository handles salary_trends persistence
type SalaryTrendRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSalaryTrendRepository creates a new salary trend repository
func NewSalaryTrendRepository(db *sql.DB, log zerolog.Logger) *SalaryTrendRepository {
	return &SalaryTrendRepository{
		db:  db,
		log: log.With().Str("repo", "salary_trends").Logger(),
	}
}

// Upsert inserts or overwrites the row for (title, location, date)
func (r *SalaryTrendRepository) Upsert(t *SalaryTrend) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(`
		INSERT INTO salary_trends (
			title_normalized, location_normalized, date,
			p10, p25, p50, p75, p90, sample_size, salary_growth_pct, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title_normalized, location_normalized, date) DO UPDATE SET
			p10 = excluded.p10,
			p25 = excluded.p25,
			p50 = excluded.p50,
			p75 = excluded.p75,
			p90 = excluded.p90,
			sample_size = excluded.sample_size,
			salary_growth_pct = excluded.salary_growth_pct,
			created_at = excluded.created_at
	`,
		t.TitleNormalized, t.LocationNormalized, t.Date,
		t.P10, t.P25, t.P50, t.P75, t.P90, t.SampleSize, t.SalaryGrowthPct, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert salary trend %s/%s/%s: %w",
			t.TitleNormalized, t.LocationNormalized, t.Date, err)
	}
	return nil
}

const salaryTrendColumns = `id, title_normalized, location_normalized, date,
	p10, p25, p50, p75, p90, sample_size, salary_growth_pct`

func scanSalaryTrend(row interface{ Scan(...interface{}) error }) (*SalaryTrend, error) {
	var t SalaryTrend
	err := row.Scan(
		&t.ID, &t.TitleNormalized, &t.LocationNormalized, &t.Date,
		&t.P10, &t.P25, &t.P50, &t.P75, &t.P90, &t.SampleSize, &t.SalaryGrowthPct,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LatestBefore returns the most recent row for a pair strictly earlier than
// the given date, with unbounded look-back. Nil when no earlier row exists.
func (r *SalaryTrendRepository) LatestBefore(title, location, date string) (*SalaryTrend, error) {
	t, err := scanSalaryTrend(r.db.QueryRow(`
		SELECT `+salaryTrendColumns+` FROM salary_trends
		WHERE title_normalized = ? AND location_normalized = ? AND date < ?
		ORDER BY date DESC LIMIT 1
	`, title, location, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prior salary trend for %s/%s: %w", title, location, err)
	}
	return t, nil
}

// ForDate returns every salary trend row for a date
func (r *SalaryTrendRepository) ForDate(date string) ([]SalaryTrend, error) {
	rows, err := r.db.Query(
		"SELECT "+salaryTrendColumns+" FROM salary_trends WHERE date = ?", date)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary trends for %s: %w", date, err)
	}
	defer rows.Close()

	var trends []SalaryTrend
	for rows.Next() {
		t, err := scanSalaryTrend(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary trend: %w", err)
		}
		trends = append(trends, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary trends: %w", err)
	}
	return trends, nil
}
