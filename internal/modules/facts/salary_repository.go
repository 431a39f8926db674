package facts

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SalaryRepository reads the salary_predictions and salary_benchmarks
// fact tables
type SalaryRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSalaryRepository creates a new salary fact repository
func NewSalaryRepository(db *sql.DB, log zerolog.Logger) *SalaryRepository {
	return &SalaryRepository{
		db:  db,
		log: log.With().Str("repo", "salaries").Logger(),
	}
}

// AllPredicted returns every known per-job salary prediction
func (r *SalaryRepository) AllPredicted() ([]float64, error) {
	return r.collect("SELECT predicted_median FROM salary_predictions")
}

// ForSkillOn returns predictions for jobs that mentioned a skill on the
// given date
func (r *SalaryRepository) ForSkillOn(skill, date string) ([]float64, error) {
	return r.collect(`
		SELECT sp.predicted_median FROM salary_predictions sp
		JOIN job_skills s ON s.job_hash = sp.job_hash
		WHERE lower(trim(s.skill_name)) = ? AND date(s.created_at) = ?
	`, skill, date)
}

// ForLocation returns predictions for all jobs in a normalized location
func (r *SalaryRepository) ForLocation(location string) ([]float64, error) {
	return r.collect(`
		SELECT sp.predicted_median FROM salary_predictions sp
		JOIN jobs j ON j.job_hash = sp.job_hash
		WHERE lower(trim(COALESCE(j.location, ''))) = ?
	`, location)
}

// ForTitle returns predictions for all jobs with a normalized title
func (r *SalaryRepository) ForTitle(title string) ([]float64, error) {
	return r.collect(`
		SELECT sp.predicted_median FROM salary_predictions sp
		JOIN jobs j ON j.job_hash = sp.job_hash
		WHERE lower(trim(j.title)) = ?
	`, title)
}

func (r *SalaryRepository) collect(query string, args ...interface{}) ([]float64, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salaries: %w", err)
	}
	return values, nil
}

// BenchmarkPairs returns every benchmarked (title, location) pair
func (r *SalaryRepository) BenchmarkPairs() ([]BenchmarkKey, error) {
	rows, err := r.db.Query(
		"SELECT DISTINCT title_normalized, location_normalized FROM salary_benchmarks")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate benchmark pairs: %w", err)
	}
	defer rows.Close()

	var pairs []BenchmarkKey
	for rows.Next() {
		var k BenchmarkKey
		if err := rows.Scan(&k.Title, &k.Location); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark pair: %w", err)
		}
		pairs = append(pairs, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benchmark pairs: %w", err)
	}
	return pairs, nil
}

// Benchmark returns the percentile stats for a (title, location) pair,
// nil when the pair has no benchmark
func (r *SalaryRepository) Benchmark(title, location string) (*SalaryBenchmark, error) {
	var b SalaryBenchmark
	err := r.db.QueryRow(`
		SELECT title_normalized, location_normalized, p10, p25, p50, p75, p90, sample_size
		FROM salary_benchmarks
		WHERE title_normalized = ? AND location_normalized = ?
	`, title, location).Scan(
		&b.TitleNormalized, &b.LocationNormalized,
		&b.P10, &b.P25, &b.P50, &b.P75, &b.P90, &b.SampleSize,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmark for %s/%s: %w", title, location, err)
	}
	return &b, nil
}
