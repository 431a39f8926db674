package trends

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SkillTrendRepository handles skill_demand_trends persistence
type SkillTrendRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSkillTrendRepository creates a new skill trend repository
func NewSkillTrendRepository(db *sql.DB, log zerolog.Logger) *SkillTrendRepository {
	return &SkillTrendRepository{
		db:  db,
		log: log.With().Str("repo", "skill_trends").Logger(),
	}
}

// Upsert inserts or overwrites the row for (skill_name, date)
func (r *SkillTrendRepository) Upsert(t *SkillDemandTrend) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	_, err := r.db.Exec(`
		INSERT INTO skill_demand_trends (
			skill_name, date, mention_count, job_count,
			avg_salary, median_salary, top_company, top_location, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(skill_name, date) DO UPDATE SET
			mention_count = excluded.mention_count,
			job_count = excluded.job_count,
			avg_salary = excluded.avg_salary,
			median_salary = excluded.median_salary,
			top_company = excluded.top_company,
			top_location = excluded.top_location,
			created_at = excluded.created_at
	`,
		t.SkillName, t.Date, t.MentionCount, t.JobCount,
		t.AvgSalary, t.MedianSalary, t.TopCompany, t.TopLocation, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert skill trend %s/%s: %w", t.SkillName, t.Date, err)
	}
	return nil
}

const skillTrendColumns = `id, skill_name, date, mention_count, job_count,
	avg_salary, median_salary, top_company, top_location`

func scanSkillTrend(row interface{ Scan(...interface{}) error }) (*SkillDemandTrend, error) {
	var t SkillDemandTrend
	err := row.Scan(
		&t.ID, &t.SkillName, &t.Date, &t.MentionCount, &t.JobCount,
		&t.AvgSalary, &t.MedianSalary, &t.TopCompany, &t.TopLocation,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySkillAndDate returns the row for an exact (skill, date) key,
// nil when absent. Surge detection uses this for the exactly-7-days-ago
// comparison.
func (r *SkillTrendRepository) GetBySkillAndDate(skill, date string) (*SkillDemandTrend, error) {
	t, err := scanSkillTrend(r.db.QueryRow(
		"SELECT "+skillTrendColumns+" FROM skill_demand_trends WHERE skill_name = ? AND date = ?",
		skill, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get skill trend %s/%s: %w", skill, date, err)
	}
	return t, nil
}

// ForDate returns every skill trend row for a date
func (r *SkillTrendRepository) ForDate(date string) ([]SkillDemandTrend, error) {
	rows, err := r.db.Query(
		"SELECT "+skillTrendColumns+" FROM skill_demand_trends WHERE date = ?", date)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill trends for %s: %w", date, err)
	}
	defer rows.Close()

	var trends []SkillDemandTrend
	for rows.Next() {
		t, err := scanSkillTrend(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill trend: %w", err)
		}
		trends = append(trends, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill trends: %w", err)
	}
	return trends, nil
}

// Trending aggregates trend rows dated on or after `since` per skill,
// ordered by summed job count descending
func (r *SkillTrendRepository) Trending(since string, limit int) ([]TrendingSkill, error) {
	rows, err := r.db.Query(`
		SELECT skill_name, SUM(job_count), AVG(avg_salary)
		FROM skill_demand_trends
		WHERE date >= ?
		GROUP BY skill_name
		ORDER BY SUM(job_count) DESC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending skills: %w", err)
	}
	defer rows.Close()

	var trending []TrendingSkill
	for rows.Next() {
		var t TrendingSkill
		var avg sql.NullFloat64
		if err := rows.Scan(&t.SkillName, &t.TotalJobCount, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan trending skill: %w", err)
		}
		if avg.Valid {
			t.AvgSalary = &avg.Float64
		}
		trending = append(trending, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trending skills: %w", err)
	}
	return trending, nil
}
