package facts

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SkillRepository reads the job_skills fact table
type SkillRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSkillRepository creates a new skill mention repository
func NewSkillRepository(db *sql.DB, log zerolog.Logger) *SkillRepository {
	return &SkillRepository{
		db:  db,
		log: log.With().Str("repo", "skills").Logger(),
	}
}

// DistinctMentionedOn returns every normalized skill mentioned on the given date
func (r *SkillRepository) DistinctMentionedOn(date string) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT DISTINCT lower(trim(skill_name)) FROM job_skills WHERE date(created_at) = ?", date)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate skills for %s: %w", date, err)
	}
	defer rows.Close()

	var skills []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skills: %w", err)
	}
	return skills, nil
}

// TopMentionedOn returns the single most-mentioned skill on the given date,
// nil when no skills were mentioned
func (r *SkillRepository) TopMentionedOn(date string) (*string, error) {
	var skill string
	err := r.db.QueryRow(`
		SELECT lower(trim(skill_name)) FROM job_skills
		WHERE date(created_at) = ?
		GROUP BY lower(trim(skill_name))
		ORDER BY COUNT(*) DESC LIMIT 1
	`, date).Scan(&skill)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top skill for %s: %w", date, err)
	}
	return &skill, nil
}

// MentionCountOn returns how many times a skill was mentioned on the given date
func (r *SkillRepository) MentionCountOn(skill, date string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM job_skills
		WHERE lower(trim(skill_name)) = ? AND date(created_at) = ?
	`, skill, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count mentions of %s: %w", skill, err)
	}
	return count, nil
}

// JobCountOn returns how many distinct jobs mentioned a skill on the given date
func (r *SkillRepository) JobCountOn(skill, date string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(DISTINCT job_hash) FROM job_skills
		WHERE lower(trim(skill_name)) = ? AND date(created_at) = ?
	`, skill, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs mentioning %s: %w", skill, err)
	}
	return count, nil
}

// TopCompanyForSkillOn returns the company whose jobs mentioned the skill
// most on the given date
func (r *SkillRepository) TopCompanyForSkillOn(skill, date string) (*string, error) {
	return r.topJoined("j.company", skill, date)
}

// TopLocationForSkillOn returns the location whose jobs mentioned the skill
// most on the given date
func (r *SkillRepository) TopLocationForSkillOn(skill, date string) (*string, error) {
	return r.topJoined("j.location", skill, date)
}

// TopSkillForLocation returns the most-mentioned skill across all jobs in a
// normalized location, as-of-today
func (r *SkillRepository) TopSkillForLocation(location string) (*string, error) {
	var skill string
	err := r.db.QueryRow(`
		SELECT lower(trim(s.skill_name)) FROM job_skills s
		JOIN jobs j ON j.job_hash = s.job_hash
		WHERE lower(trim(COALESCE(j.location, ''))) = ?
		GROUP BY lower(trim(s.skill_name))
		ORDER BY COUNT(*) DESC LIMIT 1
	`, location).Scan(&skill)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top skill for location %s: %w", location, err)
	}
	return &skill, nil
}

func (r *SkillRepository) topJoined(column, skill, date string) (*string, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM job_skills s
		JOIN jobs j ON j.job_hash = s.job_hash
		WHERE lower(trim(s.skill_name)) = ? AND date(s.created_at) = ?
			AND TRIM(COALESCE(%s, '')) <> ''
		GROUP BY %s ORDER BY COUNT(*) DESC LIMIT 1
	`, column, column, column)

	var value string
	err := r.db.QueryRow(query, skill, date).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top %s for skill %s: %w", column, skill, err)
	}
	return &value, nil
}
