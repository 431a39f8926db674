package facts

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/utils"
)

// JobRepository reads the jobs fact table
type JobRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewJobRepository creates a new job fact repository
func NewJobRepository(db *sql.DB, log zerolog.Logger) *JobRepository {
	return &JobRepository{
		db:  db,
		log: log.With().Str("repo", "jobs").Logger(),
	}
}

// activeStatuses and closedStatuses partition job lifecycle states.
// "filled" and "closed" both count as off-market.
const closedStatusFilter = "status IN ('closed', 'filled')"

// CountAll returns the total number of known jobs
func (r *JobRepository) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CountPostedOn returns how many jobs were first posted on the given date
func (r *JobRepository) CountPostedOn(date string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE date(posted_at) = ?", date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs posted on %s: %w", date, err)
	}
	return count, nil
}

// CountFilledOn returns how many jobs transitioned off-market on the given date
func (r *JobRepository) CountFilledOn(date string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM jobs WHERE " + closedStatusFilter + " AND date(updated_at) = ?"
	err := r.db.QueryRow(query, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs filled on %s: %w", date, err)
	}
	return count, nil
}

// remoteFilter builds a WHERE fragment matching the remote keyword set
// against location and title. Substring matching is approximate on purpose.
func remoteFilter() (string, []interface{}) {
	keywords := utils.RemoteKeywords()
	clauses := make([]string, 0, len(keywords)*2)
	args := make([]interface{}, 0, len(keywords)*2)
	for _, kw := range keywords {
		clauses = append(clauses,
			"lower(COALESCE(location, '')) LIKE ?",
			"lower(title) LIKE ?",
		)
		pattern := "%" + kw + "%"
		args = append(args, pattern, pattern)
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

// CountRemote returns how many jobs look like remote positions
func (r *JobRepository) CountRemote() (int, error) {
	filter, args := remoteFilter()
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE "+filter, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count remote jobs: %w", err)
	}
	return count, nil
}

// CountActiveCompanies returns the number of distinct companies with at
// least one active job
func (r *JobRepository) CountActiveCompanies() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(DISTINCT company) FROM jobs WHERE status = 'active'").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active companies: %w", err)
	}
	return count, nil
}

// TopCompany returns the company with the most jobs overall, nil when the
// jobs table is empty
func (r *JobRepository) TopCompany() (*string, error) {
	return r.topOf("company", "", nil)
}

// TopLocation returns the location with the most jobs overall
func (r *JobRepository) TopLocation() (*string, error) {
	return r.topOf("location", "TRIM(COALESCE(location, '')) <> ''", nil)
}

// topOf returns the most frequent value of a column, optionally filtered
func (r *JobRepository) topOf(column, where string, args []interface{}) (*string, error) {
	query := fmt.Sprintf("SELECT %s FROM jobs", column)
	if where != "" {
		query += " WHERE " + where
	}
	query += fmt.Sprintf(" GROUP BY %s ORDER BY COUNT(*) DESC LIMIT 1", column)

	var value string
	err := r.db.QueryRow(query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get top %s: %w", column, err)
	}
	return &value, nil
}

// DistinctCompanies returns every company present in the jobs table
func (r *JobRepository) DistinctCompanies() ([]string, error) {
	return r.distinctOf("company", "TRIM(company) <> ''")
}

// DistinctLocations returns every normalized location present in the jobs table
func (r *JobRepository) DistinctLocations() ([]string, error) {
	return r.distinctOf("lower(trim(location))", "TRIM(COALESCE(location, '')) <> ''")
}

// DistinctTitles returns every normalized title present in the jobs table
func (r *JobRepository) DistinctTitles() ([]string, error) {
	return r.distinctOf("lower(trim(title))", "TRIM(title) <> ''")
}

func (r *JobRepository) distinctOf(expr, where string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM jobs WHERE %s", expr, where)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", expr, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", expr, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", expr, err)
	}
	return values, nil
}

// CompanyActivity returns a company's posted-today, active, and filled
// counters. Posted is scoped to the given date; active and filled are
// as-of-today totals.
func (r *JobRepository) CompanyActivity(company, date string) (*CompanyActivity, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN date(posted_at) = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN ` + closedStatusFilter + ` THEN 1 ELSE 0 END), 0)
		FROM jobs WHERE company = ?
	`

	var a CompanyActivity
	err := r.db.QueryRow(query, date, company).Scan(&a.PostedToday, &a.Active, &a.Filled)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity for company %s: %w", company, err)
	}
	return &a, nil
}

// TopRoleForCompany returns the company's most common normalized title
func (r *JobRepository) TopRoleForCompany(company string) (*string, error) {
	return r.topOf("lower(trim(title))", "company = ?", []interface{}{company})
}

// TopLocationForCompany returns the company's most common location
func (r *JobRepository) TopLocationForCompany(company string) (*string, error) {
	return r.topOf("location", "company = ? AND TRIM(COALESCE(location, '')) <> ''", []interface{}{company})
}

// LocationCounts returns total and remote job counts for a normalized location
func (r *JobRepository) LocationCounts(location string) (total, remote int, err error) {
	err = r.db.QueryRow(
		"SELECT COUNT(*) FROM jobs WHERE lower(trim(COALESCE(location, ''))) = ?", location,
	).Scan(&total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count jobs for location %s: %w", location, err)
	}

	filter, args := remoteFilter()
	query := "SELECT COUNT(*) FROM jobs WHERE lower(trim(COALESCE(location, ''))) = ? AND " + filter
	err = r.db.QueryRow(query, append([]interface{}{location}, args...)...).Scan(&remote)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count remote jobs for location %s: %w", location, err)
	}
	return total, remote, nil
}

// TopCompanyForLocation returns the most represented company in a location
func (r *JobRepository) TopCompanyForLocation(location string) (*string, error) {
	return r.topOf("company", "lower(trim(COALESCE(location, ''))) = ?", []interface{}{location})
}

// TopRoleForLocation returns the most common normalized title in a location
func (r *JobRepository) TopRoleForLocation(location string) (*string, error) {
	return r.topOf("lower(trim(title))", "lower(trim(COALESCE(location, ''))) = ?", []interface{}{location})
}

// TitleCounts returns total and remote job counts for a normalized title
func (r *JobRepository) TitleCounts(title string) (total, remote int, err error) {
	err = r.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE lower(trim(title)) = ?", title).Scan(&total)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count jobs for title %s: %w", title, err)
	}

	filter, args := remoteFilter()
	query := "SELECT COUNT(*) FROM jobs WHERE lower(trim(title)) = ? AND " + filter
	err = r.db.QueryRow(query, append([]interface{}{title}, args...)...).Scan(&remote)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count remote jobs for title %s: %w", title, err)
	}
	return total, remote, nil
}

// TopCompanyForTitle returns the company posting a title most often
func (r *JobRepository) TopCompanyForTitle(title string) (*string, error) {
	return r.topOf("company", "lower(trim(title)) = ?", []interface{}{title})
}

// TopLocationForTitle returns the most common location for a title
func (r *JobRepository) TopLocationForTitle(title string) (*string, error) {
	return r.topOf("location", "lower(trim(title)) = ? AND TRIM(COALESCE(location, '')) <> ''", []interface{}{title})
}
