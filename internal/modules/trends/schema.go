package trends

import "database/sql"

// Schema covers the five keyed time-series tables. Each table is unique on
// (entity key, date); engine re-runs overwrite rows rather than append.
//
// Scoping differs per table and must be read carefully:
//   - skill_demand_trends counts and jobs are scoped to the row's date;
//   - company jobs_posted_count is date-scoped while active/filled are
//     as-of-date totals;
//   - salary_trends, location_job_density, and role_demand_trends are full
//     as-of-date re-snapshots. A historical row in those tables is "state on
//     that date", not "change on that date".
const Schema = `
CREATE TABLE IF NOT EXISTS skill_demand_trends (
    id INTEGER PRIMARY KEY,
    skill_name TEXT NOT NULL,
    date TEXT NOT NULL,
    mention_count INTEGER NOT NULL DEFAULT 0,
    job_count INTEGER NOT NULL DEFAULT 0,
    avg_salary REAL,
    median_salary REAL,
    top_company TEXT,
    top_location TEXT,
    created_at TEXT NOT NULL,
    UNIQUE(skill_name, date)
);

CREATE INDEX IF NOT EXISTS idx_skill_trends_date ON skill_demand_trends(date);

CREATE TABLE IF NOT EXISTS salary_trends (
    id INTEGER PRIMARY KEY,
    title_normalized TEXT NOT NULL,
    location_normalized TEXT NOT NULL,
    date TEXT NOT NULL,
    p10 REAL,
    p25 REAL,
    p50 REAL,
    p75 REAL,
    p90 REAL,
    sample_size INTEGER NOT NULL DEFAULT 0,
    salary_growth_pct REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    UNIQUE(title_normalized, location_normalized, date)
);

CREATE INDEX IF NOT EXISTS idx_salary_trends_date ON salary_trends(date);

CREATE TABLE IF NOT EXISTS company_hiring_velocity (
    id INTEGER PRIMARY KEY,
    company_name TEXT NOT NULL,
    date TEXT NOT NULL,
    jobs_posted_count INTEGER NOT NULL DEFAULT 0,
    jobs_active_count INTEGER NOT NULL DEFAULT 0,
    jobs_filled_count INTEGER NOT NULL DEFAULT 0,
    top_role TEXT,
    top_location TEXT,
    is_actively_hiring INTEGER NOT NULL DEFAULT 0,
    hiring_trend TEXT NOT NULL DEFAULT 'stable',
    created_at TEXT NOT NULL,
    UNIQUE(company_name, date)
);

CREATE INDEX IF NOT EXISTS idx_company_velocity_date ON company_hiring_velocity(date);

CREATE TABLE IF NOT EXISTS location_job_density (
    id INTEGER PRIMARY KEY,
    location_normalized TEXT NOT NULL,
    date TEXT NOT NULL,
    job_count INTEGER NOT NULL DEFAULT 0,
    remote_job_count INTEGER NOT NULL DEFAULT 0,
    avg_salary REAL,
    median_salary REAL,
    top_skill TEXT,
    top_company TEXT,
    top_role TEXT,
    created_at TEXT NOT NULL,
    UNIQUE(location_normalized, date)
);

CREATE INDEX IF NOT EXISTS idx_location_density_date ON location_job_density(date);

CREATE TABLE IF NOT EXISTS role_demand_trends (
    id INTEGER PRIMARY KEY,
    title_normalized TEXT NOT NULL,
    date TEXT NOT NULL,
    job_count INTEGER NOT NULL DEFAULT 0,
    avg_salary REAL,
    median_salary REAL,
    top_company TEXT,
    top_location TEXT,
    remote_percentage REAL NOT NULL DEFAULT 0,
    demand_trend TEXT NOT NULL DEFAULT 'stable',
    created_at TEXT NOT NULL,
    UNIQUE(title_normalized, date)
);

CREATE INDEX IF NOT EXISTS idx_role_trends_date ON role_demand_trends(date);
`

// InitSchema ensures the trend tables exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
