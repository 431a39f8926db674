package facts

import "database/sql"

// Schema covers the fact tables written by the out-of-process ingestion
// pipeline. The engine only reads them; the DDL lives here so a fresh
// database is usable before the first scrape lands.
const Schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id INTEGER PRIMARY KEY,
    job_hash TEXT UNIQUE NOT NULL,
    title TEXT NOT NULL,
    company TEXT NOT NULL,
    location TEXT,
    status TEXT NOT NULL DEFAULT 'active',
    posted_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company);
CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs(posted_at);

CREATE TABLE IF NOT EXISTS job_skills (
    id INTEGER PRIMARY KEY,
    job_hash TEXT NOT NULL,
    skill_name TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_job_skills_job_hash ON job_skills(job_hash);
CREATE INDEX IF NOT EXISTS idx_job_skills_skill ON job_skills(skill_name);
CREATE INDEX IF NOT EXISTS idx_job_skills_created_at ON job_skills(created_at);

CREATE TABLE IF NOT EXISTS salary_predictions (
    id INTEGER PRIMARY KEY,
    job_hash TEXT UNIQUE NOT NULL,
    predicted_median REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS salary_benchmarks (
    id INTEGER PRIMARY KEY,
    title_normalized TEXT NOT NULL,
    location_normalized TEXT NOT NULL,
    p10 REAL,
    p25 REAL,
    p50 REAL,
    p75 REAL,
    p90 REAL,
    sample_size INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT,
    UNIQUE(title_normalized, location_normalized)
);
`

// InitSchema ensures the fact tables exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
