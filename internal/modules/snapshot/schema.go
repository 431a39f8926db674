package snapshot

import "database/sql"

// Schema is the market_snapshots table: one whole-market aggregate row per
// calendar date. Re-running a date overwrites in place via the date key.
const Schema = `
CREATE TABLE IF NOT EXISTS market_snapshots (
    id INTEGER PRIMARY KEY,
    date TEXT UNIQUE NOT NULL,
    total_jobs INTEGER NOT NULL DEFAULT 0,
    new_jobs_today INTEGER NOT NULL DEFAULT 0,
    jobs_filled_today INTEGER NOT NULL DEFAULT 0,
    avg_salary REAL,
    median_salary REAL,
    remote_job_percentage REAL,
    top_skill TEXT,
    top_company TEXT,
    top_location TEXT,
    total_companies_hiring INTEGER NOT NULL DEFAULT 0,
    market_sentiment TEXT NOT NULL DEFAULT 'neutral',
    notes TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_market_snapshots_date ON market_snapshots(date);
`

// InitSchema ensures the market_snapshots table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
