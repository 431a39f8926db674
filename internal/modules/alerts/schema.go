package alerts

import "database/sql"

// Schema is the market_alerts table. Alerts are append-only events with a
// surrogate id, not a keyed time series.
const Schema = `
CREATE TABLE IF NOT EXISTS market_alerts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    alert_type TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    severity TEXT NOT NULL DEFAULT 'info',
    related_entity TEXT NOT NULL,
    related_entity_type TEXT NOT NULL,
    metric_value REAL,
    metric_change_pct REAL,
    is_read INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_market_alerts_is_read ON market_alerts(is_read);
CREATE INDEX IF NOT EXISTS idx_market_alerts_type ON market_alerts(alert_type);
CREATE INDEX IF NOT EXISTS idx_market_alerts_created_at ON market_alerts(created_at);
`

// InitSchema ensures the market_alerts table exists
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
