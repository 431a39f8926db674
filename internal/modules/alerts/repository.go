package alerts

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles market alert persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new alert repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "alerts").Logger(),
	}
}

// Insert appends a new alert and assigns its id
func (r *Repository) Insert(a *MarketAlert) error {
	createdAt := time.Now().UTC().Format("2006-01-02 15:04:05")

	result, err := r.db.Exec(`
		INSERT INTO market_alerts (
			alert_type, title, description, severity,
			related_entity, related_entity_type,
			metric_value, metric_change_pct, is_read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`,
		string(a.AlertType), a.Title, a.Description, string(a.Severity),
		a.RelatedEntity, string(a.RelatedEntityType),
		a.MetricValue, a.MetricChangePct, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get alert id: %w", err)
	}

	a.ID = int(id)
	a.IsRead = false
	a.CreatedAt = createdAt
	return nil
}

const alertColumns = `id, alert_type, title, description, severity,
	related_entity, related_entity_type, metric_value, metric_change_pct,
	is_read, created_at`

func scanAlert(row interface{ Scan(...interface{}) error }) (*MarketAlert, error) {
	var (
		a      MarketAlert
		isRead int
	)
	err := row.Scan(
		&a.ID, &a.AlertType, &a.Title, &a.Description, &a.Severity,
		&a.RelatedEntity, &a.RelatedEntityType, &a.MetricValue, &a.MetricChangePct,
		&isRead, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.IsRead = isRead != 0
	return &a, nil
}

func (r *Repository) query(query string, args ...interface{}) ([]MarketAlert, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []MarketAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}
	return alerts, nil
}

// Unread returns all unread alerts, newest first
func (r *Repository) Unread() ([]MarketAlert, error) {
	return r.query("SELECT " + alertColumns + " FROM market_alerts WHERE is_read = 0 ORDER BY created_at DESC, id DESC")
}

// All returns alerts newest first, bounded by limit
func (r *Repository) All(limit int) ([]MarketAlert, error) {
	return r.query(
		"SELECT "+alertColumns+" FROM market_alerts ORDER BY created_at DESC, id DESC LIMIT ?", limit)
}

// ByType returns alerts of one type, newest first, bounded by limit
func (r *Repository) ByType(alertType AlertType, limit int) ([]MarketAlert, error) {
	return r.query(
		"SELECT "+alertColumns+" FROM market_alerts WHERE alert_type = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		string(alertType), limit)
}

// MarkRead marks one alert as read. Idempotent: marking an already-read or
// unknown id reports whether the row exists.
func (r *Repository) MarkRead(id int) (bool, error) {
	if _, err := r.db.Exec("UPDATE market_alerts SET is_read = 1 WHERE id = ?", id); err != nil {
		return false, fmt.Errorf("failed to mark alert %d read: %w", id, err)
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM market_alerts WHERE id = ?", id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check alert %d: %w", id, err)
	}
	return count > 0, nil
}

// MarkAllRead marks every unread alert as read and returns how many changed
func (r *Repository) MarkAllRead() (int, error) {
	result, err := r.db.Exec("UPDATE market_alerts SET is_read = 1 WHERE is_read = 0")
	if err != nil {
		return 0, fmt.Errorf("failed to mark all alerts read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count marked alerts: %w", err)
	}
	return int(affected), nil
}

// CleanupOld deletes read alerts older than the given number of days.
// Unread alerts are never deleted regardless of age.
func (r *Repository) CleanupOld(days int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")

	result, err := r.db.Exec(
		"DELETE FROM market_alerts WHERE is_read = 1 AND created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up alerts: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted alerts: %w", err)
	}

	if deleted > 0 {
		r.log.Info().Int64("deleted", deleted).Int("days", days).Msg("Old alerts cleaned up")
	}
	return int(deleted), nil
}
