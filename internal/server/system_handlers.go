package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobpulse/jobpulse/internal/database"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log zerolog.Logger
	db  *database.DB
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(db *database.DB, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		log: log.With().Str("component", "system_handlers").Logger(),
		db:  db,
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	TotalJobs      int                    `json:"total_jobs"`
	ActiveJobs     int                    `json:"active_jobs"`
	UnreadAlerts   int                    `json:"unread_alerts"`
	LatestSnapshot string                 `json:"latest_snapshot,omitempty"`
	Goroutines     int                    `json:"goroutines"`
	Memory         map[string]interface{} `json:"memory"`
}

// DatabaseStatsResponse represents database statistics
type DatabaseStatsResponse struct {
	SizeMB      float64 `json:"size_mb"`
	WALSizeMB   float64 `json:"wal_size_mb"`
	PageCount   int64   `json:"page_count"`
	PageSize    int64   `json:"page_size"`
	LastChecked string  `json:"last_checked"`
}

// HandleSystemStatus returns system status
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	var totalJobs, activeJobs, unreadAlerts int
	var latestSnapshot sql.NullString

	if err := h.db.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&totalJobs); err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count jobs")
	}
	if err := h.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE status = 'active'").Scan(&activeJobs); err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count active jobs")
	}
	if err := h.db.QueryRow("SELECT COUNT(*) FROM market_alerts WHERE is_read = 0").Scan(&unreadAlerts); err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to count unread alerts")
	}
	if err := h.db.QueryRow("SELECT MAX(date) FROM market_snapshots").Scan(&latestSnapshot); err != nil && err != sql.ErrNoRows {
		h.log.Error().Err(err).Msg("Failed to get latest snapshot date")
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := SystemStatusResponse{
		TotalJobs:      totalJobs,
		ActiveJobs:     activeJobs,
		UnreadAlerts:   unreadAlerts,
		LatestSnapshot: latestSnapshot.String,
		Goroutines:     runtime.NumGoroutine(),
		Memory: map[string]interface{}{
			"alloc_mb": m.Alloc / 1024 / 1024,
			"sys_mb":   m.Sys / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
	}

	h.writeJSON(w, response)
}

// HandleDatabaseStats returns database statistics
// GET /api/system/database
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting database stats")

	stats, err := h.db.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get database stats")
		http.Error(w, "Failed to get database stats", http.StatusInternalServerError)
		return
	}

	response := DatabaseStatsResponse{
		SizeMB:      float64(stats.SizeBytes) / 1024 / 1024,
		WALSizeMB:   float64(stats.WALSizeBytes) / 1024 / 1024,
		PageCount:   stats.PageCount,
		PageSize:    stats.PageSize,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
	}

	h.writeJSON(w, response)
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
