package alerts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AlertHandlers contains HTTP handlers for the alert inbox API
type AlertHandlers struct {
	repo *Repository
	log  zerolog.Logger
}

// NewAlertHandlers creates a new alert handlers instance
func NewAlertHandlers(repo *Repository, log zerolog.Logger) *AlertHandlers {
	return &AlertHandlers{
		repo: repo,
		log:  log.With().Str("handler", "alerts").Logger(),
	}
}

// HandleGetUnread returns all unread alerts, newest first
// GET /api/alerts/unread
func (h *AlertHandlers) HandleGetUnread(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.repo.Unread()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get unread alerts")
		http.Error(w, "Failed to get unread alerts", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, alerts)
}

// HandleGetAlerts returns recent alerts, optionally filtered by type
// GET /api/alerts?type=skill_surge&limit=N
func (h *AlertHandlers) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var (
		alerts []MarketAlert
		err    error
	)
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		alerts, err = h.repo.ByType(AlertType(typeParam), limit)
	} else {
		alerts, err = h.repo.All(limit)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get alerts")
		http.Error(w, "Failed to get alerts", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, alerts)
}

// HandleMarkRead marks a single alert as read
// POST /api/alerts/{id}/read
func (h *AlertHandlers) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid alert ID", http.StatusBadRequest)
		return
	}

	found, err := h.repo.MarkRead(id)
	if err != nil {
		h.log.Error().Err(err).Int("id", id).Msg("Failed to mark alert as read")
		http.Error(w, "Failed to mark alert as read", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMarkAllRead marks every unread alert as read
// POST /api/alerts/read-all
func (h *AlertHandlers) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	affected, err := h.repo.MarkAllRead()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to mark all alerts as read")
		http.Error(w, "Failed to mark all alerts as read", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]interface{}{
		"marked_read": affected,
	})
}

// writeJSON writes JSON response
func (h *AlertHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
