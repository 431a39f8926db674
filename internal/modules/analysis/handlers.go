package analysis

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// MarketHandlers contains HTTP handlers for the market intelligence API
type MarketHandlers struct {
	service *Service
	log     zerolog.Logger
}

// NewMarketHandlers creates a new market handlers instance
func NewMarketHandlers(service *Service, log zerolog.Logger) *MarketHandlers {
	return &MarketHandlers{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// HandleGetSnapshot returns the most recent market snapshot
// GET /api/market/snapshot
func (h *MarketHandlers) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.GetMarketSnapshot()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get market snapshot")
		http.Error(w, "Failed to get market snapshot", http.StatusInternalServerError)
		return
	}

	if snap == nil {
		http.Error(w, "No snapshot available", http.StatusNotFound)
		return
	}

	h.writeJSON(w, snap)
}

// HandleGetHistory returns snapshots from the last N days, newest first
// GET /api/market/history?days=N
func (h *MarketHandlers) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		if parsed, err := strconv.Atoi(daysParam); err == nil && parsed > 0 {
			days = parsed
		}
	}

	snapshots, err := h.service.GetHistoricalSnapshots(days)
	if err != nil {
		h.log.Error().Err(err).Int("days", days).Msg("Failed to get snapshot history")
		http.Error(w, "Failed to get snapshot history", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, snapshots)
}

// HandleGetTrendingSkills returns top skills over the trailing window
// GET /api/market/trending-skills?limit=N
func (h *MarketHandlers) HandleGetTrendingSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.GetTrendingSkills(h.limit(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get trending skills")
		http.Error(w, "Failed to get trending skills", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, skills)
}

// HandleGetActiveCompanies returns top hiring companies over the trailing window
// GET /api/market/active-companies?limit=N
func (h *MarketHandlers) HandleGetActiveCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.GetMostActiveCompanies(h.limit(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get active companies")
		http.Error(w, "Failed to get active companies", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, companies)
}

// HandleGetHotLocations returns top locations over the trailing window
// GET /api/market/hot-locations?limit=N
func (h *MarketHandlers) HandleGetHotLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.GetHottestLocations(h.limit(r))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get hot locations")
		http.Error(w, "Failed to get hot locations", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, locations)
}

// HandleRunAnalysis triggers an immediate analysis run
// POST /api/market/analyze
func (h *MarketHandlers) HandleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.RunDailyAnalysis(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Analysis run failed")
		http.Error(w, "Analysis run failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, snap)
}

func (h *MarketHandlers) limit(r *http.Request) int {
	limit := 10
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return limit
}

// writeJSON writes JSON response
func (h *MarketHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
