package handlers

import (
	"net/http"

	"bistro-api/internal/services"

	"github.com/rs/zerolog"
)

type StatsHandler struct {
	analyticsService *services.AnalyticsService
	logger           zerolog.Logger
}

func NewStatsHandler(analyticsService *services.AnalyticsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.AdminStats(r.Context())
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to compute admin stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.OrderStats(r.Context())
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to compute order stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
