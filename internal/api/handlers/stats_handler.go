package handlers

import (
	"errors"
	"net/http"

	"github.com/theblitlabs/system-stats/internal/models"
	"github.com/theblitlabs/system-stats/internal/services"
	"github.com/theblitlabs/system-stats/internal/telemetry"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

type StatsHandler struct {
	service services.IStatsService
}

func NewStatsHandler(service services.IStatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetSystemStats serves GET /system-stats. The API key has already been
// checked by middleware.
func (h *StatsHandler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("stats_handler")

	selection, err := models.ParseSelection(r.URL.Query())
	if err != nil {
		log.Warn().Str("query", r.URL.RawQuery).Msg("Invalid parameters")
		telemetry.RecordStatsOutcome(WriteError(w, err))
		return
	}

	stats, err := h.service.Collect(r.Context(), selection)
	if err != nil {
		if errors.Is(err, services.ErrNoStatsCollected) {
			log.Warn().Msg("No stats collected")
		} else {
			log.Error().Err(err).Msg("Error occurred")
		}
		telemetry.RecordStatsOutcome(WriteError(w, err))
		return
	}

	if err := WriteJSON(w, http.StatusOK, models.StatsResponse{Stats: stats}); err != nil {
		telemetry.RecordStatsOutcome(OutcomeInternalError)
		return
	}
	telemetry.RecordStatsOutcome(OutcomeSuccess)
}
