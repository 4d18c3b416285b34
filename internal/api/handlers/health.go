package handlers

import (
	"net/http"

	"github.com/theblitlabs/system-stats/internal/monitoring/health"
)

type HealthReporter interface {
	Healthy() bool
	GetAllHealth() map[string]*health.ComponentHealth
}

type HealthResponse struct {
	Status     string                             `json:"status"`
	Components map[string]*health.ComponentHealth `json:"components,omitempty"`
}

type HealthHandler struct {
	checker HealthReporter
}

// NewHealthHandler creates a liveness handler. A nil checker always reports ok.
func NewHealthHandler(checker HealthReporter) *HealthHandler {
	return &HealthHandler{checker: checker}
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	resp := HealthResponse{Status: "ok", Components: h.checker.GetAllHealth()}
	if !h.checker.Healthy() {
		resp.Status = "error"
		WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}
