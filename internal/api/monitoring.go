package api

import (
	"net/http"

	"github.com/fub-cse/bems/internal/repository"
	"github.com/rs/zerolog"
)

// MonitoringHandler handles the building-wide monitoring toggle
type MonitoringHandler struct {
	repo   repository.Repository
	logger zerolog.Logger
}

// NewMonitoringHandler creates a new monitoring handler
func NewMonitoringHandler(repo repository.Repository, logger zerolog.Logger) *MonitoringHandler {
	return &MonitoringHandler{
		repo:   repo,
		logger: logger,
	}
}

// ServeHTTP handles POST /api/monitoring/toggle
func (h *MonitoringHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	enabled, err := h.repo.ToggleGlobalMonitoring(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to toggle global monitoring")
		writeError(w, http.StatusInternalServerError, "Error toggling monitoring")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"monitoring_enabled": enabled,
	})
}
