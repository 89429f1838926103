// Package api provides the HTTP handlers for the BEMS API
package api

import (
	"encoding/json"
	"net/http"

	"github.com/fub-cse/bems/internal/simulation"
)

// HealthResponse represents the response for health check endpoints
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthLiveHandler handles Kubernetes liveness probe requests
func HealthLiveHandler(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, http.StatusOK, "UP")
}

// HealthReadyHandler returns a readiness probe handler. The service cannot
// answer meaningfully before the room reference data is loaded, so an
// engine with no rooms reports DOWN.
func HealthReadyHandler(sim *simulation.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(sim.RoomIDs()) == 0 {
			writeHealth(w, http.StatusServiceUnavailable, "DOWN")
			return
		}
		writeHealth(w, http.StatusOK, "UP")
	}
}

func writeHealth(w http.ResponseWriter, status int, state string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(HealthResponse{Status: state})
}
