package api

import (
	"net/http"
	"time"

	"github.com/fub-cse/bems/internal/repository"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/rs/zerolog"
)

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(sim *simulation.Simulator, repo repository.Repository, location *time.Location, logger zerolog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.HandleFunc("/health/ready", HealthReadyHandler(sim))

	// Building-wide snapshot
	buildingHandler := NewBuildingHandler(sim, repo, location, logger)
	mux.Handle("/api/building/status", buildingHandler)

	// Per-room status, history and monitoring toggle
	roomHandler := NewRoomHandler(sim, repo, location, logger)
	mux.Handle("/api/room/", roomHandler)

	// Building-wide monitoring toggle
	monitoringHandler := NewMonitoringHandler(repo, logger)
	mux.Handle("/api/monitoring/toggle", monitoringHandler)

	return mux
}
