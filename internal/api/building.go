package api

import (
	"math"
	"net/http"
	"time"

	"github.com/fub-cse/bems/internal/models"
	"github.com/fub-cse/bems/internal/repository"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/rs/zerolog"
)

// BuildingHandler handles HTTP requests for the building-wide snapshot
type BuildingHandler struct {
	sim      *simulation.Simulator
	repo     repository.Repository
	location *time.Location
	logger   zerolog.Logger
}

// NewBuildingHandler creates a new building handler
func NewBuildingHandler(sim *simulation.Simulator, repo repository.Repository, location *time.Location, logger zerolog.Logger) *BuildingHandler {
	return &BuildingHandler{
		sim:      sim,
		repo:     repo,
		location: location,
		logger:   logger,
	}
}

// roomWithMonitoring is a reading annotated with the room's monitoring switch
type roomWithMonitoring struct {
	models.Reading
	MonitoringEnabled bool `json:"monitoring_enabled"`
}

type buildingStatusResponse struct {
	Success     bool                 `json:"success"`
	Timestamp   time.Time            `json:"timestamp"`
	TotalPower  float64              `json:"total_power"`
	ActiveRooms int                  `json:"active_rooms"`
	TotalRooms  int                  `json:"total_rooms"`
	DailyEnergy float64              `json:"daily_energy"`
	DailyCost   float64              `json:"daily_cost"`
	CO2Saved    float64              `json:"co2_saved"`
	Rooms       []roomWithMonitoring `json:"rooms"`
}

// ServeHTTP handles GET /api/building/status
func (h *BuildingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	now := time.Now().In(h.location)
	summary := h.sim.Summarize(now)

	rooms := make([]roomWithMonitoring, 0, len(summary.Rooms))
	var totalDailyKWh float64
	activeMonitored := 0

	for i := range summary.Rooms {
		reading := summary.Rooms[i]

		enabled, err := h.repo.RoomMonitoringEnabled(r.Context(), reading.RoomID)
		if err != nil {
			h.logger.Warn().Err(err).Str("room", reading.RoomID).Msg("Failed to read monitoring state")
			enabled = true
		}

		// The headline active count only includes monitored rooms
		if enabled && reading.IsActive {
			activeMonitored++
		}

		totalDailyKWh += h.sim.DailyEnergyKWh(reading.RoomID)
		rooms = append(rooms, roomWithMonitoring{Reading: reading, MonitoringEnabled: enabled})
	}

	writeJSON(w, http.StatusOK, buildingStatusResponse{
		Success:     true,
		Timestamp:   summary.Timestamp,
		TotalPower:  summary.TotalPower,
		ActiveRooms: activeMonitored,
		TotalRooms:  summary.TotalRooms,
		DailyEnergy: math.Round(totalDailyKWh*100) / 100,
		DailyCost:   simulation.CostBDT(totalDailyKWh),
		CO2Saved:    simulation.CO2SavedKg(totalDailyKWh),
		Rooms:       rooms,
	})
}
