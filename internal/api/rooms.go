package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fub-cse/bems/internal/models"
	"github.com/fub-cse/bems/internal/repository"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/rs/zerolog"
)

// maxHistoryRows caps the number of rows a history query returns
const maxHistoryRows = 200

// RoomHandler handles HTTP requests for per-room status, history and
// monitoring control
type RoomHandler struct {
	sim      *simulation.Simulator
	repo     repository.Repository
	location *time.Location
	logger   zerolog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(sim *simulation.Simulator, repo repository.Repository, location *time.Location, logger zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		sim:      sim,
		repo:     repo,
		location: location,
		logger:   logger,
	}
}

// ServeHTTP routes per-room requests.
// Path formats:
//
//	GET  /api/room/{roomID}/status
//	GET  /api/room/{roomID}/history?hours=N
//	POST /api/room/{roomID}/monitoring/toggle
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[2] == "" {
		http.NotFound(w, r)
		return
	}
	roomID := parts[2]

	switch {
	case r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "status":
		h.roomStatus(w, r, roomID)
	case r.Method == http.MethodGet && len(parts) == 4 && parts[3] == "history":
		h.roomHistory(w, r, roomID)
	case r.Method == http.MethodPost && len(parts) == 5 && parts[3] == "monitoring" && parts[4] == "toggle":
		h.toggleMonitoring(w, r, roomID)
	default:
		http.NotFound(w, r)
	}
}

type roomStatusResponse struct {
	Success     bool              `json:"success"`
	RoomID      string            `json:"room_id"`
	Power       float64           `json:"power"`
	Current     float64           `json:"current"`
	Voltage     float64           `json:"voltage"`
	Status      models.RoomStatus `json:"status"`
	IsActive    bool              `json:"is_active"`
	CourseCode  string            `json:"course_code,omitempty"`
	CourseName  string            `json:"course_name,omitempty"`
	Equipment   []string          `json:"equipment"`
	DailyEnergy float64           `json:"daily_energy"`
	DailyCost   float64           `json:"daily_cost"`
	Timestamp   time.Time         `json:"timestamp"`
}

// roomStatus handles GET /api/room/{roomID}/status. Rooms absent from both
// the room configuration and the schedule map are a 404; the engine itself
// would tolerate them, but the API contract is strict.
func (h *RoomHandler) roomStatus(w http.ResponseWriter, r *http.Request, roomID string) {
	if !h.sim.HasRoom(roomID) {
		writeError(w, http.StatusNotFound, "Room not found")
		return
	}

	now := time.Now().In(h.location)
	reading := h.sim.Generate(roomID, now)
	schedule, _ := h.sim.Schedule(roomID)

	writeJSON(w, http.StatusOK, roomStatusResponse{
		Success:     true,
		RoomID:      roomID,
		Power:       reading.Power,
		Current:     reading.Current,
		Voltage:     reading.Voltage,
		Status:      reading.Status,
		IsActive:    reading.IsActive,
		CourseCode:  schedule.CourseCode,
		CourseName:  schedule.CourseName,
		Equipment:   reading.Equipment,
		DailyEnergy: h.sim.DailyEnergyKWh(roomID),
		DailyCost:   h.sim.DailyCostBDT(roomID),
		Timestamp:   reading.Timestamp,
	})
}

// historyPoint is one stored sample in a history response
type historyPoint struct {
	Timestamp time.Time         `json:"timestamp"`
	Power     float64           `json:"power"`
	Current   float64           `json:"current"`
	Voltage   float64           `json:"voltage"`
	Status    models.RoomStatus `json:"status"`
}

// roomHistory handles GET /api/room/{roomID}/history
func (h *RoomHandler) roomHistory(w http.ResponseWriter, r *http.Request, roomID string) {
	hours := 24
	if value := r.URL.Query().Get("hours"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid hours parameter")
			return
		}
		hours = parsed
	}

	since := time.Now().In(h.location).Add(-time.Duration(hours) * time.Hour)
	readings, err := h.repo.ListReadings(r.Context(), roomID, since, maxHistoryRows)
	if err != nil {
		h.logger.Error().Err(err).Str("room", roomID).Msg("Failed to list readings")
		writeError(w, http.StatusInternalServerError, "Error retrieving history")
		return
	}

	data := make([]historyPoint, 0, len(readings))
	for _, reading := range readings {
		data = append(data, historyPoint{
			Timestamp: reading.Timestamp,
			Power:     reading.Power,
			Current:   reading.Current,
			Voltage:   reading.Voltage,
			Status:    reading.Status,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// toggleMonitoring handles POST /api/room/{roomID}/monitoring/toggle
func (h *RoomHandler) toggleMonitoring(w http.ResponseWriter, r *http.Request, roomID string) {
	enabled, err := h.repo.ToggleRoomMonitoring(r.Context(), roomID)
	if err != nil {
		h.logger.Error().Err(err).Str("room", roomID).Msg("Failed to toggle monitoring")
		writeError(w, http.StatusInternalServerError, "Error toggling monitoring")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"room_id":            roomID,
		"monitoring_enabled": enabled,
	})
}
