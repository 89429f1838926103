package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fub-cse/bems/internal/api"
	"github.com/fub-cse/bems/internal/models"
	"github.com/fub-cse/bems/internal/repository/memory"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAPI builds a 20-room test building behind the full route table
func setupAPI(t *testing.T) (*http.ServeMux, *simulation.Simulator, *memory.Repository) {
	t.Helper()

	rooms := make(map[string]models.RoomConfig)
	schedules := make(map[string]models.ScheduleEntry)
	var order []string

	for i := 1; i <= 20; i++ {
		id := fmt.Sprintf("%d", 100+i)
		rooms[id] = models.RoomConfig{Wattage: 2000, Equipment: []string{"AC", "Projector"}}
		schedules[id] = models.ScheduleEntry{
			CourseCode: "CSE-101",
			CourseName: "Introduction to Programming",
			Slots:      []models.TimeSlot{{Day: "Monday", Start: 540, End: 660}},
		}
		order = append(order, id)
	}

	sim := simulation.New(rooms, order, schedules, rand.New(rand.NewSource(9)), zerolog.Nop())
	repo := memory.NewRepository()
	mux := api.SetupRoutes(sim, repo, time.UTC, zerolog.Nop())

	return mux, sim, repo
}

func TestBuildingStatus(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/building/status", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Success     bool    `json:"success"`
		TotalPower  float64 `json:"total_power"`
		ActiveRooms int     `json:"active_rooms"`
		TotalRooms  int     `json:"total_rooms"`
		DailyEnergy float64 `json:"daily_energy"`
		DailyCost   float64 `json:"daily_cost"`
		CO2Saved    float64 `json:"co2_saved"`
		Rooms       []struct {
			RoomID            string  `json:"room_id"`
			Power             float64 `json:"power"`
			Status            string  `json:"status"`
			MonitoringEnabled bool    `json:"monitoring_enabled"`
		} `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.True(t, response.Success)
	assert.Equal(t, 20, response.TotalRooms)
	require.Len(t, response.Rooms, 20)

	var sum float64
	for _, room := range response.Rooms {
		sum += room.Power
		assert.True(t, room.MonitoringEnabled)
		assert.Contains(t, []string{"ONLINE", "STANDBY", "OFFLINE"}, room.Status)
	}
	assert.InDelta(t, sum, response.TotalPower, 0.01)

	assert.Greater(t, response.DailyEnergy, 0.0)
	assert.InDelta(t, response.DailyEnergy*8.5, response.DailyCost, 0.1)
	assert.InDelta(t, response.DailyEnergy*0.85, response.CO2Saved, 0.1)
}

func TestBuildingStatusExcludesUnmonitoredFromActiveCount(t *testing.T) {
	mux, sim, repo := setupAPI(t)

	// Disable every room; the active count must drop to zero regardless of
	// what the schedule says
	for _, id := range sim.RoomIDs() {
		_, err := repo.ToggleRoomMonitoring(context.Background(), id)
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/api/building/status", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		ActiveRooms int `json:"active_rooms"`
		Rooms       []struct {
			MonitoringEnabled bool `json:"monitoring_enabled"`
		} `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.Zero(t, response.ActiveRooms)
	for _, room := range response.Rooms {
		assert.False(t, room.MonitoringEnabled)
	}
}

func TestRoomStatus(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/room/101/status", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Success     bool     `json:"success"`
		RoomID      string   `json:"room_id"`
		Power       float64  `json:"power"`
		Current     float64  `json:"current"`
		Voltage     float64  `json:"voltage"`
		Status      string   `json:"status"`
		CourseCode  string   `json:"course_code"`
		Equipment   []string `json:"equipment"`
		DailyEnergy float64  `json:"daily_energy"`
		DailyCost   float64  `json:"daily_cost"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.True(t, response.Success)
	assert.Equal(t, "101", response.RoomID)
	assert.Equal(t, 240.0, response.Voltage)
	assert.InDelta(t, response.Power/240.0, response.Current, 0.001)
	assert.Equal(t, "CSE-101", response.CourseCode)
	assert.Equal(t, []string{"AC", "Projector"}, response.Equipment)
	assert.Greater(t, response.DailyEnergy, 0.0)
	assert.Greater(t, response.DailyCost, 0.0)
}

func TestRoomStatusNotFound(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/room/9999/status", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "Room not found", response["error"])
}

func TestRoomHistory(t *testing.T) {
	mux, _, repo := setupAPI(t)

	now := time.Now()
	for i := 0; i < 3; i++ {
		reading := &models.Reading{
			RoomID:    "101",
			Power:     float64(100 + i),
			Current:   float64(100+i) / 240.0,
			Voltage:   240.0,
			Status:    models.StatusStandby,
			Timestamp: now.Add(time.Duration(i-2) * time.Minute),
		}
		require.NoError(t, repo.SaveReading(context.Background(), reading))
	}

	req := httptest.NewRequest("GET", "/api/room/101/history?hours=1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Success bool `json:"success"`
		Data    []struct {
			Power  float64 `json:"power"`
			Status string  `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	assert.True(t, response.Success)
	require.Len(t, response.Data, 3)
	// Newest first: the last reading saved carries the highest power
	assert.Equal(t, 102.0, response.Data[0].Power)
}

func TestRoomHistoryEmptyRoom(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/room/101/history", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Success bool  `json:"success"`
		Data    []any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Empty(t, response.Data)
}

func TestRoomHistoryInvalidHours(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/room/101/history?hours=bogus", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoomMonitoringToggle(t *testing.T) {
	mux, _, repo := setupAPI(t)

	req := httptest.NewRequest("POST", "/api/room/101/monitoring/toggle", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "101", response["room_id"])
	assert.Equal(t, false, response["monitoring_enabled"])

	enabled, err := repo.RoomMonitoringEnabled(context.Background(), "101")
	require.NoError(t, err)
	assert.False(t, enabled)

	// Toggling again turns it back on
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest("POST", "/api/room/101/monitoring/toggle", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, true, response["monitoring_enabled"])
}

func TestGlobalMonitoringToggle(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("POST", "/api/monitoring/toggle", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, false, response["monitoring_enabled"])
}

func TestGlobalMonitoringToggleRejectsGet(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/monitoring/toggle", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRoomUnknownAction(t *testing.T) {
	mux, _, _ := setupAPI(t)

	req := httptest.NewRequest("GET", "/api/room/101/bogus", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
