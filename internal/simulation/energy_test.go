package simulation_test

import (
	"testing"

	"github.com/fub-cse/bems/internal/models"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/stretchr/testify/assert"
)

func TestDailyEnergyKWhScheduledRoom(t *testing.T) {
	rooms := map[string]models.RoomConfig{"101": {Wattage: 2000}}
	schedules := map[string]models.ScheduleEntry{
		"101": {
			Slots: []models.TimeSlot{
				{Day: "Monday", Start: 540, End: 660},   // 2h
				{Day: "Wednesday", Start: 540, End: 660}, // 2h
				{Day: "Thursday", Start: 840, End: 1020}, // 3h
			},
		},
	}
	sim := newSimulator(rooms, nil, schedules, 1)

	// 7 weekly hours -> 1h/day active, 23h standby:
	// (2000*1 + 100*23) / 1000 = 4.3
	assert.Equal(t, 4.3, sim.DailyEnergyKWh("101"))
	assert.Equal(t, 36.55, sim.DailyCostBDT("101"))
}

func TestDailyEnergyKWhUnscheduledRoomFallback(t *testing.T) {
	rooms := map[string]models.RoomConfig{"202": {Wattage: 2000}}
	sim := newSimulator(rooms, nil, nil, 1)

	// Fallback: 8h active, 16h standby -> (2000*8 + 100*16)/1000 = 17.6
	assert.Equal(t, 17.6, sim.DailyEnergyKWh("202"))
}

func TestDailyEnergyKWhUnknownRoomUsesDefaultWattage(t *testing.T) {
	sim := newSimulator(map[string]models.RoomConfig{}, nil, nil, 1)

	// Default 3000 W: (3000*8 + 100*16)/1000 = 25.6
	assert.Equal(t, 25.6, sim.DailyEnergyKWh("nonexistent"))
}

func TestCO2SavedKg(t *testing.T) {
	assert.Equal(t, 8.5, simulation.CO2SavedKg(10.0))
	assert.Equal(t, 0.0, simulation.CO2SavedKg(0))
}

func TestCostBDT(t *testing.T) {
	assert.Equal(t, 85.0, simulation.CostBDT(10.0))
}
