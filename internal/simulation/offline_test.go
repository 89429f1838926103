package simulation_test

import (
	"fmt"
	"testing"

	"github.com/fub-cse/bems/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshOfflineSelectsEightOrNine(t *testing.T) {
	rooms := make(map[string]models.RoomConfig)
	for i := 1; i <= 44; i++ {
		rooms[fmt.Sprintf("%d", 100+i)] = models.RoomConfig{Wattage: 2000}
	}
	sim := newSimulator(rooms, nil, nil, 42)

	for i := 0; i < 25; i++ {
		ids := sim.RefreshOffline()
		assert.Contains(t, []int{8, 9}, len(ids))

		seen := make(map[string]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "offline draw must not repeat room %s", id)
			seen[id] = true
			assert.Contains(t, rooms, id)
		}

		snapshot := sim.OfflineRooms()
		assert.ElementsMatch(t, ids, snapshot)
	}
}

func TestRefreshOfflineSmallBuilding(t *testing.T) {
	rooms := map[string]models.RoomConfig{
		"101": {Wattage: 2000},
		"102": {Wattage: 2500},
		"103": {Wattage: 1800},
	}
	sim := newSimulator(rooms, nil, nil, 42)

	ids := sim.RefreshOffline()
	require.Len(t, ids, 3, "a building smaller than the draw goes fully offline")
}

func TestRefreshOfflineEmptyBuilding(t *testing.T) {
	sim := newSimulator(map[string]models.RoomConfig{}, nil, nil, 42)

	ids := sim.RefreshOffline()
	assert.Empty(t, ids)
	assert.Empty(t, sim.OfflineRooms())
}

func TestRefreshOfflineReplacesSet(t *testing.T) {
	rooms := make(map[string]models.RoomConfig)
	for i := 1; i <= 44; i++ {
		rooms[fmt.Sprintf("%d", 100+i)] = models.RoomConfig{Wattage: 2000}
	}
	sim := newSimulator(rooms, nil, nil, 42)

	first := sim.OfflineRooms()
	changed := false
	for i := 0; i < 10 && !changed; i++ {
		sim.RefreshOffline()
		second := sim.OfflineRooms()
		if len(first) != len(second) {
			changed = true
			break
		}
		firstSet := make(map[string]bool)
		for _, id := range first {
			firstSet[id] = true
		}
		for _, id := range second {
			if !firstSet[id] {
				changed = true
				break
			}
		}
	}
	assert.True(t, changed, "repeated refreshes should eventually rotate the set")
}
