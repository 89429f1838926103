// Package simulation derives synthetic electrical state for classrooms from
// their weekly schedules and aggregates it into building-level figures.
package simulation

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/fub-cse/bems/internal/models"
	"github.com/rs/zerolog"
)

// Voltage is the fixed supply voltage used to derive current from power.
const Voltage = 240.0

const (
	// defaultWattage is assumed for rooms missing from the configuration
	defaultWattage = 3000.0
	// standbyWattage is the assumed idle draw used for energy estimation
	standbyWattage = 100.0
	// fallbackDailyHours is the assumed active time for unscheduled rooms
	fallbackDailyHours = 8.0
	// tariffBDTPerKWh is the flat electricity tariff in BDT
	tariffBDTPerKWh = 8.5
	// co2KgPerKWh is the grid emission factor in kg CO2 per kWh
	co2KgPerKWh = 0.85

	minOfflineRooms = 8
	maxOfflineRooms = 9
)

// Simulator owns the reference data and the rotating offline room set, and
// produces readings for rooms and summaries for the whole building.
type Simulator struct {
	rooms     map[string]models.RoomConfig
	roomOrder []string
	schedules map[string]models.ScheduleEntry
	log       zerolog.Logger

	// offline is swapped wholesale on refresh; readers take the RLock
	mu      sync.RWMutex
	offline map[string]struct{}

	// rand.Rand is not safe for concurrent use
	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a Simulator over the given reference data. roomOrder fixes the
// iteration order for summaries; when empty, room ids are sorted. A nil rng
// gets a time-seeded source; tests pass a fixed seed.
func New(rooms map[string]models.RoomConfig, roomOrder []string, schedules map[string]models.ScheduleEntry, rng *rand.Rand, log zerolog.Logger) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if len(roomOrder) == 0 {
		roomOrder = make([]string, 0, len(rooms))
		for id := range rooms {
			roomOrder = append(roomOrder, id)
		}
		sort.Strings(roomOrder)
	}

	s := &Simulator{
		rooms:     rooms,
		roomOrder: roomOrder,
		schedules: schedules,
		log:       log,
		offline:   make(map[string]struct{}),
		rng:       rng,
	}

	// Seed the offline set so readings are plausible from the first call
	ids := s.RefreshOffline()
	s.log.Debug().Int("rooms", len(rooms)).Strs("offline", ids).Msg("Simulation engine initialized")

	return s
}

// RoomIDs returns the configured room ids in aggregation order.
func (s *Simulator) RoomIDs() []string {
	ids := make([]string, len(s.roomOrder))
	copy(ids, s.roomOrder)
	return ids
}

// HasRoom reports whether the room id appears in the room configuration or
// the schedule map. The engine itself tolerates unknown rooms; this is for
// callers that want a strict existence check.
func (s *Simulator) HasRoom(roomID string) bool {
	if _, ok := s.rooms[roomID]; ok {
		return true
	}
	_, ok := s.schedules[roomID]
	return ok
}

// Schedule returns the room's schedule entry, if any.
func (s *Simulator) Schedule(roomID string) (models.ScheduleEntry, bool) {
	entry, ok := s.schedules[roomID]
	return entry, ok
}

// uniform draws from [lo, hi) under the rng lock.
func (s *Simulator) uniform(lo, hi float64) float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Simulator) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *Simulator) perm(n int) []int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Perm(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
