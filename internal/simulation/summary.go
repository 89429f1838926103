package simulation

import (
	"time"

	"github.com/fub-cse/bems/internal/models"
)

// Summarize simulates every configured room at the given instant and
// reduces the readings into a building snapshot. Rooms are visited in
// configuration order. Each call re-simulates all rooms; the synthetic
// state has no continuity requirement between calls.
func (s *Simulator) Summarize(at time.Time) models.BuildingSummary {
	readings := make([]models.Reading, 0, len(s.roomOrder))
	var totalPower float64
	activeCount := 0

	for _, roomID := range s.roomOrder {
		reading := s.Generate(roomID, at)
		readings = append(readings, reading)
		totalPower += reading.Power
		if reading.IsActive {
			activeCount++
		}
	}

	return models.BuildingSummary{
		Timestamp:   at,
		TotalPower:  round2(totalPower),
		ActiveRooms: activeCount,
		TotalRooms:  len(s.rooms),
		Rooms:       readings,
	}
}
