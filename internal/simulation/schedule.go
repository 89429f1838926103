package simulation

import (
	"time"

	"github.com/fub-cse/bems/internal/models"
)

// ResolveSchedule reports whether a class is in session in the room at the
// given time, along with the slot that matched. Rooms with no schedule are
// always inactive. Pure function of the reference data.
func (s *Simulator) ResolveSchedule(roomID string, at time.Time) (bool, *models.TimeSlot) {
	entry, ok := s.schedules[roomID]
	if !ok {
		return false, nil
	}

	day := at.Weekday().String()
	minute := at.Hour()*60 + at.Minute()

	for i := range entry.Slots {
		slot := &entry.Slots[i]
		if slot.Day != day {
			continue
		}
		// End is inclusive so a class does not flicker to standby during
		// its final minute
		if slot.Start <= minute && minute <= slot.End {
			return true, slot
		}
	}

	return false, nil
}
