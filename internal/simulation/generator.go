package simulation

import (
	"time"

	"github.com/fub-cse/bems/internal/models"
)

// Generate produces a simulated instantaneous reading for a room. Unknown
// rooms fall back to the default wattage with no equipment rather than
// failing; callers wanting strict existence checks use HasRoom.
//
// Power is drawn at random per call, so repeated calls at the same instant
// differ. Offline rooms draw [10,30) W, idle rooms [50,150) W, and rooms
// with a class in session draw nominal wattage scaled by [0.85,1.15].
func (s *Simulator) Generate(roomID string, at time.Time) models.Reading {
	cfg, known := s.rooms[roomID]
	wattage := cfg.Wattage
	if !known {
		wattage = defaultWattage
	}
	equipment := cfg.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	if s.isOffline(roomID) {
		// Dead telemetry short-circuits the schedule entirely
		power := s.uniform(10, 30)
		return models.Reading{
			RoomID:    roomID,
			Power:     round2(power),
			Current:   round3(power / Voltage),
			Voltage:   Voltage,
			Status:    models.StatusOffline,
			IsActive:  false,
			Equipment: equipment,
			Timestamp: at,
		}
	}

	active, _ := s.ResolveSchedule(roomID, at)

	// Course metadata comes from the schedule's top-level record on both
	// branches, so a standby room with any schedule still reports its
	// course. This mirrors the deployed behavior and is kept deliberately.
	entry := s.schedules[roomID]
	courseCode := entry.CourseCode
	courseName := entry.CourseName

	var power float64
	var status models.RoomStatus

	if active {
		if courseCode == "" {
			courseCode = "N/A"
		}
		if courseName == "" {
			courseName = "Unknown"
		}
		power = wattage * s.uniform(0.85, 1.15)
		status = models.StatusOnline
	} else {
		power = s.uniform(50, 150)
		status = models.StatusStandby
	}

	return models.Reading{
		RoomID:     roomID,
		Power:      round2(power),
		Current:    round3(power / Voltage),
		Voltage:    Voltage,
		Status:     status,
		IsActive:   active,
		CourseCode: courseCode,
		CourseName: courseName,
		Equipment:  equipment,
		Timestamp:  at,
	}
}
