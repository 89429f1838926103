package models

// RoomStatus represents the simulated telemetry state of a room
type RoomStatus string

const (
	// StatusOnline means a class is in session and the room's equipment is running
	StatusOnline RoomStatus = "ONLINE"
	// StatusStandby means the room is idle and drawing phantom load only
	StatusStandby RoomStatus = "STANDBY"
	// StatusOffline means the room's telemetry source is simulated as dead
	StatusOffline RoomStatus = "OFFLINE"
)

// RoomConfig holds the static configuration of a monitored room.
// Loaded once at startup, never mutated afterwards.
type RoomConfig struct {
	Wattage   float64  `json:"wattage"`
	Equipment []string `json:"equipment"`
}
