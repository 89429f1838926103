package models

import "time"

// Reading is one simulated telemetry sample for a room at an instant.
// Current is always Power divided by the fixed supply voltage.
type Reading struct {
	RoomID     string     `json:"room_id"`
	Power      float64    `json:"power"`
	Current    float64    `json:"current"`
	Voltage    float64    `json:"voltage"`
	Status     RoomStatus `json:"status"`
	IsActive   bool       `json:"is_active"`
	CourseCode string     `json:"course_code,omitempty"`
	CourseName string     `json:"course_name,omitempty"`
	Equipment  []string   `json:"equipment"`
	Timestamp  time.Time  `json:"timestamp"`
}

// BuildingSummary is the aggregate snapshot of all rooms at one instant
type BuildingSummary struct {
	Timestamp   time.Time `json:"timestamp"`
	TotalPower  float64   `json:"total_power"`
	ActiveRooms int       `json:"active_rooms"`
	TotalRooms  int       `json:"total_rooms"`
	Rooms       []Reading `json:"rooms"`
}
