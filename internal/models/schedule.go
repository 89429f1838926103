package models

// TimeSlot is one scheduled class period within a week. Start and End are
// minutes of day in [0,1440); End is inclusive when matching.
type TimeSlot struct {
	Day   string `json:"day"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Duration returns the slot length in minutes.
func (s TimeSlot) Duration() int {
	return s.End - s.Start
}

// ScheduleEntry is a room's weekly class schedule with its course metadata
type ScheduleEntry struct {
	CourseCode string     `json:"course_code,omitempty"`
	CourseName string     `json:"course_name,omitempty"`
	Slots      []TimeSlot `json:"schedule"`
}
