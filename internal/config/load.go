package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fub-cse/bems/internal/models"
	"github.com/rs/zerolog"
)

// scheduleSlot is the on-disk representation of a time slot, with clock
// strings instead of minute-of-day integers.
type scheduleSlot struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type scheduleFileEntry struct {
	CourseCode string         `json:"course_code"`
	CourseName string         `json:"course_name"`
	Schedule   []scheduleSlot `json:"schedule"`
}

// LoadRooms reads the room configuration file. The returned slice holds the
// room ids in file order, which fixes the iteration order used for building
// aggregation. A missing or unparsable file degrades to an empty
// configuration rather than failing startup.
func LoadRooms(path string, log zerolog.Logger) (map[string]models.RoomConfig, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Room configuration missing, starting with no rooms")
		return map[string]models.RoomConfig{}, nil
	}

	rooms, order, err := decodeRooms(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Room configuration unreadable, starting with no rooms")
		return map[string]models.RoomConfig{}, nil
	}

	return rooms, order
}

// decodeRooms walks the JSON object token by token so the key order of the
// file is preserved; a plain map decode would lose it.
func decodeRooms(data []byte) (map[string]models.RoomConfig, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	rooms := make(map[string]models.RoomConfig)
	var order []string

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		roomID := keyTok.(string)

		var cfg models.RoomConfig
		if err := dec.Decode(&cfg); err != nil {
			return nil, nil, fmt.Errorf("room %s: %w", roomID, err)
		}

		rooms[roomID] = cfg
		order = append(order, roomID)
	}

	return rooms, order, nil
}

// LoadSchedules reads the weekly class schedule file. Slots with malformed
// clock strings are skipped; a missing or unparsable file degrades to an
// empty schedule map.
func LoadSchedules(path string, log zerolog.Logger) map[string]models.ScheduleEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Schedule configuration missing, starting with no schedules")
		return map[string]models.ScheduleEntry{}
	}

	var raw map[string]scheduleFileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Schedule configuration unreadable, starting with no schedules")
		return map[string]models.ScheduleEntry{}
	}

	schedules := make(map[string]models.ScheduleEntry, len(raw))
	for roomID, entry := range raw {
		converted := models.ScheduleEntry{
			CourseCode: entry.CourseCode,
			CourseName: entry.CourseName,
		}

		for _, slot := range entry.Schedule {
			start, err := parseClock(slot.Start)
			if err != nil {
				log.Warn().Str("room", roomID).Str("start", slot.Start).Msg("Skipping schedule slot with bad start time")
				continue
			}
			end, err := parseClock(slot.End)
			if err != nil {
				log.Warn().Str("room", roomID).Str("end", slot.End).Msg("Skipping schedule slot with bad end time")
				continue
			}
			converted.Slots = append(converted.Slots, models.TimeSlot{
				Day:   slot.Day,
				Start: start,
				End:   end,
			})
		}

		schedules[roomID] = converted
	}

	return schedules
}

// parseClock converts an "HH:MM" string to a minute-of-day integer.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", value, err)
	}

	return hours*60 + minutes, nil
}
