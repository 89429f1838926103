// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fub-cse/bems/internal/models"
)

// Repository implements the repository interface with in-memory storage.
// Readings are appended in arrival order, which is also time order since
// there is a single collector.
type Repository struct {
	mu               sync.RWMutex
	readings         map[string][]models.Reading
	roomMonitoring   map[string]bool
	globalMonitoring bool
}

// NewRepository creates a new in-memory repository with monitoring on
func NewRepository() *Repository {
	return &Repository{
		readings:         make(map[string][]models.Reading),
		roomMonitoring:   make(map[string]bool),
		globalMonitoring: true,
	}
}

// SaveReading stores a reading in the room's history
func (r *Repository) SaveReading(ctx context.Context, reading *models.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.readings[reading.RoomID] = append(r.readings[reading.RoomID], *reading)
	return nil
}

// ListReadings returns the room's readings taken at or after since, newest
// first, capped at limit (0 means no cap). An unknown room yields an empty
// result, not an error.
func (r *Repository) ListReadings(ctx context.Context, roomID string, since time.Time, limit int) ([]*models.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.readings[roomID]
	result := make([]*models.Reading, 0, len(stored))

	// Walk backwards so the newest reading comes first
	for i := len(stored) - 1; i >= 0; i-- {
		if stored[i].Timestamp.Before(since) {
			continue
		}
		reading := stored[i]
		result = append(result, &reading)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, nil
}

// InitMonitoring enables monitoring for any room that has no recorded state yet
func (r *Repository) InitMonitoring(ctx context.Context, roomIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range roomIDs {
		if _, ok := r.roomMonitoring[id]; !ok {
			r.roomMonitoring[id] = true
		}
	}
	return nil
}

// RoomMonitoringEnabled reports the room's monitoring switch; rooms with no
// recorded state default to enabled.
func (r *Repository) RoomMonitoringEnabled(ctx context.Context, roomID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled, ok := r.roomMonitoring[roomID]
	if !ok {
		return true, nil
	}
	return enabled, nil
}

// ToggleRoomMonitoring flips the room's monitoring switch and returns the
// new state. A room with no recorded state is treated as enabled, so the
// first toggle turns it off.
func (r *Repository) ToggleRoomMonitoring(ctx context.Context, roomID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	enabled, ok := r.roomMonitoring[roomID]
	if !ok {
		enabled = true
	}
	r.roomMonitoring[roomID] = !enabled
	return !enabled, nil
}

// GlobalMonitoringEnabled reports the building-wide monitoring switch
func (r *Repository) GlobalMonitoringEnabled(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.globalMonitoring, nil
}

// ToggleGlobalMonitoring flips the building-wide switch and returns the new state
func (r *Repository) ToggleGlobalMonitoring(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.globalMonitoring = !r.globalMonitoring
	return r.globalMonitoring, nil
}
