// Package repository defines interfaces for storing telemetry history and
// monitoring state
package repository

import (
	"context"
	"time"

	"github.com/fub-cse/bems/internal/models"
)

// Repository defines the interface for persisting room readings and the
// per-room / global monitoring switches
type Repository interface {
	// Reading history
	SaveReading(ctx context.Context, reading *models.Reading) error
	ListReadings(ctx context.Context, roomID string, since time.Time, limit int) ([]*models.Reading, error)

	// Monitoring switches. Rooms default to enabled; InitMonitoring seeds
	// the flags at startup without overwriting existing state.
	InitMonitoring(ctx context.Context, roomIDs []string) error
	RoomMonitoringEnabled(ctx context.Context, roomID string) (bool, error)
	ToggleRoomMonitoring(ctx context.Context, roomID string) (bool, error)
	GlobalMonitoringEnabled(ctx context.Context) (bool, error)
	ToggleGlobalMonitoring(ctx context.Context) (bool, error)
}
