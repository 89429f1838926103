// Package redis provides a Redis/Valkey implementation of the repository interface
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fub-cse/bems/internal/config"
	"github.com/fub-cse/bems/internal/models"
	"github.com/redis/go-redis/v9"
)

// Repository implements the repository interface with Redis storage.
// Readings live in one sorted set per room scored by unix seconds, the
// per-room monitoring switches in a hash, and the global switch in a
// plain key.
type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRepository creates a new Redis repository
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		// Use DB from config if not specified in the URI
		if opt.DB == 0 {
			opt.DB = cfg.DB
		}

		// Use password from config if not in URI or if empty in URI
		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}

		client = redis.NewClient(opt)
	} else {
		address := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

		client = redis.NewClient(&redis.Options{
			Addr:     address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.ReadingTTL,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// readingsKey returns the Redis key for a room's reading history
func (r *Repository) readingsKey(roomID string) string {
	return fmt.Sprintf("%sreadings:%s", r.keyPrefix, roomID)
}

// monitoringKey returns the Redis key for the per-room monitoring hash
func (r *Repository) monitoringKey() string {
	return r.keyPrefix + "monitoring"
}

// globalMonitoringKey returns the Redis key for the building-wide switch
func (r *Repository) globalMonitoringKey() string {
	return r.keyPrefix + "monitoring:global"
}

// SaveReading appends a reading to the room's history and trims entries
// older than the retention window.
func (r *Repository) SaveReading(ctx context.Context, reading *models.Reading) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	key := r.readingsKey(reading.RoomID)
	score := float64(reading.Timestamp.Unix())

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: data})
	if r.ttl > 0 {
		cutoff := reading.Timestamp.Add(-r.ttl).Unix()
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}

	return nil
}

// ListReadings returns the room's readings taken at or after since, newest
// first, capped at limit (0 means no cap).
func (r *Repository) ListReadings(ctx context.Context, roomID string, since time.Time, limit int) ([]*models.Reading, error) {
	rangeBy := &redis.ZRangeBy{
		Min: strconv.FormatInt(since.Unix(), 10),
		Max: "+inf",
	}
	if limit > 0 {
		rangeBy.Count = int64(limit)
	}

	rows, err := r.client.ZRevRangeByScore(ctx, r.readingsKey(roomID), rangeBy).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	readings := make([]*models.Reading, 0, len(rows))
	for _, row := range rows {
		var reading models.Reading
		if err := json.Unmarshal([]byte(row), &reading); err != nil {
			continue
		}
		readings = append(readings, &reading)
	}

	return readings, nil
}

// InitMonitoring enables monitoring for any room that has no recorded state yet
func (r *Repository) InitMonitoring(ctx context.Context, roomIDs []string) error {
	pipe := r.client.Pipeline()
	for _, id := range roomIDs {
		pipe.HSetNX(ctx, r.monitoringKey(), id, "1")
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to initialize monitoring state: %w", err)
	}
	return nil
}

// RoomMonitoringEnabled reports the room's monitoring switch; rooms with no
// recorded state default to enabled.
func (r *Repository) RoomMonitoringEnabled(ctx context.Context, roomID string) (bool, error) {
	value, err := r.client.HGet(ctx, r.monitoringKey(), roomID).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read monitoring state: %w", err)
	}
	return value == "1", nil
}

// ToggleRoomMonitoring flips the room's monitoring switch and returns the new state
func (r *Repository) ToggleRoomMonitoring(ctx context.Context, roomID string) (bool, error) {
	enabled, err := r.RoomMonitoringEnabled(ctx, roomID)
	if err != nil {
		return false, err
	}

	next := "0"
	if !enabled {
		next = "1"
	}
	if err := r.client.HSet(ctx, r.monitoringKey(), roomID, next).Err(); err != nil {
		return false, fmt.Errorf("failed to update monitoring state: %w", err)
	}

	return !enabled, nil
}

// GlobalMonitoringEnabled reports the building-wide monitoring switch
func (r *Repository) GlobalMonitoringEnabled(ctx context.Context) (bool, error) {
	value, err := r.client.Get(ctx, r.globalMonitoringKey()).Result()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read global monitoring state: %w", err)
	}
	return value == "1", nil
}

// ToggleGlobalMonitoring flips the building-wide switch and returns the new state
func (r *Repository) ToggleGlobalMonitoring(ctx context.Context) (bool, error) {
	enabled, err := r.GlobalMonitoringEnabled(ctx)
	if err != nil {
		return false, err
	}

	next := "0"
	if !enabled {
		next = "1"
	}
	if err := r.client.Set(ctx, r.globalMonitoringKey(), next, 0).Err(); err != nil {
		return false, fmt.Errorf("failed to update global monitoring state: %w", err)
	}

	return !enabled, nil
}
