// Package service contains the background telemetry collection loop
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fub-cse/bems/internal/repository"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/rs/zerolog"
)

// Collector periodically snapshots the building and persists one reading
// per monitored room. It also rotates the simulated offline room set on a
// longer cadence.
type Collector struct {
	sim            *simulation.Simulator
	repo           repository.Repository
	location       *time.Location
	interval       time.Duration
	offlineRefresh time.Duration
	logger         zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCollector creates a collector over the given engine and sink.
func NewCollector(sim *simulation.Simulator, repo repository.Repository, location *time.Location, interval, offlineRefresh time.Duration, logger zerolog.Logger) *Collector {
	return &Collector{
		sim:            sim,
		repo:           repo,
		location:       location,
		interval:       interval,
		offlineRefresh: offlineRefresh,
		logger:         logger,
	}
}

// Start launches the collection loop. The first snapshot is taken
// immediately so the history is never empty while the first tick is pending.
func (c *Collector) Start() error {
	if c.ctx != nil {
		c.logger.Warn().Msg("Collector is already running")
		return errors.New("collector is already running")
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.wg.Add(1)
	go c.run()

	c.logger.Info().
		Dur("interval", c.interval).
		Dur("offline_refresh", c.offlineRefresh).
		Msg("Collector started")

	return nil
}

// Stop terminates the collection loop and waits for it to finish.
func (c *Collector) Stop() {
	if c.cancel == nil {
		return
	}

	c.cancel()
	c.wg.Wait()
	c.ctx, c.cancel = nil, nil

	c.logger.Info().Msg("Collector stopped")
}

func (c *Collector) run() {
	defer c.wg.Done()

	collectTicker := time.NewTicker(c.interval)
	defer collectTicker.Stop()
	offlineTicker := time.NewTicker(c.offlineRefresh)
	defer offlineTicker.Stop()

	c.CollectOnce(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-collectTicker.C:
			c.CollectOnce(c.ctx)
		case <-offlineTicker.C:
			ids := c.sim.RefreshOffline()
			c.logger.Info().Strs("rooms", ids).Msg("Rotated offline room set")
		}
	}
}

// CollectOnce takes one building snapshot and stores a reading for every
// room whose monitoring switch is on. Nothing is persisted while the global
// monitoring switch is off.
func (c *Collector) CollectOnce(ctx context.Context) {
	global, err := c.repo.GlobalMonitoringEnabled(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to read global monitoring state, collecting anyway")
		global = true
	}
	if !global {
		c.logger.Debug().Msg("Global monitoring is off, skipping snapshot")
		return
	}

	now := time.Now().In(c.location)
	summary := c.sim.Summarize(now)

	stored := 0
	for i := range summary.Rooms {
		reading := &summary.Rooms[i]

		enabled, err := c.repo.RoomMonitoringEnabled(ctx, reading.RoomID)
		if err != nil {
			c.logger.Warn().Err(err).Str("room", reading.RoomID).Msg("Failed to read monitoring state, storing anyway")
			enabled = true
		}
		if !enabled {
			continue
		}

		if err := c.repo.SaveReading(ctx, reading); err != nil {
			c.logger.Warn().Err(err).Str("room", reading.RoomID).Msg("Failed to store reading")
			continue
		}
		stored++
	}

	c.logger.Info().
		Int("rooms", stored).
		Float64("total_power", summary.TotalPower).
		Int("active_rooms", summary.ActiveRooms).
		Msg("Recorded building snapshot")
}
