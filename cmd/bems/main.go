package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fub-cse/bems/internal/api"
	"github.com/fub-cse/bems/internal/config"
	"github.com/fub-cse/bems/internal/repository"
	"github.com/fub-cse/bems/internal/service"
	"github.com/fub-cse/bems/internal/simulation"
	"github.com/rs/zerolog"
)

func main() {
	// Structured JSON logging to stdout
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load service settings; a missing file falls back to defaults so the
	// binary runs out of the box
	configPath := os.Getenv("BEMS_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", configPath).Msg("Using default configuration")
		cfg = config.DefaultAppConfig()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("Failed to load timezone")
	}

	// Reference data; both loaders degrade to empty maps on bad input
	rooms, roomOrder := config.LoadRooms(cfg.Data.RoomConfig, logger)
	schedules := config.LoadSchedules(cfg.Data.Schedules, logger)
	logger.Info().
		Int("rooms", len(rooms)).
		Int("schedules", len(schedules)).
		Msg("Reference data loaded")

	// Initialize the repository using the factory
	repo, err := repository.NewRepository(config.GetRedisConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize repository")
	}

	// Check if we're using a Redis repository, and if so, close it properly on exit
	if redisRepo, ok := repo.(interface{ Close() error }); ok {
		defer func() {
			if err := redisRepo.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing Redis connection")
			}
		}()
	}

	if err := repo.InitMonitoring(context.Background(), roomOrder); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize monitoring state")
	}

	// The simulation engine; nil rng means a time-seeded source
	sim := simulation.New(rooms, roomOrder, schedules, nil, logger)

	collector := service.NewCollector(sim, repo, location, cfg.Interval(), cfg.OfflineRefresh(), logger)
	if err := collector.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start collector")
	}
	defer collector.Stop()

	mux := api.SetupRoutes(sim, repo, location, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("Starting BEMS server")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal().Err(err).Msg("Server error")

	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")

		collector.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			logger.Fatal().Err(err).Msg("Error shutting down server")
		}

		logger.Info().Msg("Server gracefully stopped")
	}
}
