// Package config provides configuration management for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the service settings loaded from the YAML configuration file
type AppConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Data struct {
		RoomConfig string `yaml:"room_config"`
		Schedules  string `yaml:"schedules"`
	} `yaml:"data"`

	Collection struct {
		IntervalSeconds       int `yaml:"interval_seconds"`
		OfflineRefreshMinutes int `yaml:"offline_refresh_minutes"`
		RetentionHours        int `yaml:"retention_hours"`
	} `yaml:"collection"`

	Timezone string `yaml:"timezone"`
}

// Interval returns the collection cadence as a duration.
func (c *AppConfig) Interval() time.Duration {
	return time.Duration(c.Collection.IntervalSeconds) * time.Second
}

// OfflineRefresh returns the cadence for redrawing the offline room set.
func (c *AppConfig) OfflineRefresh() time.Duration {
	return time.Duration(c.Collection.OfflineRefreshMinutes) * time.Minute
}

// Retention returns how long stored readings are kept.
func (c *AppConfig) Retention() time.Duration {
	return time.Duration(c.Collection.RetentionHours) * time.Hour
}

// RedisConfig holds Redis/Valkey configuration
type RedisConfig struct {
	Enabled bool
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	// TTL for stored readings (0 means no expiration)
	ReadingTTL time.Duration
}

// LoadAppConfig reads the application configuration file and applies defaults
// for anything left unset.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// DefaultAppConfig returns the configuration used when no file is provided.
func DefaultAppConfig() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = getEnv("PORT", "8080")
	}
	if cfg.Data.RoomConfig == "" {
		cfg.Data.RoomConfig = "configs/room_config.json"
	}
	if cfg.Data.Schedules == "" {
		cfg.Data.Schedules = "configs/schedules.json"
	}
	if cfg.Collection.IntervalSeconds <= 0 {
		cfg.Collection.IntervalSeconds = 60
	}
	if cfg.Collection.OfflineRefreshMinutes <= 0 {
		cfg.Collection.OfflineRefreshMinutes = 15
	}
	if cfg.Collection.RetentionHours <= 0 {
		cfg.Collection.RetentionHours = 24
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Dhaka"
	}
}

// GetRedisConfig loads Redis/Valkey configuration from environment variables
func GetRedisConfig() RedisConfig {
	// Parse TTL from environment variable (in hours)
	ttlHours, _ := strconv.Atoi(getEnv("REDIS_READING_TTL_HOURS", "24"))
	ttl := time.Duration(ttlHours) * time.Hour

	// Parse DB index
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:    getEnvBool("REDIS_ENABLED", false),
		URI:        getEnv("REDIS_URI_BEMS", ""),
		Host:       getEnv("REDIS_HOST_BEMS", getEnv("REDIS_ADDRESS", "localhost")),
		Port:       getEnv("REDIS_PORT_BEMS", "6379"),
		Username:   getEnv("REDIS_USERNAME_BEMS", ""),
		Password:   getEnv("REDIS_PASSWORD_BEMS", getEnv("REDIS_PASSWORD", "")),
		DB:         db,
		KeyPrefix:  getEnv("REDIS_KEY_PREFIX", "bems:"),
		ReadingTTL: ttl,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
