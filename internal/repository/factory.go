// Package repository provides the initialization for repository implementations
package repository

import (
	"github.com/fub-cse/bems/internal/config"
	"github.com/fub-cse/bems/internal/repository/memory"
	"github.com/fub-cse/bems/internal/repository/redis"
)

// NewRepository returns the configured repository implementation: Redis when
// enabled, otherwise the in-memory store.
func NewRepository(cfg config.RedisConfig) (Repository, error) {
	if cfg.Enabled {
		return redis.NewRepository(cfg)
	}
	return memory.NewRepository(), nil
}
