// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"runtime"
)

// DefaultNeighborCount is the k used for seed queries: the seed itself plus
// ten genuine neighbors.
const DefaultNeighborCount = 11

// Config contains all configuration for the recommendation engine.
type Config struct {
	// NeighborCount is how many neighbors (self included) each seed query asks for.
	// Default: 11.
	NeighborCount int `json:"neighbor_count"`

	// ResultLimit caps both ranked lists.
	// Default: 5.
	ResultLimit int `json:"result_limit"`

	// MinSeeds is the number of distinct valid seeds needed before the
	// seed-based path is used instead of the popularity fallback. The engine
	// does not enforce it; the request boundary does.
	// Default: 3.
	MinSeeds int `json:"min_seeds"`

	// PrecomputeNeighbors caches every movie's neighbor list at build time.
	// Default: true.
	PrecomputeNeighbors bool `json:"precompute_neighbors"`

	// Workers is the parallelism for neighbor precomputation.
	// Default: runtime.NumCPU().
	Workers int `json:"workers"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		NeighborCount:       DefaultNeighborCount,
		ResultLimit:         5,
		MinSeeds:            3,
		PrecomputeNeighbors: true,
		Workers:             runtime.NumCPU(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.NeighborCount < 2 {
		return fmt.Errorf("neighbor_count must be at least 2, got %d", c.NeighborCount)
	}
	if c.ResultLimit < 1 {
		return fmt.Errorf("result_limit must be positive, got %d", c.ResultLimit)
	}
	if c.MinSeeds < 1 {
		return fmt.Errorf("min_seeds must be positive, got %d", c.MinSeeds)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
