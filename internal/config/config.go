// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/tomtom215/marquee/internal/recommend"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults
//  2. Config file (config.yaml)
//  3. Environment variables
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment" validate:"oneof=development staging production"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DataConfig locates the ratings and movies files.
type DataConfig struct {
	RatingsPath      string `koanf:"ratings_path" validate:"required"`
	RatingsDelimiter string `koanf:"ratings_delimiter" validate:"omitempty,delimiter"`
	RatingsHeader    bool   `koanf:"ratings_header"`

	MoviesPath      string `koanf:"movies_path" validate:"required"`
	MoviesDelimiter string `koanf:"movies_delimiter" validate:"omitempty,delimiter"`
	// MoviesEncoding names the byte encoding of the movies file.
	MoviesEncoding string `koanf:"movies_encoding" validate:"omitempty,oneof=latin-1 latin1 iso-8859-1 windows-1252 cp1252 utf-8 utf8"`
	MoviesHeader   bool   `koanf:"movies_header"`
}

// RecommendConfig tunes the recommendation engine and the seed policy.
type RecommendConfig struct {
	// NeighborCount is the neighbors fetched per seed, the seed included.
	NeighborCount int `koanf:"neighbor_count" validate:"min=2,max=1000"`
	ResultLimit   int `koanf:"result_limit" validate:"min=1,max=100"`
	// MinSeeds is the number of distinct known seeds needed for
	// personalized results.
	MinSeeds int `koanf:"min_seeds" validate:"min=1"`
	// MaxSeeds caps the seeds a single request may carry.
	MaxSeeds            int  `koanf:"max_seeds" validate:"min=1,max=50"`
	PrecomputeNeighbors bool `koanf:"precompute_neighbors"`
	// Workers is the neighbor precompute parallelism. Zero means one per CPU.
	Workers int `koanf:"workers" validate:"min=0,max=256"`
	// ReloadInterval rebuilds the engine from the data files on a timer.
	// Zero disables reloading.
	ReloadInterval time.Duration `koanf:"reload_interval"`
	// CacheSize bounds the seed-based answers kept in memory. Zero disables
	// the cache.
	CacheSize int           `koanf:"cache_size" validate:"min=0,max=1000000"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// EngineConfig converts the section into the engine's own config.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	workers := r.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return &recommend.Config{
		NeighborCount:       r.NeighborCount,
		ResultLimit:         r.ResultLimit,
		MinSeeds:            r.MinSeeds,
		PrecomputeNeighbors: r.PrecomputeNeighbors,
		Workers:             workers,
	}
}

// APIConfig holds list endpoint limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size" validate:"min=1"`
	MaxPageSize     int `koanf:"max_page_size" validate:"min=1"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies" validate:"dive,cidr|ip"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level: trace, debug, info, warn, error
	Level string `koanf:"level"`

	// Format: json or console
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, the config file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
