// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// EngineReloader rebuilds the recommendation engine and publishes it.
// Reload must leave the previously published engine in place on error.
type EngineReloader interface {
	Reload(ctx context.Context) error
}

// ReloadFunc adapts a function to EngineReloader.
type ReloadFunc func(ctx context.Context) error

// Reload calls f(ctx).
func (f ReloadFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

// EngineServiceConfig holds reload scheduling options.
type EngineServiceConfig struct {
	// Interval between reloads. Non-positive disables the service.
	Interval time.Duration

	// Timeout bounds a single reload. Default: 10m
	Timeout time.Duration
}

// EngineService periodically rebuilds the engine from the data files.
type EngineService struct {
	reloader EngineReloader
	config   EngineServiceConfig
	logger   zerolog.Logger
	name     string

	reloads  atomic.Int64
	failures atomic.Int64
}

// NewEngineService creates a reload service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewEngineService(reloader EngineReloader, cfg EngineServiceConfig, logger zerolog.Logger) *EngineService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &EngineService{
		reloader: reloader,
		config:   cfg,
		logger:   logger.With().Str("service", "engine-reload").Logger(),
		name:     "engine-reload",
	}
}

// Serve implements suture.Service. A failed reload is logged and retried
// on the next tick; the engine already being served stays in place.
func (s *EngineService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Debug().Msg("Engine reload disabled")
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.config.Interval).Msg("Engine reload scheduled")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.reload(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.failures.Add(1)
				s.logger.Warn().Err(err).Msg("Engine reload failed, keeping current engine")
			}
		}
	}
}

func (s *EngineService) reload(ctx context.Context) error {
	reloadCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(reloadCtx); err != nil {
		return err
	}
	s.reloads.Add(1)
	s.logger.Info().Dur("duration", time.Since(start)).Msg("Engine reloaded")
	return nil
}

// Reloads returns the number of successful reloads.
func (s *EngineService) Reloads() int64 {
	return s.reloads.Load()
}

// Failures returns the number of failed reloads.
func (s *EngineService) Failures() int64 {
	return s.failures.Load()
}

// String identifies the service in supervisor events.
func (s *EngineService) String() string {
	return s.name
}
