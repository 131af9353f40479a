// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// EnginePublisher receives each freshly built engine.
type EnginePublisher interface {
	SetEngine(e *recommend.Engine)
}

// loadEngine reads the data files and builds a new engine from them.
//
//nolint:gocritic // zerolog.Logger is passed by value
func loadEngine(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	ds, err := dataset.LoadFiles(ctx, &cfg.Data)
	if err != nil {
		return nil, err
	}
	metrics.RecordDatasetLoad("ratings", ds.RatingsReport.Loaded, ds.RatingsReport.Skipped)
	metrics.RecordDatasetLoad("movies", ds.MoviesReport.Loaded, ds.MoviesReport.Skipped)

	engine, err := recommend.BuildEngine(ctx, ds.Ratings, ds.Movies, cfg.Recommend.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	stats := engine.Stats()
	metrics.RecordEngineBuild(stats.BuildDuration, stats.Movies, stats.Raters, stats.Ratings)
	return engine, nil
}

// newReloadService returns the engine-layer service that rebuilds the
// engine every RECOMMEND_RELOAD_INTERVAL and hands it to pub. It returns
// nil when reloading is disabled.
//
//nolint:gocritic // zerolog.Logger is passed by value
func newReloadService(cfg *config.Config, pub EnginePublisher, logger zerolog.Logger) *services.EngineService {
	if cfg.Recommend.ReloadInterval <= 0 {
		return nil
	}

	reload := services.ReloadFunc(func(ctx context.Context) error {
		engine, err := loadEngine(ctx, cfg, logger)
		if err != nil {
			return err
		}
		pub.SetEngine(engine)
		logger.Info().
			Int("movies", engine.Stats().Movies).
			Int("ratings", engine.Stats().Ratings).
			Msg("Engine reloaded")
		return nil
	})

	return services.NewEngineService(reload, services.EngineServiceConfig{
		Interval: cfg.Recommend.ReloadInterval,
	}, logger)
}
