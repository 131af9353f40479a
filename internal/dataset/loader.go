// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
)

// LoadFiles reads the ratings and movies files named in cfg.
func LoadFiles(ctx context.Context, cfg *config.DataConfig) (*Dataset, error) {
	ds := &Dataset{}

	ratingsOpts := RatingsOptions{
		Delimiter: delimiter(cfg.RatingsDelimiter, ','),
		Header:    cfg.RatingsHeader,
	}
	err := withFile(cfg.RatingsPath, func(f *os.File) error {
		var err error
		ds.Ratings, ds.RatingsReport, err = LoadRatings(ctx, f, ratingsOpts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	ds.RatingsReport.Source = cfg.RatingsPath
	logReport("ratings", &ds.RatingsReport)

	moviesOpts := MoviesOptions{
		Delimiter: delimiter(cfg.MoviesDelimiter, '|'),
		Encoding:  cfg.MoviesEncoding,
		Header:    cfg.MoviesHeader,
	}
	err = withFile(cfg.MoviesPath, func(f *os.File) error {
		var err error
		ds.Movies, ds.MoviesReport, err = LoadMovies(ctx, f, moviesOpts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	ds.MoviesReport.Source = cfg.MoviesPath
	logReport("movies", &ds.MoviesReport)

	return ds, nil
}

func withFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("path", path).Msg("Error closing data file")
		}
	}()
	return fn(f)
}

// delimiter returns the first rune of s, or fallback when s is empty.
func delimiter(s string, fallback rune) rune {
	if s == "" {
		return fallback
	}
	if s == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func logReport(kind string, r *LoadReport) {
	event := logging.Info()
	if r.Skipped > 0 {
		event = logging.Warn().Strs("sample_errors", r.SampleErrors)
	}
	event.
		Str("kind", kind).
		Str("source", r.Source).
		Int("rows", r.Rows).
		Int("loaded", r.Loaded).
		Int("skipped", r.Skipped).
		Dur("duration", r.Duration).
		Msg("Dataset file loaded")
}
