// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. Request
// scoped fields reach the engine through the zerolog logger stored in the
// context, if any.

// Engine is an immutable recommendation snapshot. A reload builds a new one.
// No field is written after BuildEngine returns, so it is safe for concurrent
// use without locking.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog    *Catalog
	matrix     *RatingMatrix
	index      SimilarityIndex
	popularity *PopularityRanker
	topRated   []Recommendation
	stats      BuildStats
}

// BuildEngine joins ratings to movies, builds the rating matrix, the
// similarity index and the popularity statistics.
//
// The only error it returns for well-formed configuration is a
// *DataIntegrityError (matching ErrDataIntegrity); callers must treat it as
// fatal and not start serving. ctx only bounds neighbor precomputation.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func BuildEngine(ctx context.Context, ratings []Rating, movies []Movie, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	start := time.Now()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}

	e.catalog = NewCatalog(movies)

	matrix, err := BuildRatingMatrix(ratings, e.catalog)
	if err != nil {
		return nil, err
	}
	e.matrix = matrix

	if matrix.Dropped() > 0 {
		e.logger.Debug().
			Int("dropped", matrix.Dropped()).
			Msg("Dropped ratings for movies missing from the catalog")
	}

	brute := NewBruteForceIndex(matrix)
	e.index = brute
	if cfg.PrecomputeNeighbors {
		pre, err := NewPrecomputedIndex(ctx, brute, cfg.NeighborCount, cfg.Workers)
		if err != nil {
			return nil, fmt.Errorf("precompute neighbors: %w", err)
		}
		e.index = pre
	}

	e.popularity = NewPopularityRanker(matrix.Merged())
	e.topRated = e.popularity.Top(e.catalog, cfg.ResultLimit)

	e.stats = BuildStats{
		Movies:           e.catalog.Len(),
		Raters:           matrix.Cols(),
		Ratings:          len(matrix.Merged()),
		Rows:             matrix.Rows(),
		DroppedRatings:   matrix.Dropped(),
		DuplicateRatings: matrix.Duplicates(),
		MedianSupport:    e.popularity.MedianSupport(),
		NeighborCount:    cfg.NeighborCount,
		Precomputed:      cfg.PrecomputeNeighbors,
		BuildDuration:    time.Since(start),
	}

	e.logger.Info().
		Int("movies", e.stats.Movies).
		Int("raters", e.stats.Raters).
		Int("ratings", e.stats.Ratings).
		Int("rows", e.stats.Rows).
		Int("duplicates", e.stats.DuplicateRatings).
		Float64("median_support", e.stats.MedianSupport).
		Dur("duration", e.stats.BuildDuration).
		Msg("Recommendation engine built")

	return e, nil
}

// requestLogger prefers a logger carried by ctx so request ids are kept.
func (e *Engine) requestLogger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		scoped := l.With().Str("component", "recommend").Logger()
		return &scoped
	}
	return &e.logger
}

// RecommendFromSeeds returns up to ResultLimit movies similar to the seeds,
// never including a seed. Unknown seeds are ignored; an empty result is not
// an error.
func (e *Engine) RecommendFromSeeds(ctx context.Context, seeds []int) []Recommendation {
	return e.RecommendDetailed(ctx, seeds).Items
}

// RecommendDetailed is RecommendFromSeeds with the skipped seeds and
// candidate count reported.
func (e *Engine) RecommendDetailed(ctx context.Context, seeds []int) AggregateResult {
	result := Aggregate(e.index, e.catalog, seeds, e.config.NeighborCount, e.config.ResultLimit)

	e.requestLogger(ctx).Debug().
		Ints("seeds", seeds).
		Ints("skipped", result.SkippedSeeds).
		Int("candidates", result.Candidates).
		Int("results", len(result.Items)).
		Msg("Seed recommendations computed")

	return result
}

// TopRated returns the popularity fallback list. It is computed at build time
// and identical on every call.
func (e *Engine) TopRated(_ context.Context) []Recommendation {
	return slices.Clone(e.topRated)
}

// Similar returns up to limit neighbors of one movie, excluding itself.
// It fails with ErrNotFound when the movie is unknown or has no ratings.
func (e *Engine) Similar(movieID, limit int) ([]Recommendation, error) {
	if _, err := e.catalog.Lookup(movieID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []Recommendation{}, nil
	}

	neighbors, err := e.index.Query(movieID, limit+1)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(neighbors))
	scores := make(map[int]float64, len(neighbors))
	for _, n := range neighbors {
		if n.MovieID == movieID {
			continue
		}
		ids = append(ids, n.MovieID)
		scores[n.MovieID] = n.Similarity
	}
	return e.catalog.resolve(ids, scores, limit), nil
}

// CatalogEntries returns every movie ordered by title.
func (e *Engine) CatalogEntries() []Movie {
	return e.catalog.Entries()
}

// SearchCatalog returns movies whose title contains query.
func (e *Engine) SearchCatalog(query string, limit int) []Movie {
	return e.catalog.Search(query, limit)
}

// Lookup returns one movie or an error matching ErrNotFound.
func (e *Engine) Lookup(movieID int) (Movie, error) {
	return e.catalog.Lookup(movieID)
}

// IsKnown reports whether movieID is in the catalog.
func (e *Engine) IsKnown(movieID int) bool {
	return e.catalog.Contains(movieID)
}

// MovieStats returns rating statistics for one movie.
func (e *Engine) MovieStats(movieID int) (MovieStats, bool) {
	return e.popularity.Stats(movieID)
}

// Stats returns what the engine ingested at build time.
func (e *Engine) Stats() BuildStats {
	return e.stats
}

// Config returns the engine configuration. Callers must not modify it.
func (e *Engine) Config() *Config {
	return e.config
}
