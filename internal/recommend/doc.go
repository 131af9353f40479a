// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend implements the item-to-item movie recommendation engine.
//
// # Architecture
//
// An engine is assembled in one pass from two normalized inputs, a list
// of (rater, movie, rating) triples and a list of (movie, title) pairs:
//
//   - Catalog: movie id to title lookup, also used for the selection UI
//   - RatingMatrix: movie-by-rater matrix in compressed sparse row form
//   - SimilarityIndex: k nearest movies by cosine similarity over matrix rows
//   - Aggregate: merges the neighbor lists of several seed movies into one ranking
//   - Popularity: mean-rating fallback restricted to movies with median support
//
// # Usage
//
//	engine, err := recommend.BuildEngine(ratings, movies, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    // errors.Is(err, recommend.ErrDataIntegrity): refuse to serve
//	}
//
//	recs := engine.RecommendFromSeeds(ctx, []int{1, 50, 181})
//	fallback := engine.TopRated(ctx)
//
// # Zero-as-missing
//
// An absent rating and a rating of exactly 0 are the same cell value. The
// sparse rows simply do not store either, and cosine similarity is computed
// as if the matrix were dense and zero-filled. This mirrors the reference
// behavior and is asserted in the tests.
//
// # Thread Safety
//
// An Engine never changes after BuildEngine returns. Every method is a pure
// read over the built structures, so handlers share one *Engine without locks.
package recommend
