// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "time"

// Rating is a single community rating.
type Rating struct {
	// RaterID identifies the person who rated the movie.
	RaterID int `json:"rater_id"`

	// MovieID is the rated movie.
	MovieID int `json:"movie_id"`

	// Value is the score. Treated as an opaque ordered number (1-5 in MovieLens).
	Value float64 `json:"value"`
}

// Movie is a catalog entry.
type Movie struct {
	// ID is the positive, unique movie identifier.
	ID int `json:"id"`

	// Title is the display title, including any "(YEAR)" decoration.
	Title string `json:"title"`
}

// Neighbor is one result of a similarity query.
type Neighbor struct {
	// MovieID is the neighboring movie.
	MovieID int `json:"movie_id"`

	// Similarity is 1 - cosine distance to the query movie.
	Similarity float64 `json:"similarity"`
}

// Recommendation is a ranked movie with its aggregate score.
type Recommendation struct {
	// MovieID is the recommended movie.
	MovieID int `json:"movie_id"`

	// Title is the catalog title.
	Title string `json:"title"`

	// Score is the summed similarity across seeds for seed-based results,
	// or the mean rating for popularity results.
	Score float64 `json:"score"`
}

// MovieStats holds aggregate rating statistics for one movie.
type MovieStats struct {
	MovieID int     `json:"movie_id"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
}

// BuildStats summarizes what BuildEngine ingested.
type BuildStats struct {
	// Movies is the number of catalog entries.
	Movies int `json:"movies"`

	// Raters is the number of distinct raters after the join.
	Raters int `json:"raters"`

	// Ratings is the number of ratings kept after the join and deduplication.
	Ratings int `json:"ratings"`

	// Rows is the number of movies with at least one rating (matrix rows).
	Rows int `json:"rows"`

	// DroppedRatings counts ratings referencing movies missing from the catalog.
	DroppedRatings int `json:"dropped_ratings"`

	// DuplicateRatings counts (rater, movie) pairs seen more than once.
	DuplicateRatings int `json:"duplicate_ratings"`

	// MedianSupport is the popularity filter threshold.
	MedianSupport float64 `json:"median_support"`

	// NeighborCount is the k used for seed queries.
	NeighborCount int `json:"neighbor_count"`

	// Precomputed reports whether neighbor lists were cached at build time.
	Precomputed bool `json:"precomputed"`

	// BuildDuration is how long BuildEngine took.
	BuildDuration time.Duration `json:"build_duration"`
}
