// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

func testMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "Toy Story (1995)"},
		{ID: 2, Title: "GoldenEye (1995)"},
		{ID: 3, Title: "Four Rooms (1995)"},
		{ID: 4, Title: "Get Shorty (1995)"},
		{ID: 5, Title: "Copycat (1995)"},
		{ID: 6, Title: "Twelve Monkeys (1995)"},
		{ID: 7, Title: "Babe (1995)"},
		{ID: 8, Title: "Dead Man Walking (1995)"},
		{ID: 9, Title: "Richard III (1995)"}, // never rated
	}
}

func testRatings() []Rating {
	return []Rating{
		{RaterID: 1, MovieID: 1, Value: 5}, {RaterID: 1, MovieID: 2, Value: 3},
		{RaterID: 1, MovieID: 3, Value: 4}, {RaterID: 1, MovieID: 4, Value: 3},
		{RaterID: 2, MovieID: 1, Value: 4}, {RaterID: 2, MovieID: 2, Value: 2},
		{RaterID: 2, MovieID: 5, Value: 5}, {RaterID: 2, MovieID: 6, Value: 4},
		{RaterID: 3, MovieID: 1, Value: 5}, {RaterID: 3, MovieID: 3, Value: 5},
		{RaterID: 3, MovieID: 6, Value: 3}, {RaterID: 3, MovieID: 7, Value: 2},
		{RaterID: 4, MovieID: 2, Value: 1}, {RaterID: 4, MovieID: 4, Value: 4},
		{RaterID: 4, MovieID: 5, Value: 4}, {RaterID: 4, MovieID: 8, Value: 5},
		{RaterID: 5, MovieID: 1, Value: 3}, {RaterID: 5, MovieID: 6, Value: 5},
		{RaterID: 5, MovieID: 7, Value: 4}, {RaterID: 5, MovieID: 8, Value: 3},
		{RaterID: 6, MovieID: 3, Value: 4}, {RaterID: 6, MovieID: 4, Value: 2},
		{RaterID: 6, MovieID: 7, Value: 5}, {RaterID: 6, MovieID: 8, Value: 4},
		{RaterID: 1, MovieID: 42, Value: 5}, // unknown movie
	}
}

// randomDataset returns a reproducible dataset with integer ratings 1-5.
func randomDataset(seed int64, movies, raters int, density float64) ([]Rating, []Movie) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // test data
	ms := make([]Movie, 0, movies)
	for id := 1; id <= movies; id++ {
		ms = append(ms, Movie{ID: id, Title: fmt.Sprintf("Movie %03d", id)})
	}
	var rs []Rating
	for rater := 1; rater <= raters; rater++ {
		for id := 1; id <= movies; id++ {
			if rng.Float64() < density {
				rs = append(rs, Rating{RaterID: rater, MovieID: id, Value: float64(rng.Intn(5) + 1)})
			}
		}
	}
	return rs, ms
}

func newTestEngine(t *testing.T, ratings []Rating, movies []Movie, modify func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = 2
	if modify != nil {
		modify(cfg)
	}
	e, err := BuildEngine(context.Background(), ratings, movies, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}
	return e
}

func ids(recs []Recommendation) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.MovieID
	}
	return out
}

// stubIndex serves fixed neighbor lists.
type stubIndex struct {
	lists map[int][]Neighbor
}

func (s stubIndex) Query(movieID, k int) ([]Neighbor, error) {
	list, ok := s.lists[movieID]
	if !ok {
		return nil, notFound("row", movieID)
	}
	if k < len(list) {
		list = list[:k]
	}
	return list, nil
}

func (s stubIndex) Len() int { return len(s.lists) }
