// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestBuildEngine_Errors(t *testing.T) {
	t.Run("ratings reference no known movie", func(t *testing.T) {
		ratings := []Rating{{RaterID: 1, MovieID: 100, Value: 4}, {RaterID: 2, MovieID: 101, Value: 3}}
		_, err := BuildEngine(context.Background(), ratings, testMovies(), nil, zerolog.Nop())
		if !errors.Is(err, ErrDataIntegrity) {
			t.Errorf("BuildEngine() error = %v, want ErrDataIntegrity", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ResultLimit = 0
		_, err := BuildEngine(context.Background(), testRatings(), testMovies(), cfg, zerolog.Nop())
		if err == nil || errors.Is(err, ErrDataIntegrity) {
			t.Errorf("BuildEngine() error = %v, want config error", err)
		}
	})
}

func TestBuildEngine_Stats(t *testing.T) {
	e := newTestEngine(t, testRatings(), testMovies(), nil)

	s := e.Stats()
	want := BuildStats{
		Movies: 9, Raters: 6, Ratings: 24, Rows: 8,
		DroppedRatings: 1, DuplicateRatings: 0,
		MedianSupport: 3, NeighborCount: 11, Precomputed: true,
	}
	s.BuildDuration = 0
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestBuildEngine_LogsBuild(t *testing.T) {
	var buf bytes.Buffer
	_, err := BuildEngine(context.Background(), testRatings(), testMovies(), nil, zerolog.New(&buf))
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"component":"recommend"`)) {
		t.Errorf("build log missing component field: %s", buf.String())
	}
}

func TestEngine_RecommendFromSeeds(t *testing.T) {
	for _, precompute := range []bool{true, false} {
		e := newTestEngine(t, testRatings(), testMovies(), func(c *Config) { c.PrecomputeNeighbors = precompute })
		ctx := context.Background()

		t.Run("unknown seed yields empty result", func(t *testing.T) {
			got := e.RecommendFromSeeds(ctx, []int{4242})
			if got == nil || len(got) != 0 {
				t.Errorf("RecommendFromSeeds(unknown) = %v, want empty slice", got)
			}
		})

		t.Run("catalog movie without ratings contributes nothing", func(t *testing.T) {
			got := e.RecommendDetailed(ctx, []int{9})
			if len(got.Items) != 0 || !slices.Equal(got.SkippedSeeds, []int{9}) {
				t.Errorf("RecommendDetailed(9) = %+v, want empty with 9 skipped", got)
			}
		})

		t.Run("never contains seeds and at most five results", func(t *testing.T) {
			all := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 42}
			for i := range all {
				for j := i; j < len(all); j++ {
					for k := j; k < len(all); k++ {
						seeds := []int{all[i], all[j], all[k]}
						got := e.RecommendFromSeeds(ctx, seeds)
						if len(got) > 5 {
							t.Fatalf("RecommendFromSeeds(%v) returned %d results", seeds, len(got))
						}
						for _, r := range got {
							if slices.Contains(seeds, r.MovieID) {
								t.Fatalf("RecommendFromSeeds(%v) contains seed %d", seeds, r.MovieID)
							}
						}
					}
				}
			}
		})

		t.Run("deterministic across calls and seed order", func(t *testing.T) {
			first := e.RecommendFromSeeds(ctx, []int{1, 4, 7})
			for _, seeds := range [][]int{{1, 4, 7}, {7, 1, 4}, {4, 7, 1, 1}} {
				if got := e.RecommendFromSeeds(ctx, seeds); !slices.Equal(got, first) {
					t.Errorf("RecommendFromSeeds(%v) = %v, want %v", seeds, got, first)
				}
			}
		})

		t.Run("results ranked by score", func(t *testing.T) {
			got := e.RecommendFromSeeds(ctx, []int{1, 4, 7})
			if len(got) == 0 {
				t.Fatal("expected results")
			}
			for i := 1; i < len(got); i++ {
				if got[i].Score > got[i-1].Score {
					t.Errorf("result %d score %v > previous %v", i, got[i].Score, got[i-1].Score)
				}
			}
		})
	}
}

func TestEngine_MonotonicAggregation(t *testing.T) {
	ratings, movies := randomDataset(5, 30, 40, 0.35)
	e := newTestEngine(t, ratings, movies, func(c *Config) { c.ResultLimit = 30 })
	ctx := context.Background()

	for a := 1; a <= 10; a++ {
		for b := a + 1; b <= 10; b++ {
			pair := e.RecommendFromSeeds(ctx, []int{a, b})
			alone := e.RecommendFromSeeds(ctx, []int{a})
			for _, r := range alone {
				if r.MovieID == b || r.Score <= 0 {
					continue
				}
				both, ok := scoreOf(pair, r.MovieID)
				if ok && both < r.Score {
					t.Errorf("movie %d: score with seeds {%d,%d} = %v < score with {%d} = %v",
						r.MovieID, a, b, both, a, r.Score)
				}
			}
		}
	}
}

func TestEngine_TopRated(t *testing.T) {
	e := newTestEngine(t, testRatings(), testMovies(), nil)
	ctx := context.Background()

	got := e.TopRated(ctx)
	if want := []int{3, 1, 6, 8, 7}; !slices.Equal(ids(got), want) {
		t.Errorf("TopRated() ids = %v, want %v", ids(got), want)
	}

	got[0].Title = "changed"
	if e.TopRated(ctx)[0].Title == "changed" {
		t.Error("mutating TopRated() result changed the engine")
	}
}

func TestEngine_RoundTrip(t *testing.T) {
	movies := testMovies()
	e := newTestEngine(t, testRatings(), movies, nil)
	ctx := context.Background()

	known := make(map[Movie]bool, len(movies))
	for _, m := range movies {
		known[m] = true
	}
	check := func(source string, id int, title string) {
		if !known[Movie{ID: id, Title: title}] {
			t.Errorf("%s returned (%d, %q) which is not in the input", source, id, title)
		}
	}

	for _, r := range e.RecommendFromSeeds(ctx, []int{1, 2, 3}) {
		check("RecommendFromSeeds", r.MovieID, r.Title)
	}
	for _, r := range e.TopRated(ctx) {
		check("TopRated", r.MovieID, r.Title)
	}
	for _, m := range e.CatalogEntries() {
		check("CatalogEntries", m.ID, m.Title)
	}
	sim, _ := e.Similar(1, 5)
	for _, r := range sim {
		check("Similar", r.MovieID, r.Title)
	}
}

func TestEngine_Similar(t *testing.T) {
	e := newTestEngine(t, testRatings(), testMovies(), nil)

	tests := []struct {
		name    string
		movieID int
		limit   int
		wantErr bool
		wantLen int
	}{
		{name: "rated movie", movieID: 1, limit: 3, wantLen: 3},
		{name: "limit beyond cache", movieID: 1, limit: 20, wantLen: 7},
		{name: "zero limit", movieID: 1, limit: 0, wantLen: 0},
		{name: "catalog movie without ratings", movieID: 9, limit: 3, wantErr: true},
		{name: "unknown movie", movieID: 404, limit: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Similar(tt.movieID, tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Similar() error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Similar() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len(Similar()) = %d, want %d", len(got), tt.wantLen)
			}
			for _, r := range got {
				if r.MovieID == tt.movieID {
					t.Errorf("Similar(%d) contains itself", tt.movieID)
				}
			}
		})
	}
}

func TestEngine_CatalogAccess(t *testing.T) {
	e := newTestEngine(t, testRatings(), testMovies(), nil)

	if got := len(e.CatalogEntries()); got != 9 {
		t.Errorf("len(CatalogEntries()) = %d, want 9", got)
	}
	if got := e.CatalogEntries()[0].Title; got != "Babe (1995)" {
		t.Errorf("CatalogEntries()[0] = %q, want Babe (1995)", got)
	}
	if !e.IsKnown(9) || e.IsKnown(42) {
		t.Error("IsKnown() disagrees with the catalog")
	}
	if m, err := e.Lookup(2); err != nil || m.Title != "GoldenEye (1995)" {
		t.Errorf("Lookup(2) = %+v, %v", m, err)
	}
	if got := e.SearchCatalog("monkeys", 10); len(got) != 1 || got[0].ID != 6 {
		t.Errorf("SearchCatalog(monkeys) = %v", got)
	}
	if s, ok := e.MovieStats(1); !ok || s.Count != 4 {
		t.Errorf("MovieStats(1) = %+v, %v", s, ok)
	}
}

func TestEngine_ConcurrentReads(t *testing.T) {
	e := newTestEngine(t, testRatings(), testMovies(), nil)
	ctx := context.Background()
	want := e.RecommendFromSeeds(ctx, []int{2, 5, 8})

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := e.RecommendFromSeeds(ctx, []int{8, 2, 5}); !slices.Equal(got, want) {
					errs <- "concurrent result differs"
					return
				}
				_ = e.TopRated(ctx)
				_, _ = e.Similar(3, 4)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
