// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/selection"
)

func TestHealth(t *testing.T) {
	t.Run("live without engine", func(t *testing.T) {
		srv, _ := newTestServer(t, testConfig(), false)
		w := do(t, srv, http.MethodGet, "/api/v1/health/live", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if env := decode(t, w, nil); !env.Success {
			t.Error("Success = false")
		}
	})

	t.Run("ready follows engine", func(t *testing.T) {
		srv, h := newTestServer(t, testConfig(), false)

		w := do(t, srv, http.MethodGet, "/api/v1/health/ready", nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status before load = %d, want 503", w.Code)
		}
		env := decode(t, w, nil)
		if env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
			t.Errorf("error = %+v, want %s", env.Error, ErrCodeServiceUnavailable)
		}

		h.SetEngine(testEngine(t, testConfig()))
		w = do(t, srv, http.MethodGet, "/api/v1/health/ready", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status after load = %d, want 200", w.Code)
		}
	})
}

func TestEngineRoutesNotReady(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/movies"},
		{http.MethodGet, "/api/v1/movies/1"},
		{http.MethodGet, "/api/v1/movies/1/similar"},
		{http.MethodPost, "/api/v1/recommendations"},
		{http.MethodGet, "/api/v1/recommendations/top"},
		{http.MethodGet, "/api/v1/stats"},
		{http.MethodGet, "/"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(t, srv, tc.method, tc.path, strings.NewReader(`{"movie_ids":[1,2,3]}`))
			if w.Code != http.StatusServiceUnavailable {
				t.Errorf("status = %d, want 503", w.Code)
			}
		})
	}
}

func TestListMovies(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	tests := []struct {
		name      string
		target    string
		wantCode  int
		wantIDs   []int
		wantTotal int
		wantMore  bool
	}{
		{name: "title order", target: "/api/v1/movies", wantCode: 200, wantIDs: []int{5, 3, 4, 2, 1, 6}, wantTotal: 6},
		{name: "limit", target: "/api/v1/movies?limit=2", wantCode: 200, wantIDs: []int{5, 3}, wantTotal: 6, wantMore: true},
		{name: "search ignores year", target: "/api/v1/movies?q=story", wantCode: 200, wantIDs: []int{1}, wantTotal: 1},
		{name: "search no match", target: "/api/v1/movies?q=1995", wantCode: 200, wantIDs: []int{}, wantTotal: 0},
		{name: "bad limit", target: "/api/v1/movies?limit=zero", wantCode: 400},
		{name: "negative limit", target: "/api/v1/movies?limit=-1", wantCode: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, tt.target, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body=%s", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var movies []recommend.Movie
			env := decode(t, w, &movies)
			ids := make([]int, len(movies))
			for i, m := range movies {
				ids[i] = m.ID
			}
			if !slices.Equal(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
			p := env.Meta.Pagination
			if p == nil || p.Total != tt.wantTotal || p.HasMore != tt.wantMore || p.Count != len(tt.wantIDs) {
				t.Errorf("pagination = %+v", p)
			}
		})
	}
}

func TestGetMovie(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	t.Run("rated movie has stats", func(t *testing.T) {
		var detail MovieDetail
		w := do(t, srv, http.MethodGet, "/api/v1/movies/4", nil)
		decode(t, w, &detail)
		if w.Code != http.StatusOK || detail.Title != "Get Shorty (1995)" {
			t.Fatalf("status = %d, detail = %+v", w.Code, detail)
		}
		if detail.Stats == nil || detail.Stats.Count != 3 {
			t.Errorf("Stats = %+v, want count 3", detail.Stats)
		}
	})

	t.Run("unrated movie has no stats", func(t *testing.T) {
		var detail MovieDetail
		w := do(t, srv, http.MethodGet, "/api/v1/movies/6", nil)
		decode(t, w, &detail)
		if w.Code != http.StatusOK || detail.Stats != nil {
			t.Errorf("status = %d, Stats = %+v", w.Code, detail.Stats)
		}
	})

	t.Run("unknown movie", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/movies/999", nil)
		env := decode(t, w, nil)
		if w.Code != http.StatusNotFound || env.Error.Code != ErrCodeNotFound {
			t.Errorf("status = %d, error = %+v", w.Code, env.Error)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/movies/abc", nil)
		env := decode(t, w, nil)
		if w.Code != http.StatusBadRequest || env.Error.Code != ErrCodeInvalidMovieID {
			t.Errorf("status = %d, error = %+v", w.Code, env.Error)
		}
	})
}

func TestSimilarMovies(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	t.Run("excludes the movie itself", func(t *testing.T) {
		var resp SimilarResponse
		w := do(t, srv, http.MethodGet, "/api/v1/movies/1/similar?limit=3", nil)
		decode(t, w, &resp)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if resp.Movie.ID != 1 || len(resp.Items) == 0 || len(resp.Items) > 3 {
			t.Fatalf("resp = %+v", resp)
		}
		for _, it := range resp.Items {
			if it.MovieID == 1 {
				t.Error("similar list contains the query movie")
			}
		}
		for i := 1; i < len(resp.Items); i++ {
			if resp.Items[i].Score > resp.Items[i-1].Score {
				t.Errorf("items not sorted by score: %+v", resp.Items)
			}
		}
	})

	t.Run("unrated movie has no neighbors", func(t *testing.T) {
		var resp SimilarResponse
		w := do(t, srv, http.MethodGet, "/api/v1/movies/6/similar", nil)
		decode(t, w, &resp)
		if w.Code != http.StatusOK || len(resp.Items) != 0 || resp.Items == nil {
			t.Errorf("status = %d, items = %v", w.Code, resp.Items)
		}
	})

	t.Run("unknown movie", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/movies/999/similar", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestRecommend(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	tests := []struct {
		name         string
		body         string
		wantMode     selection.Mode
		wantSeeds    []int
		wantRejected int
		wantHeader   string
	}{
		{
			name:       "three seeds",
			body:       `{"movie_ids":[3,1,2]}`,
			wantMode:   selection.ModeSeeds,
			wantSeeds:  []int{1, 2, 3},
			wantHeader: "Top 5 picks based on your 3 movies",
		},
		{
			name:       "duplicates collapse to popular",
			body:       `{"movie_ids":[1,1,2]}`,
			wantMode:   selection.ModePopular,
			wantSeeds:  []int{1, 2},
			wantHeader: "No favorites selected yet, so here are the top 5 highest-rated movies overall",
		},
		{
			name:         "unknown and non-positive ids rejected",
			body:         `{"movie_ids":[1,999,-4]}`,
			wantMode:     selection.ModePopular,
			wantSeeds:    []int{1},
			wantRejected: 2,
		},
		{
			name:      "empty list",
			body:      `{"movie_ids":[]}`,
			wantMode:  selection.ModePopular,
			wantSeeds: []int{},
		},
		{
			name:      "unrated seed still counts",
			body:      `{"movie_ids":[6,4,5]}`,
			wantMode:  selection.ModeSeeds,
			wantSeeds: []int{4, 5, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/v1/recommendations", strings.NewReader(tt.body))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d; body=%s", w.Code, w.Body.String())
			}

			var resp RecommendationResponse
			decode(t, w, &resp)
			if resp.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", resp.Mode, tt.wantMode)
			}
			if !slices.Equal(resp.Seeds, tt.wantSeeds) {
				t.Errorf("Seeds = %v, want %v", resp.Seeds, tt.wantSeeds)
			}
			if len(resp.Rejected) != tt.wantRejected {
				t.Errorf("Rejected = %v, want %d entries", resp.Rejected, tt.wantRejected)
			}
			if tt.wantHeader != "" && resp.Header != tt.wantHeader {
				t.Errorf("Header = %q, want %q", resp.Header, tt.wantHeader)
			}
			if len(resp.Items) > 5 {
				t.Errorf("got %d items, want at most 5", len(resp.Items))
			}
			if resp.Mode == selection.ModeSeeds {
				for _, it := range resp.Items {
					if slices.Contains(resp.Seeds, it.MovieID) {
						t.Errorf("seed %d returned as a recommendation", it.MovieID)
					}
				}
			} else if len(resp.Items) == 0 || resp.Items[0].MovieID != 1 {
				t.Errorf("popular items = %+v, want movie 1 first", resp.Items)
			}
		})
	}

	t.Run("unrated seed is reported as skipped", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/v1/recommendations", strings.NewReader(`{"movie_ids":[6,4,5]}`))
		var resp RecommendationResponse
		decode(t, w, &resp)
		if !slices.Equal(resp.SkippedSeeds, []int{6}) {
			t.Errorf("SkippedSeeds = %v, want [6]", resp.SkippedSeeds)
		}
	})
}

func TestRecommend_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "too many seeds", body: `{"movie_ids":[1,2,3,4]}`, wantCode: ErrCodeValidationFailed},
		{name: "not json", body: `movie_ids=1`, wantCode: ErrCodeInvalidJSON},
		{name: "empty body", body: ``, wantCode: ErrCodeInvalidJSON},
		{name: "unknown field", body: `{"movies":[1]}`, wantCode: ErrCodeInvalidJSON},
		{name: "string ids", body: `{"movie_ids":["1"]}`, wantCode: ErrCodeInvalidJSON},
		{name: "trailing data", body: `{"movie_ids":[1]} {}`, wantCode: ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/v1/recommendations", strings.NewReader(tt.body))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body=%s", w.Code, w.Body.String())
			}
			env := decode(t, w, nil)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}

	t.Run("validation message names the limit", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/v1/recommendations", strings.NewReader(`{"movie_ids":[1,2,3,4]}`))
		env := decode(t, w, nil)
		if env.Error.Message != "movie_ids must contain at most 3 items" {
			t.Errorf("Message = %q", env.Error.Message)
		}
	})
}

func TestTopRated(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	w := do(t, srv, http.MethodGet, "/api/v1/recommendations/top", nil)
	var resp RecommendationResponse
	decode(t, w, &resp)

	ids := make([]int, len(resp.Items))
	for i, it := range resp.Items {
		ids[i] = it.MovieID
	}
	if want := []int{1, 2, 3, 5, 4}; !slices.Equal(ids, want) {
		t.Errorf("top rated = %v, want %v", ids, want)
	}
	if resp.Mode != selection.ModePopular {
		t.Errorf("Mode = %q, want popular", resp.Mode)
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	var stats StatsResponse
	w := do(t, srv, http.MethodGet, "/api/v1/stats", nil)
	decode(t, w, &stats)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stats.Movies != 6 || stats.Rows != 5 || stats.Raters != 4 || stats.Ratings != len(testRatings) {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ResultLimit != 5 || stats.MinSeeds != 3 {
		t.Errorf("ResultLimit = %d, MinSeeds = %d", stats.ResultLimit, stats.MinSeeds)
	}
}

func TestRouting(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	t.Run("unknown route", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/nope", nil)
		env := decode(t, w, nil)
		if w.Code != http.StatusNotFound || env.Error.Code != ErrCodeNotFound {
			t.Errorf("status = %d, error = %+v", w.Code, env.Error)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		w := do(t, srv, http.MethodDelete, "/api/v1/stats", nil)
		env := decode(t, w, nil)
		if w.Code != http.StatusMethodNotAllowed || env.Error.Code != ErrCodeMethodNotAllowed {
			t.Errorf("status = %d, error = %+v", w.Code, env.Error)
		}
	})

	t.Run("request id echoed", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/v1/stats", nil)
		env := decode(t, w, nil)
		header := w.Header().Get("X-Request-ID")
		if header == "" || env.Meta.RequestID != header {
			t.Errorf("header = %q, meta request_id = %q", header, env.Meta.RequestID)
		}
	})

	t.Run("metrics exposed", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/metrics", nil)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "marquee_http_requests_total") {
			t.Errorf("status = %d, body lacks marquee_http_requests_total", w.Code)
		}
	})
}
