// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Five rated movies with three ratings each, plus one nobody rated.
// Means: 1=4.67 2=4.33 3=4.00 4=1.67 5=4.00
var testMovies = []recommend.Movie{
	{ID: 1, Title: "Toy Story (1995)"},
	{ID: 2, Title: "GoldenEye (1995)"},
	{ID: 3, Title: "Four Rooms (1995)"},
	{ID: 4, Title: "Get Shorty (1995)"},
	{ID: 5, Title: "Copycat (1995)"},
	{ID: 6, Title: "Unrated Oddity (1996)"},
}

var testRatings = []recommend.Rating{
	{RaterID: 1, MovieID: 1, Value: 5}, {RaterID: 1, MovieID: 2, Value: 4}, {RaterID: 1, MovieID: 3, Value: 4}, {RaterID: 1, MovieID: 4, Value: 2},
	{RaterID: 2, MovieID: 1, Value: 4}, {RaterID: 2, MovieID: 2, Value: 5}, {RaterID: 2, MovieID: 4, Value: 1}, {RaterID: 2, MovieID: 5, Value: 3},
	{RaterID: 3, MovieID: 1, Value: 5}, {RaterID: 3, MovieID: 3, Value: 3}, {RaterID: 3, MovieID: 5, Value: 4},
	{RaterID: 4, MovieID: 2, Value: 4}, {RaterID: 4, MovieID: 3, Value: 5}, {RaterID: 4, MovieID: 4, Value: 2}, {RaterID: 4, MovieID: 5, Value: 5},
}

// envelope mirrors APIResponse with the payload left undecoded.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Recommend.Workers = 2
	cfg.Security.RateLimitDisabled = true
	return cfg
}

func testEngine(t *testing.T, cfg *config.Config) *recommend.Engine {
	t.Helper()
	e, err := recommend.BuildEngine(context.Background(), testRatings, testMovies, cfg.Recommend.EngineConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}
	return e
}

// newTestServer returns the full router. loaded controls whether an engine
// is published before the first request.
func newTestServer(t *testing.T, cfg *config.Config, loaded bool) (http.Handler, *Handler) {
	t.Helper()
	h, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if loaded {
		h.SetEngine(testEngine(t, cfg))
	}
	return NewRouter(h, cfg).SetupChi(), h
}

func do(t *testing.T, srv http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil && method == http.MethodPost && strings.HasPrefix(target, "/api/") {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body=%s", err, w.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v; data=%s", err, env.Data)
		}
	}
	return env
}
