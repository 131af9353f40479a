// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Handler serves the JSON API and the HTML pages from the current engine.
//
// The engine is swapped atomically on reload. Each request reads it once so
// a reload in flight never mixes two snapshots in one response.
type Handler struct {
	engine    atomic.Pointer[recommend.Engine]
	config    *config.Config
	startTime time.Time
	pages     *pages

	// answers holds recent seed-based results; nil when caching is off.
	answers *cache.LRU[string, cachedAnswer]
}

// NewHandler creates a handler with no engine. Until SetEngine is called
// every engine-backed route answers 503.
func NewHandler(cfg *config.Config) (*Handler, error) {
	p, err := newPages()
	if err != nil {
		return nil, err
	}
	h := &Handler{
		config:    cfg,
		startTime: time.Now(),
		pages:     p,
	}
	if cfg.Recommend.CacheSize > 0 {
		h.answers = cache.NewLRU[string, cachedAnswer](cfg.Recommend.CacheSize, cfg.Recommend.CacheTTL)
	}
	return h, nil
}

// SetEngine publishes e to subsequent requests.
func (h *Handler) SetEngine(e *recommend.Engine) {
	h.engine.Store(e)
	if h.answers != nil {
		h.answers.Purge()
	}
	metrics.SetEngineReady(e != nil)
}

// Engine returns the engine currently served, or nil.
func (h *Handler) Engine() *recommend.Engine {
	return h.engine.Load()
}

// currentEngine writes a 503 and returns false when no engine is loaded yet.
func (h *Handler) currentEngine(rw *ResponseWriter) (*recommend.Engine, bool) {
	e := h.engine.Load()
	if e == nil {
		rw.ServiceUnavailable("Recommendation engine is not ready")
		return nil, false
	}
	return e, true
}

// pageLimit reads the "limit" query parameter. Missing means def; values
// above max are clamped. Non-numeric or non-positive values are rejected.
func pageLimit(r *http.Request, def, max int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	if n > max {
		n = max
	}
	return n, true
}
