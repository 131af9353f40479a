// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/selection"
)

// Request sources for metrics.
const (
	sourceAPI = "api"
	sourceWeb = "web"
)

// RecommendationResponse is the answer to a seed request.
type RecommendationResponse struct {
	Mode   selection.Mode `json:"mode"`
	Header string         `json:"header"`
	// Seeds are the accepted, distinct seeds in ascending order.
	Seeds    []int                      `json:"seeds"`
	Items    []recommend.Recommendation `json:"items"`
	Rejected []selection.Rejected       `json:"rejected,omitempty"`
	// SkippedSeeds are accepted seeds without any ratings to compare.
	SkippedSeeds []int `json:"skipped_seeds,omitempty"`
}

// StatsResponse reports what the served engine was built from.
type StatsResponse struct {
	recommend.BuildStats
	ResultLimit int `json:"result_limit"`
	MinSeeds    int `json:"min_seeds"`
}

// Recommend handles POST /api/v1/recommendations
//
// Body: {"movie_ids": [1, 2, 3]}. With at least MIN_SEEDS distinct known
// ids the answer is seed-based; otherwise it is the top-rated list. Unknown
// or non-positive ids are reported under "rejected" rather than failing the
// request.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, ok := h.currentEngine(rw)
	if !ok {
		return
	}

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}
	if verr := validateRecommendRequest(&req, h.config.Recommend.MaxSeeds); verr != nil {
		rw.ValidationError(verr)
		return
	}

	decision := selection.PlanIDs(req.MovieIDs, e.IsKnown, e.Config().MinSeeds)
	rw.Success(h.answer(r.Context(), e, decision, sourceAPI))
}

// TopRated handles GET /api/v1/recommendations/top
func (h *Handler) TopRated(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, ok := h.currentEngine(rw)
	if !ok {
		return
	}

	decision := selection.Decision{Mode: selection.ModePopular, Seeds: []int{}}
	rw.Success(h.answer(r.Context(), e, decision, sourceAPI))
}

// Stats handles GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, ok := h.currentEngine(rw)
	if !ok {
		return
	}

	cfg := e.Config()
	rw.Success(StatsResponse{
		BuildStats:  e.Stats(),
		ResultLimit: cfg.ResultLimit,
		MinSeeds:    cfg.MinSeeds,
	})
}

// answer runs the ranking chosen by decision and records metrics. It is
// shared by the JSON API and the HTML form.
func (h *Handler) answer(ctx context.Context, e *recommend.Engine, decision selection.Decision, source string) RecommendationResponse {
	start := time.Now()

	resp := RecommendationResponse{
		Mode:     decision.Mode,
		Header:   decision.Header(e.Config().ResultLimit),
		Seeds:    decision.Seeds,
		Rejected: decision.Rejected,
	}
	if resp.Seeds == nil {
		resp.Seeds = []int{}
	}

	switch decision.Mode {
	case selection.ModeSeeds:
		result := h.recommendSeeds(ctx, e, decision.Seeds)
		resp.Items = result.Items
		resp.SkippedSeeds = result.SkippedSeeds
	default:
		resp.Items = e.TopRated(ctx)
	}
	if resp.Items == nil {
		resp.Items = []recommend.Recommendation{}
	}

	for _, rej := range decision.Rejected {
		metrics.RecordSeedRejected(rej.Reason)
	}
	metrics.RecordRecommendation(string(decision.Mode), source, len(resp.Items), time.Since(start))

	logging.Ctx(ctx).Debug().
		Str("mode", string(decision.Mode)).
		Str("source", source).
		Ints("seeds", decision.Seeds).
		Int("rejected", len(decision.Rejected)).
		Int("results", len(resp.Items)).
		Msg("Recommendation served")

	return resp
}

// cachedAnswer ties a result to the engine that produced it, so an entry
// written while a reload is being published is never served from the new
// engine.
type cachedAnswer struct {
	engine *recommend.Engine
	result recommend.AggregateResult
}

// recommendSeeds answers a seed query through the answer cache. seeds must
// be sorted and distinct.
func (h *Handler) recommendSeeds(ctx context.Context, e *recommend.Engine, seeds []int) recommend.AggregateResult {
	if h.answers == nil {
		return e.RecommendDetailed(ctx, seeds)
	}

	key := seedKey(seeds)
	if cached, ok := h.answers.Get(key); ok && cached.engine == e {
		metrics.RecordCacheLookup(true)
		return cached.result
	}
	metrics.RecordCacheLookup(false)

	result := e.RecommendDetailed(ctx, seeds)
	h.answers.Add(key, cachedAnswer{engine: e, result: result})
	return result
}

func seedKey(seeds []int) string {
	var b strings.Builder
	for i, id := range seeds {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}
