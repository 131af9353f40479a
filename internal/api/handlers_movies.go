// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/recommend"
)

// MovieDetail is a catalog entry with its rating statistics.
type MovieDetail struct {
	recommend.Movie
	// Stats is nil for movies nobody rated.
	Stats *recommend.MovieStats `json:"stats,omitempty"`
}

// SimilarResponse lists the neighbors of one movie.
type SimilarResponse struct {
	Movie recommend.Movie            `json:"movie"`
	Items []recommend.Recommendation `json:"items"`
}

// ListMovies handles GET /api/v1/movies?q=&limit=
// Without q it pages through the catalog in title order; with q it returns
// titles containing q.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, ok := h.currentEngine(rw)
	if !ok {
		return
	}

	limit, ok := pageLimit(r, h.config.API.DefaultPageSize, h.config.API.MaxPageSize)
	if !ok {
		rw.BadRequest(ErrCodeBadRequest, "limit must be a positive integer")
		return
	}

	var movies []recommend.Movie
	if q := r.URL.Query().Get("q"); q != "" {
		movies = e.SearchCatalog(q, 0)
	} else {
		movies = e.CatalogEntries()
	}

	total := len(movies)
	if len(movies) > limit {
		movies = movies[:limit]
	}
	if movies == nil {
		movies = []recommend.Movie{}
	}

	rw.SuccessWithPagination(movies, &PaginationMeta{
		Total:   total,
		Count:   len(movies),
		Limit:   limit,
		HasMore: total > len(movies),
	})
}

// GetMovie handles GET /api/v1/movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, ok := h.currentEngine(rw)
	if !ok {
		return
	}

	id, ok := movieIDParam(rw, r)
	if !ok {
		return
	}

	movie, err := e.Lookup(id)
	if err != nil {
		rw.NotFound("Movie " + strconv.Itoa(id) + " not found")
		return
	}

	detail := MovieDetail{Movie: movie}
	if stats, ok := e.MovieStats(id); ok {
		detail.Stats = &stats
	}
	rw.Success(detail)
}

// SimilarMovies handles GET /api/v1/movies/{id}/similar?limit=
// A known movie nobody rated has no neighbors and gets an empty list.
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	e, ok := h.currentEngine(rw)
	if !ok {
		return
	}

	id, ok := movieIDParam(rw, r)
	if !ok {
		return
	}

	def := e.Config().NeighborCount - 1
	limit, ok := pageLimit(r, def, h.config.API.MaxPageSize)
	if !ok {
		rw.BadRequest(ErrCodeBadRequest, "limit must be a positive integer")
		return
	}

	movie, err := e.Lookup(id)
	if err != nil {
		rw.NotFound("Movie " + strconv.Itoa(id) + " not found")
		return
	}

	items, err := e.Similar(id, limit)
	if err != nil {
		if !errors.Is(err, recommend.ErrNotFound) {
			rw.InternalError(err)
			return
		}
		items = []recommend.Recommendation{}
	}

	rw.Success(SimilarResponse{Movie: movie, Items: items})
}

func movieIDParam(rw *ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		rw.BadRequest(ErrCodeInvalidMovieID, "Invalid movie ID: "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}
