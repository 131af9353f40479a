// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/selection"
)

//go:embed templates/*.html
var templateFS embed.FS

// seedFields are the form fields of the seed picker, one per select.
var seedFields = []string{"movie1", "movie2", "movie3"}

type pages struct {
	index   *template.Template
	results *template.Template
}

func newPages() (*pages, error) {
	funcs := template.FuncMap{"inc": func(i int) int { return i + 1 }}
	parse := func(page string) (*template.Template, error) {
		t, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		return t, nil
	}

	index, err := parse("index.html")
	if err != nil {
		return nil, err
	}
	results, err := parse("results.html")
	if err != nil {
		return nil, err
	}
	return &pages{index: index, results: results}, nil
}

type indexPage struct {
	Title  string
	Fields []string
	Movies []recommend.Movie
}

type resultsPage struct {
	Title string
	RecommendationResponse
}

// Index handles GET / with the three-select seed picker.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	e := h.engine.Load()
	if e == nil {
		http.Error(w, "Recommendations are loading, try again shortly.", http.StatusServiceUnavailable)
		return
	}

	h.render(w, r, h.pages.index, indexPage{
		Fields: seedFields,
		Movies: e.CatalogEntries(),
	})
}

// RecommendForm handles POST /recommend from the seed picker.
func (h *Handler) RecommendForm(w http.ResponseWriter, r *http.Request) {
	e := h.engine.Load()
	if e == nil {
		http.Error(w, "Recommendations are loading, try again shortly.", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	raw := make([]string, 0, len(seedFields))
	for _, field := range seedFields {
		raw = append(raw, r.PostForm.Get(field))
	}

	decision := selection.Plan(raw, e.IsKnown, e.Config().MinSeeds)
	h.render(w, r, h.pages.results, resultsPage{
		Title:                  "Recommendations",
		RecommendationResponse: h.answer(r.Context(), e, decision, sourceWeb),
	})
}

// render executes t into a buffer so a template error never leaves a
// half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, t *template.Template, data interface{}) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}
