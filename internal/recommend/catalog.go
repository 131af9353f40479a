// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var yearDecoration = regexp.MustCompile(` \(\d{4}\)`)

// CleanTitle removes " (YYYY)" release-year decorations from a title.
// The raw title is still what users see; the clean form is for matching.
func CleanTitle(title string) string {
	return strings.TrimSpace(yearDecoration.ReplaceAllString(title, ""))
}

// Catalog maps movie ids to titles.
type Catalog struct {
	byID    map[int]Movie
	clean   map[int]string
	ordered []Movie // title ascending, id ascending on ties
}

// NewCatalog builds a catalog from movie records. The first record for an id
// wins and records with non-positive ids are ignored.
func NewCatalog(movies []Movie) *Catalog {
	c := &Catalog{
		byID:  make(map[int]Movie, len(movies)),
		clean: make(map[int]string, len(movies)),
	}

	for _, m := range movies {
		if m.ID <= 0 {
			continue
		}
		if _, dup := c.byID[m.ID]; dup {
			continue
		}
		c.byID[m.ID] = m
		c.clean[m.ID] = strings.ToLower(CleanTitle(m.Title))
	}

	c.ordered = lo.Values(c.byID)
	slices.SortFunc(c.ordered, compareByTitle)

	return c
}

func compareByTitle(a, b Movie) int {
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return a.ID - b.ID
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Lookup returns the movie for id or a *NotFoundError.
func (c *Catalog) Lookup(id int) (Movie, error) {
	m, ok := c.byID[id]
	if !ok {
		return Movie{}, notFound("movie", id)
	}
	return m, nil
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Entries returns every movie ordered by title.
func (c *Catalog) Entries() []Movie {
	return slices.Clone(c.ordered)
}

// Search returns movies whose clean title contains query, case-insensitively,
// in Entries order. A limit of zero or less means no limit.
func (c *Catalog) Search(query string, limit int) []Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	matches := lo.Filter(c.ordered, func(m Movie, _ int) bool {
		return strings.Contains(c.clean[m.ID], q)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// resolve turns ranked ids into recommendations, dropping ids without a title.
func (c *Catalog) resolve(ids []int, scores map[int]float64, limit int) []Recommendation {
	out := make([]Recommendation, 0, min(len(ids), limit))
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		m, err := c.Lookup(id)
		if err != nil {
			continue
		}
		out = append(out, Recommendation{MovieID: id, Title: m.Title, Score: scores[id]})
	}
	return out
}
