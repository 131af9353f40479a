// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"container/heap"
	"sort"
	"sync"
)

// SimilarityIndex answers "k nearest movies by cosine similarity" queries.
//
// Query results are ordered by similarity descending with ties broken by
// ascending movie id. The queried movie itself is always the first entry,
// with similarity 1.0 unless its row is all zeros; removing it is the
// caller's job. An unknown movie id yields
// an error matching ErrNotFound.
//
// Implementations must be immutable once built. Any exact or approximate
// index honoring the ordering contract can be swapped in.
type SimilarityIndex interface {
	Query(movieID, k int) ([]Neighbor, error)
	Len() int
}

// BruteForceIndex computes exact cosine similarity against every row on each
// query. Dot products are accumulated through the matrix's rater columns, so
// only rows sharing at least one rater with the query do any arithmetic.
type BruteForceIndex struct {
	matrix *RatingMatrix
	pool   sync.Pool
}

// NewBruteForceIndex wraps a rating matrix.
func NewBruteForceIndex(m *RatingMatrix) *BruteForceIndex {
	idx := &BruteForceIndex{matrix: m}
	idx.pool.New = func() any {
		buf := make([]float64, m.Rows())
		return &buf
	}
	return idx
}

// Len returns the number of indexed movies.
func (b *BruteForceIndex) Len() int {
	return b.matrix.Rows()
}

// Query returns up to k neighbors of movieID, itself included.
func (b *BruteForceIndex) Query(movieID, k int) ([]Neighbor, error) {
	row, ok := b.matrix.RowOf(movieID)
	if !ok {
		return nil, notFound("row", movieID)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}

	bufp := b.pool.Get().(*[]float64)
	dots := *bufp
	clear(dots)
	defer b.pool.Put(bufp)

	b.matrix.dots(row, dots)

	top := newTopK(k - 1)
	norm := b.matrix.Norm(row)
	for other := range dots {
		if other == row {
			continue
		}
		top.offer(other, cosine(dots[other], norm, b.matrix.Norm(other)))
	}

	self := 1.0
	if norm == 0 {
		self = 0
	}
	out := make([]Neighbor, 0, k)
	out = append(out, Neighbor{MovieID: movieID, Similarity: self})
	for _, c := range top.sorted() {
		out = append(out, Neighbor{MovieID: b.matrix.MovieAt(c.row), Similarity: c.sim})
	}
	return out, nil
}

// cosine turns a dot product into a similarity in [-1, 1]. Zero vectors
// have similarity 0 to everything.
func cosine(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (normA * normB)
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	}
	return sim
}

type candidate struct {
	row int
	sim float64
}

// better orders by similarity descending, then row ascending. Rows are in
// ascending movie id order, so this is the movie id tie-break.
func better(a, b candidate) bool {
	if a.sim != b.sim {
		return a.sim > b.sim
	}
	return a.row < b.row
}

// topK keeps the k best candidates in a min-heap rooted at the worst one.
type topK struct {
	k     int
	items []candidate
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]candidate, 0, max(k, 0))}
}

func (t *topK) Len() int           { return len(t.items) }
func (t *topK) Less(i, j int) bool { return better(t.items[j], t.items[i]) }
func (t *topK) Swap(i, j int)      { t.items[i], t.items[j] = t.items[j], t.items[i] }
func (t *topK) Push(x any)         { t.items = append(t.items, x.(candidate)) }
func (t *topK) Pop() any {
	last := t.items[len(t.items)-1]
	t.items = t.items[:len(t.items)-1]
	return last
}

func (t *topK) offer(row int, sim float64) {
	if t.k <= 0 {
		return
	}
	c := candidate{row: row, sim: sim}
	if len(t.items) < t.k {
		heap.Push(t, c)
		return
	}
	if better(c, t.items[0]) {
		t.items[0] = c
		heap.Fix(t, 0)
	}
}

func (t *topK) sorted() []candidate {
	out := append([]candidate(nil), t.items...)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}
