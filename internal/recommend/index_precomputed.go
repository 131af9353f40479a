// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

// PrecomputedIndex caches the top-K neighbor list of every row. Queries with
// k <= K are answered from the cache; larger k falls through to the wrapped
// index.
type PrecomputedIndex struct {
	inner     *BruteForceIndex
	matrix    *RatingMatrix
	k         int
	neighbors [][]Neighbor // by row
}

// NewPrecomputedIndex queries inner for every row using the given number of
// workers. Each worker owns a contiguous chunk of rows, so no locking is
// needed on the result slice.
func NewPrecomputedIndex(ctx context.Context, inner *BruteForceIndex, k, workers int) (*PrecomputedIndex, error) {
	if k < 1 {
		return nil, fmt.Errorf("precomputed neighbor count must be positive, got %d", k)
	}
	if workers < 1 {
		workers = 1
	}

	m := inner.matrix
	p := &PrecomputedIndex{
		inner:     inner,
		matrix:    m,
		k:         k,
		neighbors: make([][]Neighbor, m.Rows()),
	}

	g, ctx := errgroup.WithContext(ctx)
	chunkSize := (m.Rows() + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, m.Rows())
		if start >= end {
			break
		}

		g.Go(func() error {
			for row := start; row < end; row++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				list, err := inner.Query(m.MovieAt(row), k)
				if err != nil {
					return fmt.Errorf("precompute row %d: %w", row, err)
				}
				p.neighbors[row] = list
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// Len returns the number of indexed movies.
func (p *PrecomputedIndex) Len() int {
	return len(p.neighbors)
}

// CachedK returns how many neighbors are cached per row.
func (p *PrecomputedIndex) CachedK() int {
	return p.k
}

// Query returns up to k neighbors of movieID, itself included.
func (p *PrecomputedIndex) Query(movieID, k int) ([]Neighbor, error) {
	if k > p.k {
		return p.inner.Query(movieID, k)
	}
	row, ok := p.matrix.RowOf(movieID)
	if !ok {
		return nil, notFound("row", movieID)
	}
	if k <= 0 {
		return []Neighbor{}, nil
	}
	list := p.neighbors[row]
	return slices.Clone(list[:min(k, len(list))]), nil
}
