// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"slices"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RatingMatrix is a movie-by-rater rating matrix in compressed sparse row
// form. Rows are movies in ascending id order and columns are raters in
// ascending id order. Cells without a stored value read as 0.
//
// A transposed (column-major) copy of the same entries is kept so that
// similarity queries can walk from a movie to its raters and back to every
// other movie those raters scored.
type RatingMatrix struct {
	movieIDs []int
	raterIDs []int
	rowOf    map[int]int

	// CSR layout: entries of row r live in [indptr[r], indptr[r+1]).
	indptr  []int
	indices []int
	values  []float64
	norms   []float64

	// CSC layout of the same entries.
	colptr []int
	rowidx []int
	colval []float64

	merged     []Rating
	dropped    int
	duplicates int
}

type mergeKey struct {
	rater, movie int
}

// BuildRatingMatrix joins ratings to the catalog on movie id and pivots the
// result into a RatingMatrix.
//
// Ratings for movies missing from the catalog are dropped. When the same
// (rater, movie) pair appears more than once the last occurrence wins. If
// nothing survives the join a *DataIntegrityError is returned.
func BuildRatingMatrix(ratings []Rating, catalog *Catalog) (*RatingMatrix, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, &DataIntegrityError{Reason: "movie catalog is empty"}
	}

	m := &RatingMatrix{}

	position := make(map[mergeKey]int, len(ratings))
	merged := make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		if !catalog.Contains(r.MovieID) {
			m.dropped++
			continue
		}
		key := mergeKey{rater: r.RaterID, movie: r.MovieID}
		if i, seen := position[key]; seen {
			merged[i].Value = r.Value
			m.duplicates++
			continue
		}
		position[key] = len(merged)
		merged = append(merged, r)
	}

	if len(merged) == 0 {
		return nil, &DataIntegrityError{Reason: "no rating references a known movie"}
	}
	m.merged = merged

	m.movieIDs = sortedUnique(merged, func(r Rating) int { return r.MovieID })
	m.raterIDs = sortedUnique(merged, func(r Rating) int { return r.RaterID })

	m.rowOf = make(map[int]int, len(m.movieIDs))
	for row, id := range m.movieIDs {
		m.rowOf[id] = row
	}
	colOf := make(map[int]int, len(m.raterIDs))
	for col, id := range m.raterIDs {
		colOf[id] = col
	}

	m.buildRows(colOf)
	m.buildColumns()

	return m, nil
}

func sortedUnique(ratings []Rating, key func(Rating) int) []int {
	ids := lo.Uniq(lo.Map(ratings, func(r Rating, _ int) int { return key(r) }))
	slices.Sort(ids)
	return ids
}

// buildRows fills the CSR arrays. Zero values are not stored.
func (m *RatingMatrix) buildRows(colOf map[int]int) {
	type cell struct {
		col   int
		value float64
	}

	rows := make([][]cell, len(m.movieIDs))
	for _, r := range m.merged {
		if r.Value == 0 {
			continue
		}
		row := m.rowOf[r.MovieID]
		rows[row] = append(rows[row], cell{col: colOf[r.RaterID], value: r.Value})
	}

	m.indptr = make([]int, len(rows)+1)
	m.norms = make([]float64, len(rows))
	for row, cells := range rows {
		sort.Slice(cells, func(i, j int) bool { return cells[i].col < cells[j].col })

		start := len(m.values)
		for _, c := range cells {
			m.indices = append(m.indices, c.col)
			m.values = append(m.values, c.value)
		}
		m.indptr[row+1] = len(m.values)
		m.norms[row] = floats.Norm(m.values[start:], 2)
	}
}

// buildColumns derives the CSC arrays from the CSR arrays.
func (m *RatingMatrix) buildColumns() {
	m.colptr = make([]int, len(m.raterIDs)+1)
	for _, col := range m.indices {
		m.colptr[col+1]++
	}
	for col := range m.raterIDs {
		m.colptr[col+1] += m.colptr[col]
	}

	m.rowidx = make([]int, len(m.indices))
	m.colval = make([]float64, len(m.values))
	next := slices.Clone(m.colptr[:len(m.raterIDs)])
	for row := range m.movieIDs {
		for i := m.indptr[row]; i < m.indptr[row+1]; i++ {
			col := m.indices[i]
			m.rowidx[next[col]] = row
			m.colval[next[col]] = m.values[i]
			next[col]++
		}
	}
}

// Rows returns the number of movies in the matrix.
func (m *RatingMatrix) Rows() int {
	return len(m.movieIDs)
}

// Cols returns the number of raters in the matrix.
func (m *RatingMatrix) Cols() int {
	return len(m.raterIDs)
}

// NNZ returns the number of stored (non-zero) cells.
func (m *RatingMatrix) NNZ() int {
	return len(m.values)
}

// RowOf returns the row index for a movie id.
func (m *RatingMatrix) RowOf(movieID int) (int, bool) {
	row, ok := m.rowOf[movieID]
	return row, ok
}

// MovieAt returns the movie id stored at row.
func (m *RatingMatrix) MovieAt(row int) int {
	return m.movieIDs[row]
}

// RaterAt returns the rater id stored at col.
func (m *RatingMatrix) RaterAt(col int) int {
	return m.raterIDs[col]
}

// At returns the cell value, 0 when nothing is stored.
func (m *RatingMatrix) At(row, col int) float64 {
	cols := m.indices[m.indptr[row]:m.indptr[row+1]]
	i, ok := slices.BinarySearch(cols, col)
	if !ok {
		return 0
	}
	return m.values[m.indptr[row]+i]
}

// Norm returns the L2 norm of a row.
func (m *RatingMatrix) Norm(row int) float64 {
	return m.norms[row]
}

// Dense materializes the zero-filled matrix. Intended for inspection and
// tests; production paths stay on the sparse form.
func (m *RatingMatrix) Dense() *mat.Dense {
	d := mat.NewDense(m.Rows(), m.Cols(), nil)
	for row := range m.movieIDs {
		for i := m.indptr[row]; i < m.indptr[row+1]; i++ {
			d.Set(row, m.indices[i], m.values[i])
		}
	}
	return d
}

// Merged returns the ratings that survived the join, deduplicated.
func (m *RatingMatrix) Merged() []Rating {
	return m.merged
}

// Dropped returns how many ratings referenced unknown movies.
func (m *RatingMatrix) Dropped() int {
	return m.dropped
}

// Duplicates returns how many ratings overwrote an earlier one.
func (m *RatingMatrix) Duplicates() int {
	return m.duplicates
}

// dots accumulates the dot product of row with every other row into out,
// which must have length Rows() and be zeroed.
func (m *RatingMatrix) dots(row int, out []float64) {
	for i := m.indptr[row]; i < m.indptr[row+1]; i++ {
		col, v := m.indices[i], m.values[i]
		for j := m.colptr[col]; j < m.colptr[col+1]; j++ {
			out[m.rowidx[j]] += v * m.colval[j]
		}
	}
}
