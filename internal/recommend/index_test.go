// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"sort"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// referenceNeighbors ranks every other row by cosine over the dense matrix.
func referenceNeighbors(m *RatingMatrix, movieID, k int) []Neighbor {
	d := m.Dense()
	row, _ := m.RowOf(movieID)
	q := d.RawRowView(row)

	var cands []candidate
	for other := 0; other < m.Rows(); other++ {
		if other == row {
			continue
		}
		o := d.RawRowView(other)
		cands = append(cands, candidate{
			row: other,
			sim: cosine(floats.Dot(q, o), floats.Norm(q, 2), floats.Norm(o, 2)),
		})
	}
	sort.Slice(cands, func(i, j int) bool { return better(cands[i], cands[j]) })

	out := []Neighbor{{MovieID: movieID, Similarity: 1}}
	for _, c := range cands {
		if len(out) >= k {
			break
		}
		out = append(out, Neighbor{MovieID: m.MovieAt(c.row), Similarity: c.sim})
	}
	return out
}

func equalNeighbors(a, b []Neighbor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBruteForceIndex_MatchesDenseReference(t *testing.T) {
	ratings, movies := randomDataset(7, 40, 30, 0.3)
	m, err := BuildRatingMatrix(ratings, NewCatalog(movies))
	if err != nil {
		t.Fatalf("BuildRatingMatrix() error = %v", err)
	}
	idx := NewBruteForceIndex(m)

	for _, k := range []int{1, 2, 11, 100} {
		for row := 0; row < m.Rows(); row++ {
			id := m.MovieAt(row)
			got, err := idx.Query(id, k)
			if err != nil {
				t.Fatalf("Query(%d, %d) error = %v", id, k, err)
			}
			want := referenceNeighbors(m, id, k)
			if !equalNeighbors(got, want) {
				t.Fatalf("Query(%d, %d) = %v, want %v", id, k, got, want)
			}
		}
	}
}

func TestBruteForceIndex_Query(t *testing.T) {
	m, err := BuildRatingMatrix(testRatings(), NewCatalog(testMovies()))
	if err != nil {
		t.Fatalf("BuildRatingMatrix() error = %v", err)
	}
	idx := NewBruteForceIndex(m)

	t.Run("self is first with similarity 1", func(t *testing.T) {
		got, err := idx.Query(3, 11)
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if got[0].MovieID != 3 || got[0].Similarity != 1 {
			t.Errorf("first neighbor = %+v, want {3 1}", got[0])
		}
	})

	t.Run("k larger than rows returns every row", func(t *testing.T) {
		got, _ := idx.Query(3, 11)
		if len(got) != 8 {
			t.Errorf("len = %d, want 8", len(got))
		}
	})

	t.Run("ordered by similarity descending", func(t *testing.T) {
		got, _ := idx.Query(1, 11)
		for i := 2; i < len(got); i++ {
			if got[i].Similarity > got[i-1].Similarity {
				t.Errorf("neighbor %d similarity %v > previous %v", i, got[i].Similarity, got[i-1].Similarity)
			}
		}
	})

	t.Run("non-positive k returns empty", func(t *testing.T) {
		for _, k := range []int{0, -1} {
			got, err := idx.Query(1, k)
			if err != nil || len(got) != 0 {
				t.Errorf("Query(1, %d) = %v, %v; want empty, nil", k, got, err)
			}
		}
	})

	t.Run("unknown movie is not found", func(t *testing.T) {
		for _, id := range []int{9, 42, 0} {
			_, err := idx.Query(id, 11)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Query(%d) error = %v, want ErrNotFound", id, err)
			}
		}
	})
}

func TestBruteForceIndex_TieBreakByMovieID(t *testing.T) {
	ratings := []Rating{
		{RaterID: 1, MovieID: 30, Value: 2},
		{RaterID: 1, MovieID: 10, Value: 2},
		{RaterID: 1, MovieID: 20, Value: 2},
	}
	movies := []Movie{{ID: 10, Title: "A"}, {ID: 20, Title: "B"}, {ID: 30, Title: "C"}}
	m, err := BuildRatingMatrix(ratings, NewCatalog(movies))
	if err != nil {
		t.Fatalf("BuildRatingMatrix() error = %v", err)
	}
	idx := NewBruteForceIndex(m)

	tests := []struct {
		query int
		want  []int
	}{
		{query: 10, want: []int{10, 20, 30}},
		{query: 20, want: []int{20, 10, 30}},
		{query: 30, want: []int{30, 10, 20}},
	}
	for _, tt := range tests {
		got, err := idx.Query(tt.query, 3)
		if err != nil {
			t.Fatalf("Query(%d) error = %v", tt.query, err)
		}
		for i, n := range got {
			if n.MovieID != tt.want[i] {
				t.Errorf("Query(%d)[%d] = %d, want %d", tt.query, i, n.MovieID, tt.want[i])
			}
		}
	}
}

func TestBruteForceIndex_ZeroNormRow(t *testing.T) {
	ratings := []Rating{
		{RaterID: 1, MovieID: 1, Value: 4},
		{RaterID: 1, MovieID: 2, Value: 0},
		{RaterID: 2, MovieID: 3, Value: 5},
	}
	movies := []Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}}
	m, err := BuildRatingMatrix(ratings, NewCatalog(movies))
	if err != nil {
		t.Fatalf("BuildRatingMatrix() error = %v", err)
	}

	got, err := NewBruteForceIndex(m).Query(2, 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	want := []Neighbor{{MovieID: 2, Similarity: 0}, {MovieID: 1, Similarity: 0}, {MovieID: 3, Similarity: 0}}
	if !equalNeighbors(got, want) {
		t.Errorf("Query(2) = %v, want %v", got, want)
	}
}

func TestPrecomputedIndex_MatchesBruteForce(t *testing.T) {
	ratings, movies := randomDataset(11, 60, 25, 0.2)
	m, err := BuildRatingMatrix(ratings, NewCatalog(movies))
	if err != nil {
		t.Fatalf("BuildRatingMatrix() error = %v", err)
	}
	brute := NewBruteForceIndex(m)

	for _, workers := range []int{0, 1, 3, 64} {
		pre, err := NewPrecomputedIndex(context.Background(), brute, DefaultNeighborCount, workers)
		if err != nil {
			t.Fatalf("NewPrecomputedIndex(workers=%d) error = %v", workers, err)
		}
		if pre.Len() != brute.Len() {
			t.Errorf("Len() = %d, want %d", pre.Len(), brute.Len())
		}
		for _, k := range []int{0, 5, DefaultNeighborCount, 20} {
			for row := 0; row < m.Rows(); row++ {
				id := m.MovieAt(row)
				got, _ := pre.Query(id, k)
				want, _ := brute.Query(id, k)
				if !equalNeighbors(got, want) {
					t.Fatalf("workers=%d Query(%d, %d) = %v, want %v", workers, id, k, got, want)
				}
			}
		}
	}

	t.Run("unknown movie is not found", func(t *testing.T) {
		pre, _ := NewPrecomputedIndex(context.Background(), brute, DefaultNeighborCount, 2)
		if _, err := pre.Query(-5, 3); !errors.Is(err, ErrNotFound) {
			t.Errorf("Query(-5) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("cached lists are not shared with callers", func(t *testing.T) {
		pre, _ := NewPrecomputedIndex(context.Background(), brute, DefaultNeighborCount, 2)
		id := m.MovieAt(0)
		first, _ := pre.Query(id, 3)
		first[1].Similarity = -42
		again, _ := pre.Query(id, 3)
		if again[1].Similarity == -42 {
			t.Error("mutating a query result changed the cache")
		}
	})
}

func TestNewPrecomputedIndex_Errors(t *testing.T) {
	m, err := BuildRatingMatrix(testRatings(), NewCatalog(testMovies()))
	if err != nil {
		t.Fatalf("BuildRatingMatrix() error = %v", err)
	}
	brute := NewBruteForceIndex(m)

	t.Run("non-positive k", func(t *testing.T) {
		if _, err := NewPrecomputedIndex(context.Background(), brute, 0, 1); err == nil {
			t.Error("NewPrecomputedIndex(k=0) error = nil, want error")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewPrecomputedIndex(ctx, brute, 11, 2); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
