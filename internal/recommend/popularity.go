// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"slices"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// PopularityRanker ranks movies by mean rating among those with at least the
// median number of ratings.
//
// The median of per-movie counts is the minimum-support threshold. It adapts
// to the dataset instead of using a fixed constant, which keeps roughly half
// the catalog eligible at any dataset size at the cost of a looser notion of
// "popular".
type PopularityRanker struct {
	stats  map[int]MovieStats
	means  map[int]float64
	median float64
	ranked []int // eligible movies, mean descending, id ascending on ties
}

// NewPopularityRanker computes per-movie statistics from merged ratings.
// Ratings with value 0 count toward both mean and count here even though
// the rating matrix does not store them.
func NewPopularityRanker(merged []Rating) *PopularityRanker {
	values := make(map[int][]float64)
	for _, r := range merged {
		values[r.MovieID] = append(values[r.MovieID], r.Value)
	}

	p := &PopularityRanker{
		stats: make(map[int]MovieStats, len(values)),
		means: make(map[int]float64, len(values)),
	}
	for id, v := range values {
		mean := stat.Mean(v, nil)
		p.stats[id] = MovieStats{MovieID: id, Count: len(v), Mean: mean}
		p.means[id] = mean
	}

	p.median = medianCount(lo.MapToSlice(p.stats, func(_ int, s MovieStats) int { return s.Count }))

	p.ranked = lo.FilterMap(lo.Keys(p.stats), func(id int, _ int) (int, bool) {
		return id, float64(p.stats[id].Count) >= p.median
	})
	sort.Slice(p.ranked, func(i, j int) bool {
		a, b := p.stats[p.ranked[i]], p.stats[p.ranked[j]]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.MovieID < b.MovieID
	})

	return p
}

// medianCount returns the median, averaging the two middle values when the
// number of counts is even.
func medianCount(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	slices.Sort(counts)
	mid := len(counts) / 2
	if len(counts)%2 == 1 {
		return float64(counts[mid])
	}
	return float64(counts[mid-1]+counts[mid]) / 2
}

// Top returns up to limit eligible movies with titles. Score is the mean.
func (p *PopularityRanker) Top(catalog *Catalog, limit int) []Recommendation {
	if limit <= 0 {
		return []Recommendation{}
	}
	return catalog.resolve(p.ranked, p.means, limit)
}

// Stats returns the statistics for one movie.
func (p *PopularityRanker) Stats(movieID int) (MovieStats, bool) {
	s, ok := p.stats[movieID]
	return s, ok
}

// MedianSupport returns the minimum rating count for eligibility.
func (p *PopularityRanker) MedianSupport() float64 {
	return p.median
}

// Eligible returns how many movies pass the support filter.
func (p *PopularityRanker) Eligible() int {
	return len(p.ranked)
}
