// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"slices"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

// AggregateResult is the outcome of a seed-based ranking.
type AggregateResult struct {
	// Items is the ranked list, never containing a seed.
	Items []Recommendation

	// SkippedSeeds lists seeds the index did not know, ascending.
	SkippedSeeds []int

	// Candidates is the number of distinct movies that received a score.
	Candidates int
}

// Aggregate queries index for each distinct seed, sums neighbor similarities
// per movie and returns the best limit movies that have a catalog title.
//
// Seeds are visited in ascending id order so floating point sums come out the
// same regardless of how the caller ordered them. Seeds the index rejects
// (ErrNotFound) contribute nothing; the result is simply shorter.
func Aggregate(index SimilarityIndex, catalog *Catalog, seeds []int, k, limit int) AggregateResult {
	ordered := lo.Uniq(seeds)
	slices.Sort(ordered)
	seedSet := mapset.NewThreadUnsafeSet(ordered...)

	var result AggregateResult
	totals := make(map[int]float64)

	for _, seed := range ordered {
		neighbors, err := index.Query(seed, k)
		if err != nil {
			result.SkippedSeeds = append(result.SkippedSeeds, seed)
			continue
		}
		for _, n := range neighbors {
			if seedSet.Contains(n.MovieID) {
				continue
			}
			totals[n.MovieID] += n.Similarity
		}
	}

	result.Candidates = len(totals)
	if limit <= 0 || len(totals) == 0 {
		result.Items = []Recommendation{}
		return result
	}

	ranked := lo.Keys(totals)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		return a < b
	})

	result.Items = catalog.resolve(ranked, totals, limit)
	return result
}
