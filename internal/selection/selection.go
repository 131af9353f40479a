// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package selection

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Mode is the answer path chosen for a request.
type Mode string

const (
	// ModeSeeds answers with item-item recommendations from the seeds.
	ModeSeeds Mode = "seeds"
	// ModePopular answers with the popularity fallback list.
	ModePopular Mode = "popular"
)

// Rejection reasons.
const (
	ReasonNotNumeric = "not a movie id"
	ReasonUnknown    = "unknown movie"
)

// Rejected is an input value that could not be used as a seed.
type Rejected struct {
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Decision is the outcome of Plan.
type Decision struct {
	Mode Mode `json:"mode"`
	// Seeds are the distinct accepted movie ids in ascending order. They are
	// reported even in ModePopular.
	Seeds    []int      `json:"seeds"`
	Rejected []Rejected `json:"rejected,omitempty"`
}

// Plan validates raw seed values. Empty values are treated as "nothing
// selected" and are neither seeds nor rejections. known reports whether a
// movie id is in the catalog; a nil known accepts every id.
func Plan(raw []string, known func(int) bool, minSeeds int) Decision {
	var rejected []Rejected
	ids := lo.FilterMap(raw, func(v string, _ int) (int, bool) {
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false
		}
		id, ok := parseDigits(v)
		if !ok {
			rejected = append(rejected, Rejected{Value: v, Reason: ReasonNotNumeric})
			return 0, false
		}
		return id, true
	})

	d := PlanIDs(ids, known, minSeeds)
	d.Rejected = append(rejected, d.Rejected...)
	return d
}

// PlanIDs is Plan for already numeric input, such as a JSON request body.
func PlanIDs(ids []int, known func(int) bool, minSeeds int) Decision {
	var rejected []Rejected
	seeds := lo.Filter(lo.Uniq(ids), func(id int, _ int) bool {
		if id <= 0 {
			rejected = append(rejected, Rejected{Value: strconv.Itoa(id), Reason: ReasonNotNumeric})
			return false
		}
		if known != nil && !known(id) {
			rejected = append(rejected, Rejected{Value: strconv.Itoa(id), Reason: ReasonUnknown})
			return false
		}
		return true
	})
	slices.Sort(seeds)

	mode := ModePopular
	if minSeeds < 1 {
		minSeeds = 1
	}
	if len(seeds) >= minSeeds {
		mode = ModeSeeds
	}
	return Decision{Mode: mode, Seeds: seeds, Rejected: rejected}
}

// Header is the heading shown above a result list of at most limit items.
func (d Decision) Header(limit int) string {
	if d.Mode == ModeSeeds {
		return fmt.Sprintf("Top %d picks based on your %d movies", limit, len(d.Seeds))
	}
	return fmt.Sprintf("No favorites selected yet, so here are the top %d highest-rated movies overall", limit)
}

// parseDigits accepts only ASCII decimal digits, the way an HTML select value
// for a movie id looks. Anything else is refused.
func parseDigits(s string) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
