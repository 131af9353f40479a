// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/recommend"
)

// DefaultRatingsOptions matches the MovieLens ratings CSV.
func DefaultRatingsOptions() RatingsOptions {
	return RatingsOptions{Delimiter: ',', Header: true}
}

// LoadRatings parses (rater id, movie id, rating) triples from the first
// three columns of each row.
func LoadRatings(ctx context.Context, r io.Reader, opts RatingsOptions) ([]recommend.Rating, LoadReport, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	var (
		report  LoadReport
		ratings []recommend.Rating
	)

	err := eachRecord(ctx, newCSVReader(r, opts.Delimiter), opts.Header, &report, func(fields []string) string {
		if len(fields) < 3 {
			return "expected at least 3 fields, got " + strconv.Itoa(len(fields))
		}
		rater, ok := parseID(fields[0])
		if !ok {
			return "invalid rater id " + strconv.Quote(fields[0])
		}
		movie, ok := parseID(fields[1])
		if !ok {
			return "invalid movie id " + strconv.Quote(fields[1])
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return "invalid rating " + strconv.Quote(fields[2])
		}
		ratings = append(ratings, recommend.Rating{RaterID: rater, MovieID: movie, Value: value})
		return ""
	})
	if err != nil {
		return nil, report, err
	}
	return ratings, report, nil
}
