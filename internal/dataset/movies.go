// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"context"
	"io"
	"strconv"

	"github.com/tomtom215/marquee/internal/recommend"
)

// DefaultMoviesOptions matches the MovieLens u.item file.
func DefaultMoviesOptions() MoviesOptions {
	return MoviesOptions{Delimiter: '|', Encoding: "latin-1"}
}

// LoadMovies parses (movie id, title) pairs from the first two columns of
// each row. Rows whose id is not numeric or whose title is empty are skipped.
// Titles are kept exactly as written, year decoration included.
func LoadMovies(ctx context.Context, r io.Reader, opts MoviesOptions) ([]recommend.Movie, LoadReport, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = '|'
	}
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, LoadReport{}, err
	}

	var (
		report LoadReport
		movies []recommend.Movie
	)

	cr := newCSVReader(enc.NewDecoder().Reader(r), opts.Delimiter)
	err = eachRecord(ctx, cr, opts.Header, &report, func(fields []string) string {
		if len(fields) < 2 {
			return "expected at least 2 fields, got " + strconv.Itoa(len(fields))
		}
		id, ok := parseID(fields[0])
		if !ok {
			return "invalid movie id " + strconv.Quote(fields[0])
		}
		if fields[1] == "" {
			return "empty title"
		}
		movies = append(movies, recommend.Movie{ID: id, Title: fields[1]})
		return ""
	})
	if err != nil {
		return nil, report, err
	}
	return movies, report, nil
}
