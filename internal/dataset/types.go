// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"time"

	"github.com/tomtom215/marquee/internal/recommend"
)

// maxSampleErrors bounds how many skipped-row reasons a report keeps.
const maxSampleErrors = 10

// LoadReport holds statistics about one file load.
type LoadReport struct {
	// Source names what was loaded, usually the file path.
	Source string `json:"source"`

	// Rows is the number of data rows read, header excluded.
	Rows int `json:"rows"`

	// Loaded is the number of rows turned into records.
	Loaded int `json:"loaded"`

	// Skipped is the number of rows that could not be parsed.
	Skipped int `json:"skipped"`

	// SampleErrors holds the reasons for the first few skipped rows.
	SampleErrors []string `json:"sample_errors,omitempty"`

	// Duration is how long the load took.
	Duration time.Duration `json:"duration"`
}

func (r *LoadReport) skip(line int, reason string) {
	r.Skipped++
	if len(r.SampleErrors) < maxSampleErrors {
		r.SampleErrors = append(r.SampleErrors, lineReason(line, reason))
	}
}

// Dataset is everything the engine is built from.
type Dataset struct {
	Ratings       []recommend.Rating
	Movies        []recommend.Movie
	RatingsReport LoadReport
	MoviesReport  LoadReport
}

// RatingsOptions controls how the ratings file is parsed.
type RatingsOptions struct {
	// Delimiter separates fields. Default: ','.
	Delimiter rune

	// Header skips the first row.
	Header bool
}

// MoviesOptions controls how the movies file is parsed.
type MoviesOptions struct {
	// Delimiter separates fields. Default: '|'.
	Delimiter rune

	// Encoding is the file's character set: "latin-1" (default),
	// "windows-1252" or "utf-8".
	Encoding string

	// Header skips the first row.
	Header bool
}
