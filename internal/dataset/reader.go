// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// cancelCheckInterval is how many rows are read between context checks.
const cancelCheckInterval = 4096

// ErrUnknownEncoding is returned for an unsupported Encoding option.
var ErrUnknownEncoding = errors.New("unknown encoding")

// lookupEncoding maps an encoding name to a decoder.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// eachRecord calls fn for every record after the optional header. Records the
// csv reader rejects are reported through report and skipped. fn returns a
// non-empty reason to skip a record.
func eachRecord(ctx context.Context, cr *csv.Reader, header bool, report *LoadReport, fn func(fields []string) string) error {
	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	line := 0
	if header {
		line++
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return fmt.Errorf("read header: %w", err)
			}
		}
	}

	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++

		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				report.Rows++
				report.skip(line, perr.Err.Error())
				continue
			}
			return fmt.Errorf("read line %d: %w", line, err)
		}

		report.Rows++
		if reason := fn(fields); reason != "" {
			report.skip(line, reason)
			continue
		}
		report.Loaded++
	}
}

// parseID accepts integers and integral floats ("7" or "7.0").
func parseID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func lineReason(line int, reason string) string {
	return "line " + strconv.Itoa(line) + ": " + reason
}
