// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrDataIntegrity means the merged dataset is empty or degenerate.
	// It is only returned by BuildEngine and is fatal at startup.
	ErrDataIntegrity = errors.New("data integrity")

	// ErrNotFound means a movie id is unknown to the catalog or the index.
	// Ranking paths absorb it and return shorter lists instead.
	ErrNotFound = errors.New("not found")
)

// DataIntegrityError describes why the engine could not be built.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s", e.Reason)
}

// Is reports whether target is ErrDataIntegrity.
func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// NotFoundError identifies the missing movie and where the lookup happened.
type NotFoundError struct {
	// Kind is "movie" for catalog lookups and "row" for index queries.
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind string, id int) error {
	return &NotFoundError{Kind: kind, ID: id}
}
