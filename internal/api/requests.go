// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// RecommendRequest is the body of POST /api/v1/recommendations.
//
// The tag bound is the widest MAX_SEEDS accepts; the configured limit is
// checked by validateRecommendRequest.
type RecommendRequest struct {
	MovieIDs []int `json:"movie_ids" validate:"max=50"`
}

// decodeJSON reads one JSON object from the body into v. Unknown fields and
// trailing data are errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// validateRecommendRequest checks req against its tags and the configured
// MAX_SEEDS.
func validateRecommendRequest(req *RecommendRequest, maxSeeds int) *validation.RequestValidationError {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr
	}
	return validation.ValidateVar("movie_ids", req.MovieIDs, fmt.Sprintf("max=%d", maxSeeds))
}
