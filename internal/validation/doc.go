// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP request decoders in
// internal/api and by configuration loading in internal/config. Field names in
// error messages come from the json tag, then the koanf tag, then the Go field
// name, so a client sees the same name it sent.
//
// # Quick Start
//
//	type RecommendRequest struct {
//	    Seeds []int `json:"seeds" validate:"required,min=1,max=3,dive,gt=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Tags
//
//   - delimiter: a single character, or the two-character escape `\t`
//
// # Error Format
//
// ToAPIError produces a VALIDATION_ERROR with either a single field in the
// details or a "fields" list when more than one field failed:
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "seeds must contain at most 3 items",
//	    "details": {"field": "seeds", "tag": "max", "value": [1, 2, 3, 4]}
//	}
//
// The validator caches reflection data per struct type and is safe for
// concurrent use.
package validation
