// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package selection decides how a recommendation request is answered.
//
// A request carries up to a few raw movie ids (form fields or a JSON array).
// Plan keeps the values that are plain decimal digits, positive and present in
// the catalog, removes duplicates, and picks the seed path when enough
// distinct seeds remain. Otherwise the popularity list is served.
//
//	d := selection.Plan(form, engine.IsKnown, 3)
//	if d.Mode == selection.ModeSeeds {
//	    items = engine.RecommendFromSeeds(ctx, d.Seeds)
//	} else {
//	    items = engine.TopRated(ctx)
//	}
package selection
