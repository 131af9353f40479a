// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves Marquee over HTTP: a JSON API under /api/v1 and the
three-select HTML page at /.

# Routes

	GET  /api/v1/health/live            liveness
	GET  /api/v1/health/ready           503 until an engine is loaded
	GET  /api/v1/movies?q=&limit=       catalog in title order, or title search
	GET  /api/v1/movies/{id}            one movie with rating statistics
	GET  /api/v1/movies/{id}/similar    nearest neighbors, the movie excluded
	POST /api/v1/recommendations        {"movie_ids": [...]} seed request
	GET  /api/v1/recommendations/top    popularity fallback list
	GET  /api/v1/stats                  engine build statistics
	GET  /metrics                       Prometheus exposition
	GET  /                              seed picker form
	POST /recommend                     form submission (movie1..movie3)

# Responses

Every JSON endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0}
	}

Errors set "success": false and carry {"code", "message", "request_id"}
under "error". Validation failures use code VALIDATION_ERROR with field
details.

# Engine swaps

Handler holds the engine behind an atomic pointer. SetEngine publishes a
new snapshot (initial build or reload); each request loads it once.

# Middleware

Request ID and logging context, trusted-proxy aware RealIP, access log,
Prometheus request metrics, panic recovery, CORS (go-chi/cors), gzip, and
per-IP rate limiting (go-chi/httprate) with a looser limit for probes.
Engine routes also run under chi's Timeout middleware.
*/
package api
