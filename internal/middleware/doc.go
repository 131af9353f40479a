// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides the HTTP middleware used by the Marquee router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: accepts or generates X-Request-ID and attaches a request-scoped
    logger to the context
  - AccessLog: one log line per request, promoted to warn when slow
  - PrometheusMetrics: request counts and latency labelled by route pattern
  - Compression: gzip for clients that accept it

Typical stack, outermost first:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Compression)
*/
package middleware
