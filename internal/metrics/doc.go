// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus instrumentation for Marquee.

Metrics are registered on the default registry with promauto and exposed at
/metrics by internal/api:

	curl http://localhost:5000/metrics

# Available Metrics

Recommendations:
  - marquee_recommendation_requests_total{mode,source}: answered requests,
    mode is seeds or popular, source is api or web
  - marquee_recommendation_results: items returned per request (histogram)
  - marquee_recommendation_duration_seconds{mode}: time to rank (histogram)
  - marquee_seeds_rejected_total{reason}: submitted seeds that were not used

Engine:
  - marquee_engine_build_duration_seconds: time to build the engine (gauge)
  - marquee_engine_movies, marquee_engine_raters, marquee_engine_ratings (gauges)
  - marquee_engine_ready: 1 once the engine serves requests (gauge)
  - marquee_dataset_rows_total{file,outcome}: loaded and skipped input rows

HTTP:
  - marquee_http_requests_total{method,endpoint,status}
  - marquee_http_request_duration_seconds{method,endpoint}
  - marquee_http_requests_in_flight
  - marquee_http_rate_limited_total{endpoint}

The endpoint label is the chi route pattern (for example
/api/v1/movies/{id}), never the raw path, so label cardinality stays bounded.
*/
package metrics
