// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marquee"

var (
	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_requests_total",
			Help:      "Total number of answered recommendation requests",
		},
		[]string{"mode", "source"}, // mode: seeds, popular; source: api, web
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_results",
			Help:      "Number of movies returned per recommendation request",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10, 20},
		},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Time spent ranking recommendations",
			Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"mode"},
	)

	SeedsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeds_rejected_total",
			Help:      "Total number of submitted seeds that could not be used",
		},
		[]string{"reason"},
	)

	RecommendationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_cache_lookups_total",
			Help:      "Seed-based answer cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	// Engine Metrics
	EngineBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_build_duration_seconds",
			Help:      "Time taken by the last engine build",
		},
	)

	EngineMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_movies",
			Help:      "Number of movies in the catalog",
		},
	)

	EngineRaters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_raters",
			Help:      "Number of distinct raters in the rating matrix",
		},
	)

	EngineRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_ratings",
			Help:      "Number of ratings used by the engine",
		},
	)

	EngineReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engine_ready",
			Help:      "1 when the recommendation engine is serving requests",
		},
	)

	DatasetRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_rows_total",
			Help:      "Input rows read from dataset files",
		},
		[]string{"file", "outcome"}, // outcome: loaded, skipped
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

// RecordRecommendation records one answered recommendation request.
func RecordRecommendation(mode, source string, results int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(mode, source).Inc()
	RecommendationResults.Observe(float64(results))
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordSeedRejected counts one seed that was dropped for reason.
func RecordSeedRejected(reason string) {
	SeedsRejected.WithLabelValues(reason).Inc()
}

// RecordCacheLookup counts one lookup in the seed-based answer cache.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendationCache.WithLabelValues("hit").Inc()
		return
	}
	RecommendationCache.WithLabelValues("miss").Inc()
}

// RecordEngineBuild publishes the size of a freshly built engine.
func RecordEngineBuild(duration time.Duration, movies, raters, ratings int) {
	EngineBuildDuration.Set(duration.Seconds())
	EngineMovies.Set(float64(movies))
	EngineRaters.Set(float64(raters))
	EngineRatings.Set(float64(ratings))
}

// SetEngineReady flips the readiness gauge.
func SetEngineReady(ready bool) {
	if ready {
		EngineReady.Set(1)
		return
	}
	EngineReady.Set(0)
}

// RecordDatasetLoad records the outcome of reading one dataset file.
func RecordDatasetLoad(file string, loaded, skipped int) {
	DatasetRows.WithLabelValues(file, "loaded").Add(float64(loaded))
	DatasetRows.WithLabelValues(file, "skipped").Add(float64(skipped))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	RateLimited.WithLabelValues(endpoint).Inc()
}
