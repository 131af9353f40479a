// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides configuration loading and validation for Marquee.

Configuration is layered with Koanf v2:
 1. Built-in defaults (defaultConfig)
 2. An optional YAML file, from CONFIG_PATH or the first of DefaultConfigPaths
 3. Environment variables from an explicit allow-list

Unlisted environment variables are ignored, so PATH or HOME never leak into
the configuration tree.

# Sections

  - server: HTTP bind address and timeouts
  - data: ratings and movies file paths, delimiters, encoding, header flags
  - recommend: neighbor count, result limit, seed thresholds, index build
  - api: movie list page sizes
  - security: CORS origins and rate limiting
  - logging: level, format, caller

# Environment Variables

Server:
  - HTTP_HOST (default: 0.0.0.0)
  - HTTP_PORT (default: 5000)
  - HTTP_TIMEOUT: per-request timeout (default: 30s)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - SHUTDOWN_TIMEOUT (default: 15s)
  - ENVIRONMENT: development, staging or production

Data:
  - RATINGS_PATH (default: ./ratings_100k.csv)
  - RATINGS_DELIMITER (default: ,)
  - RATINGS_HEADER (default: true)
  - MOVIES_PATH (default: ./movies_100k.csv)
  - MOVIES_DELIMITER (default: |)
  - MOVIES_ENCODING: latin-1, windows-1252 or utf-8 (default: latin-1)
  - MOVIES_HEADER (default: false)

Recommendation engine:
  - RECOMMEND_NEIGHBOR_COUNT (default: 11, the seed itself included)
  - RECOMMEND_RESULT_LIMIT (default: 5)
  - RECOMMEND_MIN_SEEDS (default: 3)
  - RECOMMEND_MAX_SEEDS (default: 3)
  - RECOMMEND_PRECOMPUTE (default: true)
  - RECOMMEND_WORKERS (default: 0, one per CPU)
  - RECOMMEND_RELOAD_INTERVAL (default: 0, disabled; otherwise at least 1m)
  - RECOMMEND_CACHE_SIZE (default: 1024 seed sets, 0 disables)
  - RECOMMEND_CACHE_TTL (default: 10m)

API:
  - API_DEFAULT_PAGE_SIZE (default: 50)
  - API_MAX_PAGE_SIZE (default: 2000)

Security:
  - CORS_ORIGINS: comma-separated (default: *)
  - TRUSTED_PROXIES: comma-separated
  - RATE_LIMIT_REQUESTS (default: 100)
  - RATE_LIMIT_WINDOW (default: 1m)
  - DISABLE_RATE_LIMIT (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	ds, err := dataset.LoadFiles(ctx, &cfg.Data)
*/
package config
