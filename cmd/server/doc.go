// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee answers "what should I watch next?" from up to three movies a
visitor already likes. It loads a ratings file and a movies file, builds an
item-item cosine similarity engine in memory, and serves recommendations
through a JSON API and a small HTML seed picker.

# Application Architecture

Startup is sequential and fails fast:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Dataset: ratings CSV and movies file are parsed (dataset package)
 4. Engine: the rating matrix, norms and popularity ranking are built
 5. HTTP: Chi router with middleware stack
 6. Supervisor Tree: Suture v4 process supervision

The server never listens without an engine: a load or build failure exits
with a non-zero status. Once running, the tree looks like:

	RootSupervisor ("marquee")
	├── EngineSupervisor ("engine-layer")
	│   └── engine-reload (only when RECOMMEND_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

A periodic reload builds a fresh engine off to the side and publishes it
atomically. A failed reload is logged and the previous engine keeps serving.

# Configuration

Common settings:

	RATINGS_PATH=./data/ratings.csv
	MOVIES_PATH=./data/u.item
	HTTP_PORT=8080
	LOG_LEVEL=info
	RECOMMEND_RESULT_LIMIT=5

See the config package for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests within SHUTDOWN_TIMEOUT.

# Example Usage

	export RATINGS_PATH=/data/ml-latest-small/ratings.csv
	export MOVIES_PATH=/data/ml-100k/u.item
	./marquee
*/
package main
