// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under suture v4.

# Overview

	RootSupervisor ("marquee")
	├── EngineSupervisor ("engine-layer")
	│   └── EngineService (if RECOMMEND_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The initial engine build happens before the tree starts, so a server that
cannot load its data never begins listening. The engine layer only holds
the optional reload loop; a failing reload restarts there and the API
keeps serving the last good engine.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLoggerWithComponent("supervisor"),
	    supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

# Logging

Supervisor events (service start, failure, backoff, restart) go through
sutureslog, backed by the zerolog slog adapter in internal/logging.

# Defaults

	FailureThreshold: 5
	FailureDecay:     30s
	FailureBackoff:   15s
	ShutdownTimeout:  10s
*/
package supervisor
