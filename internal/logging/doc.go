// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package logging provides the zerolog-based logger shared by every Marquee
component.

# Global Logger

Init configures a package-level logger once at startup. Until then a JSON
logger at info level writes to stderr.

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Int("movies", n).Msg("Catalog loaded")

# Request Context

The HTTP layer stores a request id (and optionally a correlation id) in the
request context, then attaches a logger carrying those fields:

	ctx = logging.ContextWithRequestID(ctx, id)
	ctx = logging.ContextWithLogger(ctx, logging.CtxWith(ctx).Logger())

Downstream code can use either logging.Ctx(ctx) or zerolog.Ctx(ctx); both
return the request-scoped logger.

# slog Bridge

NewSlogLogger returns a *slog.Logger that writes through zerolog, used by the
sutureslog event hook in internal/supervisor.
*/
package logging
