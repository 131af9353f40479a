// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services provides suture.Service wrappers for Marquee components.

HTTPServerService translates http.Server's ListenAndServe/Shutdown pair
into suture's context-aware Serve, draining connections on cancellation
and force-closing them when draining times out.

EngineService rebuilds the recommendation engine on a timer. The rebuild
itself is supplied by the caller as an EngineReloader (or ReloadFunc),
which keeps this package free of data loading and HTTP concerns.
*/
package services
