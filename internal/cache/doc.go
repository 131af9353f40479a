// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides a thread-safe, size-bounded LRU cache with TTL support.

The API keeps recent seed-based answers here so that repeated requests for
the same seed set skip the neighbor aggregation.

# Overview

  - O(1) Get, Add and Remove using a hashmap plus a doubly-linked list
  - Least recently used entry evicted once capacity is reached
  - Lazy TTL expiration on Get
  - Hit and miss counters for metrics

# Usage Example

	c := cache.NewLRU[string, []int](1024, 10*time.Minute)
	c.Add("1,2,3", []int{4, 5})
	if ids, ok := c.Get("1,2,3"); ok {
	    // use ids
	}

Call Purge when the cached data is replaced wholesale, for example after
an engine reload.
*/
package cache
