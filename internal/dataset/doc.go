// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package dataset loads the rating history and movie list the recommendation
// engine is built from.
//
// # File Formats
//
// Ratings are a delimited text file (comma by default) with a header row.
// Only the first three columns are read, in order: rater id, movie id,
// rating. Any further columns (timestamps in MovieLens) are ignored.
//
//	userId,movieId,rating,timestamp
//	196,242,3,881250949
//
// Movies use the MovieLens u.item layout: pipe-delimited, no header,
// ISO-8859-1 encoded, with id, title, release date, video release date, IMDb
// URL and nineteen genre flags. Only id and title are kept.
//
//	1|Toy Story (1995)|01-Jan-1995||http://us.imdb.com/...|0|0|0|1|1|...
//
// # Malformed Rows
//
// Rows that cannot be parsed are skipped and counted in the LoadReport rather
// than failing the load. A movie row whose id is not numeric (for example a
// stray header line) is dropped the same way. Only I/O errors, an unknown
// encoding or context cancellation abort a load.
//
// # Usage
//
//	ds, err := dataset.LoadFiles(ctx, &cfg.Data)
//	if err != nil {
//	    return err
//	}
//	engine, err := recommend.BuildEngine(ctx, ds.Ratings, ds.Movies, engineCfg, logger)
package dataset
