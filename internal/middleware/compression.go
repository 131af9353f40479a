// Marquee - Seed-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipWriterPool pools gzip writers to reduce allocations
var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter defers the response header until the first body write
// so empty responses are never marked as gzip encoded.
type gzipResponseWriter struct {
	http.ResponseWriter
	gz       *gzip.Writer
	status   int
	started  bool
	compress bool
	head     bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.started {
		w.start(true)
	}
	if !w.compress {
		return w.ResponseWriter.Write(b)
	}
	if w.gz == nil {
		w.gz = gzipWriterPool.Get().(*gzip.Writer)
		w.gz.Reset(w.ResponseWriter)
	}
	return w.gz.Write(b)
}

func (w *gzipResponseWriter) start(body bool) {
	w.started = true
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	h := w.Header()
	if body && !w.head && status != http.StatusNoContent && status != http.StatusNotModified &&
		h.Get("Content-Encoding") == "" {
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
		w.compress = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// finish flushes a pending header and closes the gzip stream.
func (w *gzipResponseWriter) finish() {
	if !w.started {
		if w.status != 0 {
			w.start(false)
		}
		return
	}
	if w.gz != nil {
		_ = w.gz.Close() // best-effort, the response is already on the wire
		gzipWriterPool.Put(w.gz)
		w.gz = nil
	}
}

// Compression gzips response bodies for clients sending Accept-Encoding: gzip.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzw := &gzipResponseWriter{ResponseWriter: w, head: r.Method == http.MethodHead}
		defer gzw.finish()
		next.ServeHTTP(gzw, r)
	})
}
