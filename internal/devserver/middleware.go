// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// loggingMiddleware logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Printf("HTTP_REQUEST | method=%s path=%s status=%d bytes=%d duration=%.3fs request_id=%s",
			r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start).Seconds(), middleware.GetReqID(r.Context()))
	})
}

// rateLimit rejects requests beyond the configured token bucket with 429.
// Preflight requests are never limited.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && r.Method != http.MethodOptions && !s.limiter.Allow() {
			log.Printf("RATE_LIMIT_EXCEEDED | path=%s limit=%g burst=%d", r.URL.Path, s.opts.RateLimit, s.opts.Burst)
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"detail": "Too Many Requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
