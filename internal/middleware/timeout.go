// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds each request to d. A handler still running at the deadline
// is answered with a JSON 503; its later writes fail with http.ErrHandlerTimeout.
//
// The handler runs on its own goroutine, so Timeout must wrap any panic
// recovery middleware.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			dw := &deadlineWriter{ResponseWriter: w}
			finished := make(chan struct{})
			go func() {
				defer close(finished)
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case <-finished:
			case <-ctx.Done():
				dw.expire()
			}
		})
	}
}

// deadlineWriter serializes the handler's writes with the timeout response.
type deadlineWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	started bool
	expired bool
}

// expire marks the request as timed out and sends the 503 unless the handler
// already started its own response.
func (dw *deadlineWriter) expire() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.expired = true
	if dw.started {
		return
	}
	dw.started = true
	writeJSONError(dw.ResponseWriter, http.StatusServiceUnavailable, "Request timeout")
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.start(code)
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.expired {
		return 0, http.ErrHandlerTimeout
	}
	dw.start(http.StatusOK)
	return dw.ResponseWriter.Write(b)
}

// start sends the status line once. Callers hold mu.
func (dw *deadlineWriter) start(code int) {
	if dw.started {
		return
	}
	dw.started = true
	dw.ResponseWriter.WriteHeader(code)
}
