// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quibble Contributors

package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/quibble/quibble/internal/auth"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with request logging and Prometheus metrics.
// The route label is the registered pattern, never the raw path, so
// cardinality stays bounded.
func (a *API) instrument(pattern string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(start)
		if a.metrics != nil {
			a.metrics.HTTPRequestsTotal.
				WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
			a.metrics.HTTPRequestDuration.
				WithLabelValues(r.Method, pattern).Observe(elapsed.Seconds())
		}
		a.logger.Debug("request handled",
			"method", r.Method,
			"route", pattern,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// requireAuth resolves the access-token cookie into an account and attaches
// it to the request context. Requests without a valid session get 401.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.AccessTokenCookie)
		if err != nil {
			a.writeError(w, auth.ErrUnauthenticated)
			return
		}

		account, err := a.sessions.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			a.writeError(w, err)
			return
		}

		next(w, r.WithContext(withAccount(r.Context(), account)))
	}
}
