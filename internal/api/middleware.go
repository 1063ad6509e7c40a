package api

import (
	"fmt"
	"net/http"
	"time"

	"macau-pulse/internal/logs"
)

// Logging records method, path, status, and duration into the ring
// logger, where the quality analyzer can see them.
func Logging(logger *logs.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the original writer
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			logger.Info(fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start)))
		})
	}
}

// Recovery converts handler panics into 500s. Orchestrator-level panics
// never reach here; this catches bugs in the handlers themselves.
func Recovery(logger *logs.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error(fmt.Sprintf("panic recovered in %s %s: %v", r.Method, r.URL.Path, err))
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// ResponseWriter wrapper
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
