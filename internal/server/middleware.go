package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/quorumhq/quorum/internal/logging"
)

// requestIDHeader carries the request ID back to the caller and into logs.
const requestIDHeader = "X-Request-Id"

// withRequestID assigns every request a UUID, echoes it in the response
// header, and logs request completion with timing.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		r.Header.Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.WithRequest(id).Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// requestLogger returns a child logger carrying the request's ID.
func (s *Server) requestLogger(r *http.Request) *logging.Logger {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return s.logger.WithRequest(id)
	}
	return s.logger
}
