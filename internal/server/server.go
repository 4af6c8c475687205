// Package server exposes the research pipeline over HTTP.
//
// The boundary is deliberately thin: it validates input, runs the pipeline,
// and serializes the result. Per-stage failures are already converted into
// ordinary data by the pipeline, so the only error responses are 400 for
// invalid input and 500 for an unexpected pipeline fault.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/quorumhq/quorum/internal/errors"
	"github.com/quorumhq/quorum/internal/logging"
	"github.com/quorumhq/quorum/internal/research"
)

// Server serves the research API.
type Server struct {
	pipeline   *research.Pipeline
	logger     *logging.Logger
	httpServer *http.Server
}

// Config holds required dependencies for creating a Server.
type Config struct {
	Addr     string             // Listen address
	Pipeline *research.Pipeline // The research pipeline to expose
	Logger   *logging.Logger    // Optional; defaults to a no-op logger
}

// New creates a Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		return nil, errors.New("server: Addr is required")
	}
	if cfg.Pipeline == nil {
		return nil, errors.New("server: Pipeline is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger()
	}

	s := &Server{
		pipeline: cfg.Pipeline,
		logger:   cfg.Logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/research", s.handleResearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.withRequestID(mux)
}

// ListenAndServe starts serving. It blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// researchRequest is the request body for POST /api/research.
type researchRequest struct {
	Question string `json:"question"`
}

// errorResponse is the body of every non-200 response.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		verr := errors.NewValidationError("request body must be JSON").WithCause(err)
		logger.Warn("invalid request body", "error", err.Error())
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		verr := errors.NewValidationError("question must be a non-empty string").WithField("question")
		logger.Warn("invalid question")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error()})
		return
	}

	result, err := s.pipeline.Run(r.Context(), question)
	if err != nil {
		// The pipeline absorbs every expected failure; whatever reaches
		// here is internal and not safe to surface.
		logger.Error("pipeline fault", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
