// Package server exposes the gateway's HTTP surface.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"macgate/internal/digest"
	"macgate/internal/normalize"
	"macgate/internal/registry"
	"macgate/internal/runner"
)

const apiKeyHeader = "X-API-Key"

type Server struct {
	APIKey   string
	Registry *registry.Registry
	Runner   *runner.Runner
	// Digest is nil when no email digest report is configured.
	Digest *digest.Aggregator
	Log    *logrus.Entry
}

type runRequest struct {
	Params map[string]any `json:"params"`
}

type runResponse struct {
	ExitCode   int    `json:"exit_code"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	Parsed     any    `json:"parsed"`
	DurationMS int64  `json:"duration_ms"`
	Status     string `json:"status"`
}

// Routes builds the router. Health is open; everything else sits behind the
// shared-secret check so no action can be spawned unauthenticated.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/health", s.handleHealth)

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAPIKey)
		pr.Post("/scripts/{name}/run", s.handleRunScript)
		pr.Post("/reports/email-digest", s.handleEmailDigest)
	})

	return r
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.APIKey)) != 1 {
			s.Log.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			}).Warn("Rejected request with invalid api key")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var reports []string
	if s.Digest != nil {
		reports = append(reports, "email_digest")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"scripts": s.Registry.List(),
		"reports": reports,
	})
}

func (s *Server) handleRunScript(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	act, err := s.Registry.Lookup(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var req runRequest
	// An empty body means no parameters; anything else must be well-formed.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	res, err := s.Runner.Run(r.Context(), act, req.Params)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	normalize.Output(&res)

	writeJSON(w, http.StatusOK, runResponse{
		ExitCode:   res.ExitCode,
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
		Parsed:     res.Parsed,
		DurationMS: res.Duration.Milliseconds(),
		Status:     string(res.Status),
	})
}

func (s *Server) handleEmailDigest(w http.ResponseWriter, r *http.Request) {
	if s.Digest == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "email digest report is not configured"})
		return
	}
	writeJSON(w, http.StatusOK, s.Digest.Build(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
