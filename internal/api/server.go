// Package api exposes the HTTP interface for the webscraper service.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/primerlabs/webscraper/internal/config"
	"github.com/primerlabs/webscraper/internal/metrics"
	"github.com/primerlabs/webscraper/internal/scraper"
)

// Server wires HTTP handlers to the retry orchestrator.
type Server struct {
	router chi.Router
	orch   *scraper.Orchestrator
	cfg    config.Config
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes. The health
// and metrics endpoints are open; /crawl sits behind the bearer gate.
func NewServer(orch *scraper.Orchestrator, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		orch:   orch,
		cfg:    cfg,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(metrics.Middleware)

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(bearerAuthMiddleware(cfg.Auth.Token))
		r.Post("/crawl", s.crawl)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Service is running!"})
}

// crawl decodes the request, normalizes its configuration sections and
// hands off to the orchestrator. The orchestrator's payload is always
// served with 200; only transport, auth and validation problems use
// error statuses.
func (s *Server) crawl(w http.ResponseWriter, r *http.Request) {
	var req scraper.CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeDetail(w, http.StatusBadRequest, "url is required")
		return
	}

	browserCfg, runCfg := scraper.Normalize(req)
	payload := s.orch.Crawl(r.Context(), req.URL, browserCfg, runCfg)
	writeJSON(w, http.StatusOK, payload)
}

// bearerAuthMiddleware enforces `Authorization: Bearer <token>`. The
// scheme word is matched case-insensitively; the token itself is
// compared in constant time.
func bearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, credentials, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") ||
				subtle.ConstantTimeCompare([]byte(credentials), []byte(token)) != 1 {
				writeDetail(w, http.StatusUnauthorized, "Invalid or missing token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // headers are already written; nothing left to do
	json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
