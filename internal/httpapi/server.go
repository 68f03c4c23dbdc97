// Package httpapi exposes the Race Orchestration Core over HTTP: two SSE
// endpoints that accept a race or Wordle submission and stream back the
// §4.7 event sequence.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrWong99/wordrace/internal/config"
	"github.com/MrWong99/wordrace/internal/observe"
)

// eventBufferSize bounds how many events the Hub may queue
// before a slow or departed client causes Publish to block the engine.
const eventBufferSize = 256

// Server holds the dependencies the stream handlers need: the model
// registry, the race knobs from config, and the curated Wordle wordlist.
type Server struct {
	registry *config.Registry
	race     config.RaceConfig
	wordlist []string
}

// New constructs a Server from a loaded Config.
func New(cfg *config.Config) *Server {
	return &Server{
		registry: config.NewRegistry(cfg.Models),
		race:     cfg.Race,
		wordlist: cfg.Wordlist.Words,
	}
}

// Registry exposes the server's model registry so cmd/wordrace can wire a
// breaker-state health check alongside the race routes.
func (s *Server) Registry() *config.Registry {
	return s.registry
}

// Routes registers the server's handlers on mux.
func (s *Server) Routes(mux *http.ServeMux, metrics *observe.Metrics) {
	mux.Handle("POST /race/stream", observe.Middleware(metrics)(http.HandlerFunc(s.handleRaceStream)))
	mux.Handle("POST /wordle/stream", observe.Middleware(metrics)(http.HandlerFunc(s.handleWordleStream)))
}

func newID() string {
	return uuid.NewString()
}

func logRequest(r *http.Request, raceID string, modelCount int) {
	slog.Info("race submission accepted", "race_id", raceID, "path", r.URL.Path, "models", modelCount)
}
