package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/tokest/internal/config"
	"github.com/dgallion1/tokest/internal/pipeline"
	"github.com/dgallion1/tokest/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for tokest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *stats.Window
	cache        *estimateCache
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. A nil window gets a
// fresh one sized by cfg.StatsWindow.
func NewServer(orch *pipeline.Orchestrator, window *stats.Window, log *slog.Logger, cfg config.Config) (*Server, error) {
	if window == nil {
		window = stats.NewWindow(cfg.StatsWindow)
	}
	cache, err := newEstimateCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{
		orchestrator: orch,
		stats:        window,
		cache:        cache,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/estimate", s.handleEstimate)
		r.Post("/api/estimate/words", s.handleWords)
		r.Post("/api/estimate/document", s.handleDocument)
		r.Post("/api/estimate/batch", s.handleBatch)
		r.Get("/api/estimate/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/counters", s.handleCounters)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
