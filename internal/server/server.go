// Package server exposes the participant wizard and the admin read
// surface over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/francescabuggio/ecocart/internal/session"
	"github.com/francescabuggio/ecocart/internal/stats"
	"github.com/francescabuggio/ecocart/internal/store"
)

type Server struct {
	store     *store.Store
	agg       *stats.Aggregator
	log       *zap.Logger
	sessions  *registry
	router    chi.Router
	metrics   *metrics
	startTime time.Time
}

func New(s *store.Store, agg *stats.Aggregator, log *zap.Logger) *Server {
	srv := &Server{
		store:     s,
		agg:       agg,
		log:       log,
		sessions:  newRegistry(session.NewMachine()),
		router:    chi.NewRouter(),
		metrics:   newMetrics(),
		startTime: time.Now(),
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestLogger)
	s.router.Use(cors)

	// Participant-facing endpoints
	s.router.Group(func(r chi.Router) {
		r.Post("/api/session", s.handleStartSession)
		r.Post("/api/session/{id}/advance", s.handleAdvance)
		r.Post("/api/session/{id}/click", s.handleClick)
		r.Get("/api/questions", s.handleQuestions)
	})

	// Admin read surface
	s.router.Get("/api/responses", s.handleResponses)
	s.router.Get("/api/stats", s.handleStats)

	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.handler())
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.log.Info("server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
