package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nimblehire/sift/internal/batch"
	"github.com/nimblehire/sift/internal/candidate"
	"github.com/nimblehire/sift/internal/events"
	"github.com/nimblehire/sift/internal/store"
)

// CandidateStore is the persistence surface the API depends on.
type CandidateStore interface {
	SaveCandidate(ctx context.Context, teamID uuid.UUID, fileName string, c *candidate.Candidate) (uuid.UUID, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]store.StoredCandidate, error)
}

type Server struct {
	router    *chi.Mux
	port      int
	store     CandidateStore
	scheduler *batch.Scheduler
	events    *events.Client
	logger    *slog.Logger
}

func NewServer(port int, apiToken string, db CandidateStore, scheduler *batch.Scheduler, ev *events.Client, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		store:     db,
		scheduler: scheduler,
		events:    ev,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/sift/status", s.status)
	router.With(BearerAuthMiddleware(apiToken)).Post("/api/v1/batches", s.analyzeBatch)
	router.Get("/api/v1/candidates", s.listCandidates)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"agent":  "sift",
		"status": "ready",
	})
}
