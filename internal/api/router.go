package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// Server holds shared state for all API handlers.
type Server struct {
	Store  *models.TeamStore
	Events *EventHub
	Logger *slog.Logger
}

// NewServer creates a Server over store.
func NewServer(store *models.TeamStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Store:  store,
		Events: NewEventHub(),
		Logger: logger,
	}
}

// NewRouter builds the chi router implementing the team resource API.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	// Catalog
	r.Get("/pages.json", s.ListPages)

	// Teams
	r.Get("/v1-get-team/{teamId}", s.GetTeam)
	r.Get("/v1-get-team-resource-config/{teamId}", s.GetTeamResourceConfig)
	r.Put("/v1-update-team-resource-config/{teamId}", s.UpdateTeamResourceConfig)
	r.Put("/v1-delete-team-resource-config/{teamId}", s.DeleteTeamResourceConfig)

	// Custom roadmaps
	r.Post("/v1-create-roadmap", s.CreateRoadmap)

	// WebSocket event stream
	r.Get("/v1-team-events/{teamId}", s.StreamTeamEvents)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
