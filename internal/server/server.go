package server

import (
	"log/slog"
	"net/http"

	"github.com/MBottaz/progress-path-workouts/internal/persist"
	"github.com/MBottaz/progress-path-workouts/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   *store.Store
	adapter *persist.Adapter
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(st *store.Store, adapter *persist.Adapter, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:   st,
		adapter: adapter,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints
	s.router.Get("/api/v1/progressions", s.handleListProgressions)
	s.router.Get("/api/v1/progressions/{id}", s.handleGetProgression)
	s.router.Get("/api/v1/workouts", s.handleRecentWorkouts)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/stats/progressions/{id}", s.handleProgressionStats)
	s.router.Get("/api/v1/sync/status", s.handleSyncStatus)
	s.router.Get("/api/v1/settings/sync", s.handleGetSyncSettings)

	// Mutations (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/progressions", s.handleAddProgression)
		r.Put("/api/v1/progressions/{id}", s.handleUpdateProgression)
		r.Delete("/api/v1/progressions/{id}", s.handleDeleteProgression)
		r.Post("/api/v1/progressions/{id}/level", s.handleChangeLevel)
		r.Post("/api/v1/progressions/{id}/reset", s.handleResetProgression)
		r.Post("/api/v1/workouts", s.handleLogWorkout)
		r.Put("/api/v1/settings/sync", s.handlePutSyncSettings)
	})
}
