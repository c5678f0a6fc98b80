package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/models"
	"github.com/MBottaz/progress-path-workouts/internal/stats"
	"github.com/MBottaz/progress-path-workouts/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListProgressions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Progressions())
}

func (s *Server) handleGetProgression(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Progression(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddProgression(w http.ResponseWriter, r *http.Request) {
	var p models.Progression
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	created, err := s.store.AddProgression(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateProgressionRequest mirrors models.Progression with an optional level,
// so an update that omits currentLevel keeps the stored one instead of being
// read as an explicit reset to 0.
type updateProgressionRequest struct {
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Exercises    []models.Exercise `json:"exercises"`
	CurrentLevel *int              `json:"currentLevel"`
}

func (s *Server) handleUpdateProgression(w http.ResponseWriter, r *http.Request) {
	var req updateProgressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p := models.Progression{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		Category:     req.Category,
		Exercises:    req.Exercises,
		CurrentLevel: -1, // out of range, the store preserves the stored level
	}
	if req.CurrentLevel != nil {
		p.CurrentLevel = *req.CurrentLevel
	}

	if err := s.store.UpdateProgression(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.store.Progression(p.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProgression(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProgression(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeLevelRequest struct {
	Level int `json:"level"`
}

func (s *Server) handleChangeLevel(w http.ResponseWriter, r *http.Request) {
	var req changeLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.ChangeLevel(r.Context(), id, req.Level); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.store.Progression(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleResetProgression(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.ResetProgression(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	p, err := s.store.Progression(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type logWorkoutRequest struct {
	ProgressionID string               `json:"progressionId"`
	ExerciseID    string               `json:"exerciseId"`
	Sets          []store.SetPerformed `json:"sets"`
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var req logWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.store.LogWorkout(r.Context(), req.ProgressionID, req.ExerciseID, req.Sets)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	writeJSON(w, http.StatusOK, s.store.RecentEntries(limit))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.OverviewOf(s.store.Data(), time.Now()))
}

func (s *Server) handleProgressionStats(w http.ResponseWriter, r *http.Request) {
	st, err := stats.ForProgression(s.store.Data(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var nfe *models.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.As(err, &nfe):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": nfe.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
