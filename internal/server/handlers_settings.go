package server

import (
	"encoding/json"
	"net/http"

	"github.com/MBottaz/progress-path-workouts/internal/persist"
)

// syncSettingsView is what GET returns: the token itself is write-only.
type syncSettingsView struct {
	Configured bool   `json:"configured"`
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	HasToken   bool   `json:"has_token"`
}

type syncSettingsRequest struct {
	Token string `json:"token"`
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

func (s *Server) handleGetSyncSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.adapter.Settings(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, syncSettingsView{
		Configured: settings.Configured(),
		Owner:      settings.Owner,
		Repo:       settings.Repo,
		HasToken:   settings.Token != "",
	})
}

func (s *Server) handlePutSyncSettings(w http.ResponseWriter, r *http.Request) {
	var req syncSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	err := s.adapter.SetSettings(r.Context(), persist.SyncSettings{
		Token: req.Token,
		Owner: req.Owner,
		Repo:  req.Repo,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.handleGetSyncSettings(w, r)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.adapter.Status(r.Context()))
}
