package web

import (
	"net/http"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsView(s.service.Settings()))
}

// handleUpdateSettings applies a partial settings update. The response
// never contains the unmasked API key.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch core.SettingsPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, r, err)
		return
	}

	settings, err := s.service.UpdateSettings(r.Context(), patch)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsView(settings))
}

func (s *Server) handleAddIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Intent string `json:"intent"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	settings, err := s.service.AddIntent(r.Context(), req.Intent)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, settingsView(settings))
}

func (s *Server) handleRemoveIntent(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.RemoveIntent(r.Context(), pathParam(r, "intent"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsView(settings))
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.ToggleTheme(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsView(settings))
}

// handleTestCredential checks an API key by listing models. An empty key
// tests the stored one.
func (s *Server) handleTestCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"apiKey"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}

	models, err := s.service.TestCredential(r.Context(), req.APIKey)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "models": models})
}
