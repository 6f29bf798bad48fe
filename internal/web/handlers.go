package web

import (
	"net/http"

	"github.com/JonMunkholm/qaeditor/internal/web/templates"
)

// handleEditor renders the editor page.
func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	params := templates.EditorParams{
		Rows:     s.rowsParams(),
		Settings: settingsView(s.service.Settings()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.EditorPage(params).Render(r.Context(), w); err != nil {
		fail(w, r, err)
	}
}

// handleRowsPartial renders just the rows table, for refreshes after edits
// and change-feed events.
func (s *Server) handleRowsPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.RowsTable(s.rowsParams()).Render(r.Context(), w); err != nil {
		fail(w, r, err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports the dataset version and generation capacity.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"version":     snap.Version,
		"rows":        len(snap.Entries),
		"generations": s.service.GenerationStatus(),
	})
}
