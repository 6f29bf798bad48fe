package web

import (
	"net/http"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// handleAuditLog lists recent audit entries, newest first.
// Query: limit, action, rowKey.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.AuditFilter{
		Action: core.AuditAction(q.Get("action")),
		RowKey: q.Get("rowKey"),
		Limit:  parseIntParam(r, "limit", core.DefaultAuditLimit),
	}

	entries, err := s.service.GetAuditLog(r.Context(), filter)
	if err != nil {
		fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
