package web

import (
	"net/http"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Snapshot())
}

// handleAddRow appends an empty row with the next free id.
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	entry, err := s.service.AddRow(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleUpdateRow applies a partial update to one row. Only the fields
// present in the body change.
func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	key, err := parseKey(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	var patch core.RowPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		fail(w, r, err)
		return
	}

	entry, err := s.service.UpdateRow(r.Context(), key, patch)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	key, err := parseKey(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := s.service.DeleteRow(r.Context(), key); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
