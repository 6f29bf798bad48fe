package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/qaeditor/internal/logging"
)

// handleGenerate fills a row's question or answer with generated text.
// The row is addressed by key, so edits or deletions of other rows while
// the provider is working do not redirect the result.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	key, err := parseKey(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	field := chi.URLParam(r, "field")
	logger := logging.WithFields(r.Context(), "row_key", key, "field", field)

	switch field {
	case "question":
		entry, err := s.service.GenerateQuestion(r.Context(), key)
		if err != nil {
			fail(w, r, err)
			return
		}
		logger.Info("question generated")
		writeJSON(w, http.StatusOK, entry)
	case "answer":
		entry, err := s.service.GenerateAnswer(r.Context(), key)
		if err != nil {
			fail(w, r, err)
			return
		}
		logger.Info("answer generated")
		writeJSON(w, http.StatusOK, entry)
	default:
		http.NotFound(w, r)
	}
}
