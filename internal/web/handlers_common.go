package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
	"github.com/JonMunkholm/qaeditor/internal/web/templates"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseKey reads the {key} route parameter. Malformed keys cannot name a
// live row and are reported as not found.
func parseKey(r *http.Request) (uuid.UUID, error) {
	key, err := uuid.Parse(chi.URLParam(r, "key"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", core.ErrRowNotFound, chi.URLParam(r, "key"))
	}
	return key, nil
}

// pathParam returns an unescaped route parameter.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w body: %v", errInvalidRequest, err)
	}
	return nil
}

// parseDelimiter reads a delimiter parameter; empty means comma.
func parseDelimiter(v string) (qacsv.Delimiter, error) {
	if strings.TrimSpace(v) == "" {
		return qacsv.Comma, nil
	}
	return qacsv.ParseDelimiter(v)
}

// settingsView converts settings for the client, masking the API key.
func settingsView(s core.Settings) templates.SettingsView {
	return templates.SettingsView{
		MaskedAPIKey:    s.MaskedAPIKey(),
		HasAPIKey:       s.HasAPIKey(),
		Model:           s.Model,
		SystemPrompt:    s.SystemPrompt,
		MaxTokens:       s.MaxTokens,
		Theme:           string(s.Theme),
		Intents:         s.Intents(),
		CustomIntents:   s.CustomIntents,
		SupportedModels: core.SupportedModels,
	}
}

func (s *Server) rowsParams() templates.RowsParams {
	snap := s.service.Snapshot()
	return templates.RowsParams{
		Version: snap.Version,
		Entries: snap.Entries,
		Intents: s.service.Settings().Intents(),
	}
}
