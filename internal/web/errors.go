package web

// errors.go provides unified error response handling for the web layer.
//
// Every failing handler calls respondError with the status from statusFor.
// The technical error is logged with the request ID; the client receives the
// catalog message from core.MapError, as JSON for API calls and as an alert
// fragment for page requests.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/qaeditor/internal/ai"
	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/logging"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
	"github.com/JonMunkholm/qaeditor/internal/web/templates"
)

var (
	errNoFile         = errors.New("no file provided")
	errInvalidRequest = errors.New("invalid request")
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for an error returned by the service or
// the import boundary.
func statusFor(err error) int {
	var (
		formatErr *qacsv.FormatError
		remoteErr *ai.RemoteError
		tooLarge  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, qacsv.ErrFileTooLarge), errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrInvalidFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, core.ErrNoData):
		return http.StatusConflict
	case errors.Is(err, core.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrTooManyGenerations), errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, qacsv.ErrInvalidDelimiter),
		errors.Is(err, qacsv.ErrUnsupportedCharset),
		errors.Is(err, core.ErrQuestionRequired),
		errors.Is(err, core.ErrInvalidIntent),
		errors.Is(err, core.ErrInvalidSettings),
		errors.Is(err, ai.ErrMissingCredential),
		errors.Is(err, errNoFile),
		errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &remoteErr):
		if remoteErr.Status == http.StatusUnauthorized || remoteErr.Status == http.StatusForbidden {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// fail responds with the status statusFor assigns to err.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, err, statusFor(err))
}

// respondError logs the technical error server-side and returns a
// user-friendly response in the format the client expects.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userErr := core.NewUserError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userErr.User.Code,
		"cataloged", core.IsUserFacing(err),
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request rejected", attrs...)
	}

	if wantsJSON(r) {
		respondErrorJSON(w, userErr.User, statusCode)
		return
	}
	renderErrorPartial(w, r, userErr, statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// renderErrorPartial renders the alert fragment used by the page. The
// technical error never reaches the markup.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, userErr *core.UserError, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = templates.ErrorAlert(userErr.Error(), userErr.User.Action, userErr.User.Code).Render(r.Context(), w)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// writeJSON encodes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
