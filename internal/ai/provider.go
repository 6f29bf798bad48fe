// Package ai generates question and answer text through a language-model API.
//
// Providers are registered by name (see registry.go) and selected from
// configuration. Every provider turns a Request into a single trimmed string;
// callers decide what to do with it.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingCredential is returned before any network call when a provider
// that needs a key receives none.
var ErrMissingCredential = errors.New("OpenAI API key not configured")

// Fallback texts used when the remote call succeeds but returns no content.
const (
	FallbackQuestion = "Generated question not available"
	FallbackAnswer   = "Generated answer not available"
)

// Request carries the per-call settings and the row context.
type Request struct {
	APIKey       string
	Model        string
	SystemPrompt string
	MaxTokens    int

	Intent   string
	Question string
}

// Provider is implemented by every text generator.
type Provider interface {
	Name() string
	GenerateQuestion(ctx context.Context, req Request) (string, error)
	GenerateAnswer(ctx context.Context, req Request) (string, error)

	// ListModels doubles as a credential check.
	ListModels(ctx context.Context, apiKey string) ([]string, error)
}

// Forgetter is implemented by providers that keep per-credential state.
type Forgetter interface {
	Forget(apiKey string)
}

// RemoteError is a non-2xx response from the provider.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return fmt.Sprintf("ai provider rejected credential (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ai provider returned status %d: %s", e.Status, e.Message)
}

// IsRemoteError reports whether err is or wraps a *RemoteError.
func IsRemoteError(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
