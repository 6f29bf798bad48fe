package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAI(Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestOpenAI_GenerateQuestion(t *testing.T) {
	var got chatRequest
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  How do I reset my password?\n"}},
			},
		})
	})

	text, err := p.GenerateQuestion(context.Background(), Request{
		APIKey:       "sk-test",
		Model:        "gpt-3.5-turbo",
		SystemPrompt: "Be brief.",
		MaxTokens:    150,
		Intent:       "Support",
	})
	require.NoError(t, err)
	assert.Equal(t, "How do I reset my password?", text)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.Equal(t, 150, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "Be brief. Generate a clear, concise question that fits the intent: Support. The question should be practical and commonly asked.", got.Messages[0].Content)
	assert.Equal(t, "Generate a question with the intent: Support", got.Messages[1].Content)
}

func TestOpenAI_GenerateAnswer(t *testing.T) {
	var got chatRequest
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Click Import CSV."}},
			},
		})
	})

	text, err := p.GenerateAnswer(context.Background(), Request{
		APIKey:       "sk-test",
		SystemPrompt: "Be brief.",
		Intent:       "Information",
		Question:     "How do I import?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Click Import CSV.", text)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "Be brief. Provide a clear, accurate, and helpful answer to the question. The intent is: Information.", got.Messages[0].Content)
	assert.Equal(t, "Question: How do I import?\nIntent: Information\n\nProvide a helpful answer:", got.Messages[1].Content)
}

func TestOpenAI_EmptyChoiceFallsBack(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"choices": []any{}})
	})

	q, err := p.GenerateQuestion(context.Background(), Request{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, FallbackQuestion, q)

	a, err := p.GenerateAnswer(context.Background(), Request{APIKey: "k", Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, FallbackAnswer, a)
}

func TestOpenAI_MissingCredential(t *testing.T) {
	var calls atomic.Int32
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := p.GenerateQuestion(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrMissingCredential)
	_, err = p.ListModels(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Zero(t, calls.Load(), "no request should reach the server")
}

func TestOpenAI_RemoteError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantSubstr string
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       map[string]any{"error": map[string]string{"message": "Incorrect API key provided"}},
			wantSubstr: "rejected credential",
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       map[string]any{"error": map[string]string{"message": "boom"}},
			wantSubstr: "returned status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := p.GenerateQuestion(context.Background(), Request{APIKey: "k"})
			require.Error(t, err)

			var re *RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.status, re.Status)
			assert.Contains(t, err.Error(), tt.wantSubstr)
			assert.True(t, IsRemoteError(err))
		})
	}
}

func TestOpenAI_ListModels(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]string{{"id": "gpt-4"}, {"id": "gpt-3.5-turbo"}},
		})
	})

	models, err := p.ListModels(context.Background(), "sk-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4", "gpt-3.5-turbo"}, models)
}

func TestOpenAI_ContextCancelled(t *testing.T) {
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GenerateQuestion(ctx, Request{APIKey: "k"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
