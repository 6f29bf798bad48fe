package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

func TestHub_PublishNoConnections(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.NoError(t, hub.Publish(context.Background(), core.Event{Type: core.EventRowAdded}))
}

func TestHub_RemoveNonexistent(t *testing.T) {
	hub := NewHub()
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub.remove(&conn{cancel: cancel})
}

func TestHub_DeliversEvents(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer client.Close(websocket.StatusNormalClosure, "")

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, hub.Publish(ctx, core.Event{Type: core.EventRowUpdated, Version: 7, Key: "k1", At: at}))

	typ, data, err := client.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)

	var got core.Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, core.EventRowUpdated, got.Type)
	assert.Equal(t, uint64(7), got.Version)
	assert.Equal(t, "k1", got.Key)
	assert.True(t, at.Equal(got.At))
}

func TestHub_ClientDisconnectRemovesConnection(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Close(websocket.StatusNormalClosure, "bye"))
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_OriginCheck(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		origin   string
		wantOK   bool
	}{
		{name: "no origin header", origin: "", wantOK: true},
		{name: "cross origin rejected", origin: "http://evil.example", wantOK: false},
		{name: "allowed pattern", patterns: []string{"*.corp.example"}, origin: "https://editor.corp.example", wantOK: true},
		{name: "pattern does not widen to other hosts", patterns: []string{"*.corp.example"}, origin: "https://corp.example.evil", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub(tt.patterns...)
			srv := httptest.NewServer(hub)
			t.Cleanup(srv.Close)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			client, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), &websocket.DialOptions{HTTPHeader: header})
			if !tt.wantOK {
				require.Error(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, 0, hub.ConnectionCount())
				return
			}
			require.NoError(t, err)
			defer client.Close(websocket.StatusNormalClosure, "")
			require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)
		})
	}
}

func TestHub_SameOriginAccepted(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	header := http.Header{"Origin": {srv.URL}}
	client, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), &websocket.DialOptions{HTTPHeader: header})
	require.NoError(t, err)
	defer client.Close(websocket.StatusNormalClosure, "")
}
