// Package events delivers committed dataset changes to listeners.
//
// The Hub pushes each event to connected browsers over WebSocket so other
// tabs can refresh. The NATS publisher mirrors the same events onto a subject
// for external consumers. Fanout combines sinks behind core.EventSink.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// writeTimeout bounds a single write to a slow client.
const writeTimeout = 5 * time.Second

type conn struct {
	ws     *websocket.Conn
	cancel context.CancelFunc
}

// Hub manages all active WebSocket connections and broadcasts events.
type Hub struct {
	mu      sync.RWMutex
	conns   map[*conn]struct{}
	origins []string
}

var _ core.EventSink = (*Hub)(nil)

// NewHub creates an empty hub. Upgrades are accepted from the page's own
// origin and from hosts matching originPatterns.
func NewHub(originPatterns ...string) *Hub {
	return &Hub{conns: make(map[*conn]struct{}), origins: originPatterns}
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away. Clients only listen; anything they send is discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err, "origin", r.Header.Get("Origin"))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &conn{ws: ws, cancel: cancel}
	h.add(c)
	defer func() {
		h.remove(c)
		_ = ws.Close(websocket.StatusNormalClosure, "")
	}()

	slog.Debug("websocket connected", "remote", r.RemoteAddr)
	<-ws.CloseRead(ctx).Done()
}

// Publish sends ev to every connected client. Write failures drop the
// client and are not reported.
func (h *Hub) Publish(ctx context.Context, ev core.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	h.Broadcast(ctx, data)
	return nil
}

// Broadcast writes a text frame to all connected clients.
func (h *Hub) Broadcast(ctx context.Context, data []byte) {
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := c.ws.Write(wctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			slog.Debug("websocket write failed", "error", err)
			h.remove(c)
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) add(c *conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		delete(h.conns, c)
		slog.Debug("websocket disconnected")
	}
}
