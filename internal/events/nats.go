package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// DefaultSubject is the subject prefix; the event type is appended.
const DefaultSubject = "qaeditor.dataset"

// NATSPublisher publishes events as JSON on <prefix>.<type>.
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
}

var _ core.EventSink = (*NATSPublisher)(nil)

// ConnectNATS dials url. An empty prefix selects DefaultSubject.
func ConnectNATS(url, prefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("qaeditor"))
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	slog.Info("nats connected", "url", nc.ConnectedUrlRedacted())
	return NewNATSPublisher(nc, prefix), nil
}

// NewNATSPublisher wraps an existing connection.
func NewNATSPublisher(nc *nats.Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = DefaultSubject
	}
	return &NATSPublisher{nc: nc, prefix: prefix}
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(t core.EventType) string {
	return p.prefix + "." + string(t)
}

func (p *NATSPublisher) Publish(_ context.Context, ev core.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	subject := p.Subject(ev.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
