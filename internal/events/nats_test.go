package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

func TestNATSPublisher_Subject(t *testing.T) {
	p := NewNATSPublisher(nil, "")
	assert.Equal(t, "qaeditor.dataset.row_added", p.Subject(core.EventRowAdded))

	p = NewNATSPublisher(nil, "acme.faq")
	assert.Equal(t, "acme.faq.dataset_imported", p.Subject(core.EventDatasetImported))
}

// Requires a running server; skipped unless NATS_URL is set.
func TestNATSPublisher_Publish(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("requires NATS_URL")
	}

	pub, err := ConnectNATS(url, "qaeditor.test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	t.Cleanup(sub.Close)

	s, err := sub.SubscribeSync("qaeditor.test.>")
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	require.NoError(t, pub.Publish(context.Background(), core.Event{Type: core.EventSettingsUpdated, Version: 3}))

	msg, err := s.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "qaeditor.test.settings_updated", msg.Subject)

	var ev core.Event
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	assert.Equal(t, uint64(3), ev.Version)
}
