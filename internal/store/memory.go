// Package store provides the in-memory core.Store used when no database
// is configured. State lives for the lifetime of the process.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// Memory is a goroutine-safe core.Store backed by slices.
type Memory struct {
	mu       sync.RWMutex
	rows     []core.Entry
	settings *core.Settings
	audit    []core.AuditEntry
}

var _ core.Store = (*Memory)(nil)

// NewMemory returns an empty store. core.NewService seeds it on first use.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadRows(_ context.Context) ([]core.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rows), nil
}

func (m *Memory) ReplaceRows(_ context.Context, entries []core.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = slices.Clone(entries)
	return nil
}

func (m *Memory) SaveRow(_ context.Context, e core.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(e.Key); i >= 0 {
		m.rows[i] = e
		return nil
	}
	m.rows = append(m.rows, e)
	return nil
}

// DeleteRow is a no-op for unknown keys.
func (m *Memory) DeleteRow(_ context.Context, key uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(key); i >= 0 {
		m.rows = slices.Delete(m.rows, i, i+1)
	}
	return nil
}

func (m *Memory) LoadSettings(_ context.Context) (core.Settings, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return core.Settings{}, false, nil
	}
	s := *m.settings
	s.CustomIntents = slices.Clone(s.CustomIntents)
	return s, true, nil
}

func (m *Memory) SaveSettings(_ context.Context, s core.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CustomIntents = slices.Clone(s.CustomIntents)
	m.settings = &s
	return nil
}

func (m *Memory) AppendAudit(_ context.Context, e core.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, e)
	return nil
}

// ListAudit returns matching entries newest first.
func (m *Memory) ListAudit(_ context.Context, f core.AuditFilter) ([]core.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]core.AuditEntry, 0)
	for i := len(m.audit) - 1; i >= 0; i-- {
		e := m.audit[i]
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.RowKey != "" && e.RowKey != f.RowKey {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) PruneAudit(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.audit[:0]
	for _, e := range m.audit {
		if !e.CreatedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	n := int64(len(m.audit) - len(kept))
	m.audit = kept
	return n, nil
}

func (m *Memory) indexOf(key uuid.UUID) int {
	return slices.IndexFunc(m.rows, func(e core.Entry) bool { return e.Key == key })
}
