package core

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

// Entry is a row together with its stable identity.
type Entry struct {
	Key uuid.UUID `json:"key"`
	qacsv.Row
}

// Snapshot is a consistent copy of the dataset at one version.
type Snapshot struct {
	Version uint64  `json:"version"`
	Entries []Entry `json:"rows"`
}

// Rows returns the snapshot's rows in order.
func (s Snapshot) Rows() qacsv.Rows {
	rows := make(qacsv.Rows, len(s.Entries))
	for i, e := range s.Entries {
		rows[i] = e.Row
	}
	return rows
}

// RowPatch carries the fields of an update. Nil fields are left alone.
type RowPatch struct {
	ID       *int    `json:"id,omitempty"`
	Question *string `json:"question,omitempty"`
	Answer   *string `json:"answer,omitempty"`
	Intent   *string `json:"intent,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p RowPatch) Empty() bool {
	return p.ID == nil && p.Question == nil && p.Answer == nil && p.Intent == nil
}

// Apply returns row with the patch applied.
func (p RowPatch) Apply(row qacsv.Row) qacsv.Row {
	if p.ID != nil {
		row.ID = *p.ID
	}
	if p.Question != nil {
		row.Question = *p.Question
	}
	if p.Answer != nil {
		row.Answer = *p.Answer
	}
	if p.Intent != nil {
		row.Intent = *p.Intent
	}
	return row
}

// ImportResult summarizes a successful import.
type ImportResult struct {
	Imported     int   `json:"imported"`
	Skipped      int   `json:"skipped"`
	SkippedLines []int `json:"skippedLines"`
}

// ExportOptions selects the delimiter and download name of an export.
// Filename is given without extension.
type ExportOptions struct {
	Delimiter qacsv.Delimiter
	Filename  string
}

// ExportFile is an encoded export ready to be offered as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportContentType is the MIME type of every export.
const ExportContentType = "text/csv; charset=utf-8"

// EventType names a committed mutation.
type EventType string

const (
	EventRowAdded        EventType = "row_added"
	EventRowUpdated      EventType = "row_updated"
	EventRowDeleted      EventType = "row_deleted"
	EventDatasetImported EventType = "dataset_imported"
	EventSettingsUpdated EventType = "settings_updated"
)

// Event describes one committed mutation. Key is empty for dataset-wide
// and settings events.
type Event struct {
	Type    EventType `json:"type"`
	Version uint64    `json:"version"`
	Key     string    `json:"key,omitempty"`
	At      time.Time `json:"at"`
}

// EventSink receives events after a mutation has been committed.
// Implementations must not block for long; a failed publish never
// fails the mutation that caused it.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

type discardSink struct{}

func (discardSink) Publish(context.Context, Event) error { return nil }

// Store persists rows, settings and the audit trail.
type Store interface {
	// LoadRows returns all entries in display order.
	LoadRows(ctx context.Context) ([]Entry, error)
	// ReplaceRows atomically swaps the whole sequence.
	ReplaceRows(ctx context.Context, entries []Entry) error
	// SaveRow inserts a new entry at the end or updates an existing one in place.
	SaveRow(ctx context.Context, e Entry) error
	DeleteRow(ctx context.Context, key uuid.UUID) error

	// LoadSettings reports found=false when nothing has been saved yet.
	LoadSettings(ctx context.Context) (s Settings, found bool, err error)
	SaveSettings(ctx context.Context, s Settings) error

	AppendAudit(ctx context.Context, e AuditEntry) error
	ListAudit(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)
	PruneAudit(ctx context.Context, before time.Time) (int64, error)
}
