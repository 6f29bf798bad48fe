package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/qaeditor/internal/ai"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

// Options are the collaborators of a Service. Store and Generator are required.
type Options struct {
	Store     Store
	Generator ai.Provider
	Events    EventSink
	Limiter   *GenerationLimiter
	Clock     func() time.Time
}

// Service is the single owner of the dataset and settings.
//
// All state changes are written to the store first and then swapped in
// under the lock, so readers never observe a half-applied mutation.
type Service struct {
	store   Store
	gen     ai.Provider
	events  EventSink
	limiter *GenerationLimiter
	now     func() time.Time

	mu       sync.RWMutex
	entries  []Entry
	version  uint64
	settings Settings
}

// NewService loads the dataset and settings from the store. A store that
// has never saved settings is treated as a fresh install and seeded.
func NewService(ctx context.Context, opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("core: store is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("core: generator is required")
	}
	s := &Service{
		store:   opts.Store,
		gen:     opts.Generator,
		events:  opts.Events,
		limiter: opts.Limiter,
		now:     opts.Clock,
	}
	if s.events == nil {
		s.events = discardSink{}
	}
	if s.limiter == nil {
		s.limiter = NewGenerationLimiter(0, 0)
	}
	if s.now == nil {
		s.now = time.Now
	}

	settings, found, err := s.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !found {
		settings = DefaultSettings()
		if err := s.store.ReplaceRows(ctx, SeedEntries()); err != nil {
			return nil, fmt.Errorf("seed rows: %w", err)
		}
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return nil, fmt.Errorf("seed settings: %w", err)
		}
		slog.Info("seeded fresh dataset", "rows", len(seedRows))
	}
	s.settings = settings.clone()

	entries, err := s.store.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	s.entries = entries
	return s, nil
}

// Snapshot returns a copy of the dataset.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Version: s.version, Entries: slices.Clone(s.entries)}
}

// Get returns the entry with key.
func (s *Service) Get(key uuid.UUID) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(key)
	if idx < 0 {
		return Entry{}, ErrRowNotFound
	}
	return s.entries[idx], nil
}

// AddRow appends an empty row with id = max(ids, 0) + 1.
func (s *Service) AddRow(ctx context.Context) (Entry, error) {
	s.mu.Lock()
	e := Entry{
		Key: uuid.New(),
		Row: qacsv.Row{ID: s.rowsLocked().NextID(), Intent: qacsv.DefaultIntent},
	}
	if err := s.store.SaveRow(ctx, e); err != nil {
		s.mu.Unlock()
		return Entry{}, fmt.Errorf("save row: %w", err)
	}
	s.entries = append(s.entries, e)
	s.version++
	version := s.version
	s.mu.Unlock()

	s.audit(ctx, AuditLogParams{Action: ActionRowAdd, RowKey: e.Key.String(), RowsAffected: 1})
	s.publish(ctx, EventRowAdded, version, e.Key.String())
	return e, nil
}

// UpdateRow applies patch to the entry with key.
func (s *Service) UpdateRow(ctx context.Context, key uuid.UUID, patch RowPatch) (Entry, error) {
	return s.updateEntry(ctx, key, "", func(row qacsv.Row) qacsv.Row { return patch.Apply(row) })
}

// DeleteRow removes the entry with key.
func (s *Service) DeleteRow(ctx context.Context, key uuid.UUID) error {
	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		return ErrRowNotFound
	}
	removed := s.entries[idx]
	if err := s.store.DeleteRow(ctx, key); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete row: %w", err)
	}
	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	s.entries = append(next, s.entries[idx+1:]...)
	s.version++
	version := s.version
	s.mu.Unlock()

	s.recordRowDelete(ctx, removed)
	s.publish(ctx, EventRowDeleted, version, key.String())
	return nil
}

// Import decodes text and replaces the whole dataset. On any error the
// dataset is left untouched.
func (s *Service) Import(ctx context.Context, text string, opts qacsv.DecodeOptions) (ImportResult, error) {
	report, err := qacsv.DecodeReport(text, opts)
	if err != nil {
		return ImportResult{}, err
	}

	entries := make([]Entry, len(report.Rows))
	for i, row := range report.Rows {
		entries[i] = Entry{Key: uuid.New(), Row: row}
	}

	s.mu.Lock()
	if err := s.store.ReplaceRows(ctx, entries); err != nil {
		s.mu.Unlock()
		return ImportResult{}, fmt.Errorf("replace rows: %w", err)
	}
	s.entries = entries
	s.version++
	version := s.version
	s.mu.Unlock()

	result := ImportResult{
		Imported:     len(entries),
		Skipped:      len(report.Skipped),
		SkippedLines: report.Skipped,
	}
	if result.SkippedLines == nil {
		result.SkippedLines = []int{}
	}

	s.audit(ctx, AuditLogParams{
		Action:       ActionImport,
		RowsAffected: result.Imported,
		Reason:       fmt.Sprintf("mode=%s skipped=%d", opts.Mode, result.Skipped),
	})
	s.publish(ctx, EventDatasetImported, version, "")
	return result, nil
}

// Export encodes the dataset. An empty dataset fails with ErrNoData before
// any encoding work.
func (s *Service) Export(ctx context.Context, opts ExportOptions) (ExportFile, error) {
	snap := s.Snapshot()
	if len(snap.Entries) == 0 {
		return ExportFile{}, ErrNoData
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = qacsv.Comma
	}

	var buf bytes.Buffer
	if err := qacsv.EncodeTo(&buf, snap.Rows(), qacsv.EncodeOptions{Delimiter: opts.Delimiter}); err != nil {
		return ExportFile{}, err
	}

	file := ExportFile{
		Filename:    ExportFilename(opts.Filename, s.now()),
		ContentType: ExportContentType,
		Body:        buf.Bytes(),
		Rows:        len(snap.Entries),
	}
	s.audit(ctx, AuditLogParams{
		Action:       ActionExport,
		RowsAffected: file.Rows,
		Reason:       "delimiter=" + opts.Delimiter.Name(),
		NewValue:     file.Filename,
	})
	return file, nil
}

var unsafeFilename = regexp.MustCompile(`[\x00-\x1f\x7f"\\/:*?<>|]+`)

// ExportFilename derives the download name: name plus ".csv", or
// csv-export-YYYY-MM-DD when name is blank.
func ExportFilename(name string, now time.Time) string {
	name = strings.TrimSpace(name)
	if len(name) >= 4 && strings.EqualFold(name[len(name)-4:], ".csv") {
		name = name[:len(name)-4]
	}
	name = strings.Trim(unsafeFilename.ReplaceAllString(name, "_"), ". ")
	if name == "" {
		name = "csv-export-" + now.Format("2006-01-02")
	}
	return name + ".csv"
}

// GenerateQuestion asks the generator for a question matching the row's
// intent and stores it in the row.
func (s *Service) GenerateQuestion(ctx context.Context, key uuid.UUID) (Entry, error) {
	return s.generate(ctx, key, "question")
}

// GenerateAnswer asks the generator to answer the row's question and
// stores it in the row. The question must not be empty.
func (s *Service) GenerateAnswer(ctx context.Context, key uuid.UUID) (Entry, error) {
	return s.generate(ctx, key, "answer")
}

// generate reads the row inputs, calls the generator without holding the
// lock, then applies the text only if the entry still exists.
func (s *Service) generate(ctx context.Context, key uuid.UUID, field string) (Entry, error) {
	s.mu.RLock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.RUnlock()
		return Entry{}, ErrRowNotFound
	}
	row := s.entries[idx].Row
	settings := s.settings
	s.mu.RUnlock()

	if field == "answer" && strings.TrimSpace(row.Question) == "" {
		return Entry{}, ErrQuestionRequired
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return Entry{}, err
	}
	defer s.limiter.Release()

	req := ai.Request{
		APIKey:       settings.APIKey,
		Model:        settings.Model,
		SystemPrompt: settings.SystemPrompt,
		MaxTokens:    settings.MaxTokens,
		Intent:       row.Intent,
		Question:     row.Question,
	}

	var text string
	var err error
	if field == "answer" {
		text, err = s.gen.GenerateAnswer(ctx, req)
	} else {
		text, err = s.gen.GenerateQuestion(ctx, req)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("generate %s: %w", field, err)
	}

	return s.updateEntry(ctx, key, "generated", func(r qacsv.Row) qacsv.Row {
		if field == "answer" {
			r.Answer = text
		} else {
			r.Question = text
		}
		return r
	})
}

// WaitForGenerations blocks until no generation is in flight.
func (s *Service) WaitForGenerations(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// GenerationStatus reports the generation limiter state.
func (s *Service) GenerationStatus() GenerationLimiterStatus {
	return s.limiter.Status()
}

// updateEntry replaces one entry with fn(row) under the lock.
func (s *Service) updateEntry(ctx context.Context, key uuid.UUID, reason string, fn func(qacsv.Row) qacsv.Row) (Entry, error) {
	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		return Entry{}, ErrRowNotFound
	}
	before := s.entries[idx]
	after := Entry{Key: key, Row: fn(before.Row)}
	if after.Row == before.Row {
		s.mu.Unlock()
		return after, nil
	}
	if err := s.store.SaveRow(ctx, after); err != nil {
		s.mu.Unlock()
		return Entry{}, fmt.Errorf("save row: %w", err)
	}
	next := slices.Clone(s.entries)
	next[idx] = after
	s.entries = next
	s.version++
	version := s.version
	s.mu.Unlock()

	s.recordFieldChanges(ctx, key.String(), before.Row, after.Row, reason)
	s.publish(ctx, EventRowUpdated, version, key.String())
	return after, nil
}

func (s *Service) indexOf(key uuid.UUID) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.Key == key })
}

func (s *Service) rowsLocked() qacsv.Rows {
	rows := make(qacsv.Rows, len(s.entries))
	for i, e := range s.entries {
		rows[i] = e.Row
	}
	return rows
}

func (s *Service) publish(ctx context.Context, typ EventType, version uint64, key string) {
	ev := Event{Type: typ, Version: version, Key: key, At: s.now().UTC()}
	if err := s.events.Publish(ctx, ev); err != nil {
		slog.Warn("event publish failed", "type", typ, "error", err)
	}
}
