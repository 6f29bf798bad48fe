// Package core owns the live question/answer dataset and the operations the
// editor performs on it.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Service: the single owner of the row sequence and the settings. It is
//     constructed by the composition root and injected wherever it is needed.
//   - Store: persistence for rows, settings and the audit trail. The service
//     writes through to the store before it changes its in-memory state.
//   - EventSink: receives one [Event] per committed mutation.
//   - Audit: a record of every data and settings modification.
//
// # Entries and keys
//
// Every row is wrapped in an [Entry] carrying a stable UUID key. Row-targeted
// operations (update, delete, AI generation) address rows by key, never by
// position, so an import that replaces the sequence cannot redirect an
// in-flight generation to a different row.
//
//	entry, _ := svc.AddRow(ctx)
//	svc.UpdateRow(ctx, entry.Key, core.RowPatch{Question: ptr("What is Go?")})
//	svc.GenerateAnswer(ctx, entry.Key)
//
// # Import and export
//
// [Service.Import] decodes text with the qacsv package and replaces the whole
// sequence on success. A format error leaves the sequence untouched.
// [Service.Export] rejects an empty sequence with [ErrNoData] before any
// encoding work is done.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - CSV001: missing required columns
//   - FILE001-FILE004: file errors (size, type, encoding, charset)
//   - EXP001: nothing to export
//   - ROW001-ROW002: row and intent errors
//   - AI001-AI004: text generation errors
//   - SET001: invalid settings
//
// # Audit Logging
//
// All modifications are recorded through the store with IP address and
// user agent taken from the request context. Entries older than the
// configured retention are pruned by [Service.StartAuditPruner].
package core
