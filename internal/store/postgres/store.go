package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

const (
	tableRows     = "qa_rows"
	tableSettings = "qa_settings"
	tableAudit    = "qa_audit"
)

var (
	rowColumns   = []string{"key", "position", "id", "question", "answer", "intent"}
	auditColumns = []string{
		"id", "action", "severity", "actor", "ip_address", "user_agent", "row_key",
		"column_name", "old_value", "new_value", "rows_affected", "reason", "created_at",
	}
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store is a core.Store backed by PostgreSQL.
type Store struct {
	db DB
}

var _ core.Store = (*Store)(nil)

// New returns a store using db, usually a *pgxpool.Pool.
func New(db DB) *Store {
	return &Store{db: db}
}

type rowRecord struct {
	Key      uuid.UUID `db:"key"`
	ID       int       `db:"id"`
	Question string    `db:"question"`
	Answer   string    `db:"answer"`
	Intent   string    `db:"intent"`
}

type auditRecord struct {
	ID           uuid.UUID `db:"id"`
	Action       string    `db:"action"`
	Severity     string    `db:"severity"`
	Actor        string    `db:"actor"`
	IPAddress    string    `db:"ip_address"`
	UserAgent    string    `db:"user_agent"`
	RowKey       string    `db:"row_key"`
	ColumnName   string    `db:"column_name"`
	OldValue     string    `db:"old_value"`
	NewValue     string    `db:"new_value"`
	RowsAffected int       `db:"rows_affected"`
	Reason       string    `db:"reason"`
	CreatedAt    time.Time `db:"created_at"`
}

func (s *Store) LoadRows(ctx context.Context) ([]core.Entry, error) {
	query, args, err := psql.
		Select("key", "id", "question", "answer", "intent").
		From(tableRows).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load rows: %w", err)
	}

	var records []rowRecord
	if err := pgxscan.Select(ctx, s.db, &records, query, args...); err != nil {
		return nil, mapError(err, "load rows")
	}

	entries := make([]core.Entry, len(records))
	for i, r := range records {
		entries[i] = core.Entry{
			Key: r.Key,
			Row: qacsv.Row{ID: r.ID, Question: r.Question, Answer: r.Answer, Intent: r.Intent},
		}
	}
	return entries, nil
}

// ReplaceRows deletes every row and copies entries in, renumbering
// positions from zero.
func (s *Store) ReplaceRows(ctx context.Context, entries []core.Entry) error {
	query, args, err := psql.Delete(tableRows).ToSql()
	if err != nil {
		return fmt.Errorf("build replace rows: %w", err)
	}

	data := make([][]any, len(entries))
	for i, e := range entries {
		data[i] = []any{e.Key, int64(i), int64(e.ID), e.Question, e.Answer, e.Intent}
	}

	err = runInTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		if len(data) == 0 {
			return nil
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{tableRows}, rowColumns, pgx.CopyFromRows(data))
		return err
	})
	return mapError(err, "replace rows")
}

// SaveRow upserts e. New rows are placed after the current last position;
// existing rows keep theirs.
func (s *Store) SaveRow(ctx context.Context, e core.Entry) error {
	query, args, err := psql.
		Insert(tableRows).
		Columns(rowColumns...).
		Values(
			e.Key,
			squirrel.Expr("COALESCE((SELECT MAX(position) FROM " + tableRows + "), -1) + 1"),
			int64(e.ID), e.Question, e.Answer, e.Intent,
		).
		Suffix("ON CONFLICT (key) DO UPDATE SET id = EXCLUDED.id, question = EXCLUDED.question, " +
			"answer = EXCLUDED.answer, intent = EXCLUDED.intent").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save row: %w", err)
	}

	_, err = s.db.Exec(ctx, query, args...)
	return mapError(err, "save row")
}

func (s *Store) DeleteRow(ctx context.Context, key uuid.UUID) error {
	query, args, err := psql.Delete(tableRows).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete row: %w", err)
	}
	_, err = s.db.Exec(ctx, query, args...)
	return mapError(err, "delete row")
}

func (s *Store) LoadSettings(ctx context.Context) (core.Settings, bool, error) {
	query, args, err := psql.Select("data").From(tableSettings).Where(squirrel.Eq{"singleton": true}).ToSql()
	if err != nil {
		return core.Settings{}, false, fmt.Errorf("build load settings: %w", err)
	}

	var raw []byte
	if err := s.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.Settings{}, false, nil
		}
		return core.Settings{}, false, mapError(err, "load settings")
	}

	var settings core.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return core.Settings{}, false, fmt.Errorf("decode settings: %w", err)
	}
	if settings.CustomIntents == nil {
		settings.CustomIntents = []string{}
	}
	return settings, true, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings core.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	query, args, err := psql.
		Insert(tableSettings).
		Columns("singleton", "data", "updated_at").
		Values(true, raw, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (singleton) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save settings: %w", err)
	}

	_, err = s.db.Exec(ctx, query, args...)
	return mapError(err, "save settings")
}

func (s *Store) AppendAudit(ctx context.Context, e core.AuditEntry) error {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return fmt.Errorf("audit id: %w", err)
	}

	query, args, err := psql.
		Insert(tableAudit).
		Columns(auditColumns...).
		Values(
			id, string(e.Action), string(e.Severity), e.Actor, e.IPAddress, e.UserAgent, e.RowKey,
			e.ColumnName, e.OldValue, e.NewValue, e.RowsAffected, e.Reason, e.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build append audit: %w", err)
	}

	_, err = s.db.Exec(ctx, query, args...)
	return mapError(err, "append audit")
}

// ListAudit returns matching entries newest first.
func (s *Store) ListAudit(ctx context.Context, f core.AuditFilter) ([]core.AuditEntry, error) {
	q := psql.Select(auditColumns...).From(tableAudit).OrderBy("created_at DESC")
	if f.Action != "" {
		q = q.Where(squirrel.Eq{"action": string(f.Action)})
	}
	if f.RowKey != "" {
		q = q.Where(squirrel.Eq{"row_key": f.RowKey})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit: %w", err)
	}

	var records []auditRecord
	if err := pgxscan.Select(ctx, s.db, &records, query, args...); err != nil {
		return nil, mapError(err, "list audit")
	}

	out := make([]core.AuditEntry, len(records))
	for i, r := range records {
		out[i] = core.AuditEntry{
			ID:           r.ID.String(),
			Action:       core.AuditAction(r.Action),
			Severity:     core.AuditSeverity(r.Severity),
			Actor:        r.Actor,
			IPAddress:    r.IPAddress,
			UserAgent:    r.UserAgent,
			RowKey:       r.RowKey,
			ColumnName:   r.ColumnName,
			OldValue:     r.OldValue,
			NewValue:     r.NewValue,
			RowsAffected: r.RowsAffected,
			Reason:       r.Reason,
			CreatedAt:    r.CreatedAt,
		}
	}
	return out, nil
}

func (s *Store) PruneAudit(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.Delete(tableAudit).Where(squirrel.Lt{"created_at": before}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build prune audit: %w", err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "prune audit")
	}
	return tag.RowsAffected(), nil
}
