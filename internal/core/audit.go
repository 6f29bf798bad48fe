package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionRowAdd          AuditAction = "row_add"
	ActionCellEdit        AuditAction = "cell_edit"
	ActionRowDelete       AuditAction = "row_delete"
	ActionImport          AuditAction = "import"
	ActionExport          AuditAction = "export"
	ActionGenerate        AuditAction = "generate"
	ActionSettingsUpdate  AuditAction = "settings_update"
	ActionIntentAdd       AuditAction = "intent_add"
	ActionIntentRemove    AuditAction = "intent_remove"
	ActionThemeToggle     AuditAction = "theme_toggle"
	ActionCredentialCheck AuditAction = "credential_check"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// DefaultAuditLimit is used when a listing asks for no particular limit.
const DefaultAuditLimit = 100

// MaxAuditLimit caps a single listing.
const MaxAuditLimit = 1000

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	Actor        string        `json:"actor,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	RowKey       string        `json:"rowKey,omitempty"`
	ColumnName   string        `json:"columnName,omitempty"`
	OldValue     string        `json:"oldValue,omitempty"`
	NewValue     string        `json:"newValue,omitempty"`
	RowsAffected int           `json:"rowsAffected,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	RowKey       string
	ColumnName   string
	OldValue     string
	NewValue     string
	RowsAffected int
	Reason       string
}

// AuditFilter narrows an audit listing. Entries are returned newest first.
type AuditFilter struct {
	Action AuditAction
	RowKey string
	Limit  int
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionImport:
		return SeverityCritical
	case ActionRowDelete, ActionSettingsUpdate:
		return SeverityHigh
	case ActionExport, ActionThemeToggle, ActionCredentialCheck:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// LogAudit records an audit entry. IP address, user agent and actor are
// taken from ctx.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	origin := OriginFrom(ctx)
	entry := &AuditEntry{
		ID:           uuid.NewString(),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action),
		Actor:        origin.Actor,
		IPAddress:    origin.IPAddress,
		UserAgent:    origin.UserAgent,
		RowKey:       params.RowKey,
		ColumnName:   params.ColumnName,
		OldValue:     params.OldValue,
		NewValue:     params.NewValue,
		RowsAffected: params.RowsAffected,
		Reason:       params.Reason,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.store.AppendAudit(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// audit records an entry and logs instead of failing; the mutation it
// describes has already been committed.
func (s *Service) audit(ctx context.Context, params AuditLogParams) {
	if _, err := s.LogAudit(ctx, params); err != nil {
		slog.Error("audit log write failed", "action", params.Action, "error", err)
	}
}

// GetAuditLog retrieves audit log entries with optional filtering.
func (s *Service) GetAuditLog(ctx context.Context, filter AuditFilter) ([]AuditEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAuditLimit
	}
	if filter.Limit > MaxAuditLimit {
		filter.Limit = MaxAuditLimit
	}
	return s.store.ListAudit(ctx, filter)
}
