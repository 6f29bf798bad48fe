package core

import (
	"context"

	"github.com/JonMunkholm/qaeditor/internal/qacsv"
)

// recordFieldChanges logs one cell edit per field that differs between
// before and after.
func (s *Service) recordFieldChanges(ctx context.Context, key string, before, after qacsv.Row, reason string) {
	cols := [4]string{"id", "question", "answer", "intent"}
	oldVals, newVals := before.Fields(), after.Fields()

	for i := range cols {
		if oldVals[i] == newVals[i] {
			continue
		}
		s.audit(ctx, AuditLogParams{
			Action:       ActionCellEdit,
			RowKey:       key,
			ColumnName:   cols[i],
			OldValue:     oldVals[i],
			NewValue:     newVals[i],
			RowsAffected: 1,
			Reason:       reason,
		})
	}
}

// recordRowDelete logs a row deletion with the removed values.
func (s *Service) recordRowDelete(ctx context.Context, e Entry) {
	s.audit(ctx, AuditLogParams{
		Action:       ActionRowDelete,
		RowKey:       e.Key.String(),
		OldValue:     e.Question,
		RowsAffected: 1,
	})
}
