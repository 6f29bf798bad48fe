package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapError wraps a driver error with the operation name. Unique violations
// are reported as "duplicate key" so the error catalog can recognise them.
// Context errors pass through unchanged apart from the prefix.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: duplicate key (%s): %w", op, pgErr.ConstraintName, err)
		case "40P01": // deadlock_detected
			return fmt.Errorf("%s: deadlock: %w", op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
