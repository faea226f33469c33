package postgres

import (
	"errors"
	"fmt"

	"coffeeshop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we react to
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgConstraintError checks for NOT NULL and CHECK violations
func IsPgConstraintError(err error) bool {
	code := pgCode(err)
	return code == pgNotNullViolation || code == pgCheckViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify tags a driver error with the matching domain sentinel, keeping
// the original error in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsPgNoRowsError(err):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case IsPgDuplicateError(err):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case IsPgConstraintError(err):
		return fmt.Errorf("%w: %w", domain.ErrUnprocessable, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
}
