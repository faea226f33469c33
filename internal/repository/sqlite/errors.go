package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"coffeeshop/internal/domain"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func sqliteCode(err error) int {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code()
	}
	return 0
}

// IsDuplicateError checks for UNIQUE / PRIMARY KEY violations
func IsDuplicateError(err error) bool {
	code := sqliteCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// IsConstraintError checks for any other constraint violation
func IsConstraintError(err error) bool {
	return sqliteCode(err)&0xff == sqlite3.SQLITE_CONSTRAINT
}

// classify tags a driver error with the matching domain sentinel
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case IsDuplicateError(err):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case IsConstraintError(err):
		return fmt.Errorf("%w: %w", domain.ErrUnprocessable, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
}
