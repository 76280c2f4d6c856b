package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// PostgreSQL error codes the store translates.
const (
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	pgNotNullViolation = "23502"
	pgStringTooLong    = "22001"
)

// mapError translates driver errors to core sentinels. Other errors are
// returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return core.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", core.ErrDuplicate, pgErr.ConstraintName)
		case pgCheckViolation, pgNotNullViolation, pgStringTooLong:
			return fmt.Errorf("%w: %s", core.ErrPersistenceValidation, pgErr.Message)
		}
	}

	return err
}
