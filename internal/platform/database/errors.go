package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// PostgreSQL SQLSTATE codes handled by TranslateError.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// TranslateError maps PostgreSQL failures that callers can act on to domain errors.
// Other errors are returned unchanged.
func TranslateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return domain.Wrap(err, domain.KindConflict, domain.CodeConflict, uniqueMessage(pgErr))
	case codeSerializationFailure, codeDeadlockDetected:
		return domain.Wrap(err, domain.KindConflict, domain.CodeConflict, "concurrent update detected, retry the request")
	default:
		return err
	}
}

func uniqueMessage(pgErr *pgconn.PgError) string {
	switch pgErr.ConstraintName {
	case "uq_users_email", "idx_users_email":
		return "email is already registered"
	default:
		return "resource already exists"
	}
}
