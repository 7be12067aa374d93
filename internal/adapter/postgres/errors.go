package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// SQLSTATE codes handled explicitly.
const (
	codeUniqueViolation      = "23505"
	codeNotNullViolation     = "23502"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// MapError converts a pgx error from operation op (for example
// "lexicon_records load") into a domain error:
//
//   - context cancellation passes through unchanged,
//   - pgx.ErrNoRows becomes domain.ErrNotFound,
//   - constraint violations become domain.ErrValidation,
//   - everything else wraps domain.ErrPersistence.
//
// The original error stays in the chain, so Retryable still sees it.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeNotNullViolation, codeCheckViolation:
			return fmt.Errorf("%s: %w: constraint %s: %w", op, domain.ErrValidation, pgErr.ConstraintName, err)
		}
	}

	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// Retryable reports whether err is a concurrency failure that a fresh
// transaction may not hit again.
func Retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}
