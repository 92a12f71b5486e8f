// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Conflict Guard
//
// The unique index on (series_id, issue_nr, variant) — and the primary keys —
// are the source of truth for uniqueness. There is no pre-check-then-insert:
// two concurrent creates racing on the same tuple both reach the index and
// exactly one receives SQLSTATE 23505, which this package translates into a
// deterministic domain-level Conflict. Foreign-key violations (23503) are
// classified separately because a missing parent is a NotFound at the API
// boundary, not a Conflict.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/longboxhq/longbox/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Stores that need resource-specific messages (e.g. "Issue already exists in
// this series") should test with [IsUniqueViolation] / [IsForeignKeyViolation]
// before falling back to Wrap.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if IsUniqueViolation(err) {
		return apperr.Conflict("Resource already exists")
	}

	if IsForeignKeyViolation(err) {
		return apperr.NotFound("Parent resource")
	}

	// Unknown query errors become Internal Server Errors. The action tag is
	// preserved in the cause chain for server-side logs.
	return apperr.Internal(&actionError{action: action, cause: err})
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, pgerrcode.UniqueViolation)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation (SQLSTATE 23503), e.g. an insert referencing a parent row that
// was deleted by a concurrent transaction.
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, pgerrcode.ForeignKeyViolation)
}

// hasSQLState extracts the [*pgconn.PgError] from the chain and compares its
// SQLSTATE code.
func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// actionError tags a database error with the store operation that produced it.
type actionError struct {
	action string
	cause  error
}

func (e *actionError) Error() string { return e.action + ": " + e.cause.Error() }

func (e *actionError) Unwrap() error { return e.cause }
