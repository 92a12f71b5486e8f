// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longboxhq/longbox/internal/platform/apperr"
	"github.com/longboxhq/longbox/internal/platform/dberr"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, Message: "constraint violated"}
}

/*
TestWrap_Classification maps the SQLSTATEs the store layer cares about onto
their API-level errors.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unique_violation", pgError(pgerrcode.UniqueViolation), "CONFLICT", http.StatusConflict},
		{"fk_violation", pgError(pgerrcode.ForeignKeyViolation), "NOT_FOUND", http.StatusNotFound},
		{"unknown", errors.New("connection reset"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}

	t.Run("nil_passthrough", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "test_action"))
	})
}

/*
TestWrap_WrappedChain verifies classification still works when the driver
error is wrapped by store code.
*/
func TestWrap_WrappedChain(t *testing.T) {
	err := fmt.Errorf("insert issue: %w", pgError(pgerrcode.UniqueViolation))

	ae := apperr.As(dberr.Wrap(err, "create_issue"))
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestViolationPredicates covers the direct SQLSTATE checks used by stores for
resource-specific messages.
*/
func TestViolationPredicates(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(pgError(pgerrcode.UniqueViolation)))
	assert.False(t, dberr.IsUniqueViolation(pgError(pgerrcode.ForeignKeyViolation)))
	assert.False(t, dberr.IsUniqueViolation(errors.New("other")))

	assert.True(t, dberr.IsForeignKeyViolation(pgError(pgerrcode.ForeignKeyViolation)))
	assert.False(t, dberr.IsForeignKeyViolation(pgError(pgerrcode.UniqueViolation)))
}

/*
TestWrap_InternalKeepsCause checks the action tag survives in the cause
chain for server-side logging.
*/
func TestWrap_InternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := dberr.Wrap(cause, "list_series")

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	require.NotNil(t, ae.Cause)
	assert.Contains(t, ae.Cause.Error(), "list_series")
	assert.ErrorIs(t, ae.Cause, cause)
}
