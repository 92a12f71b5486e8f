// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package requestutil_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longboxhq/longbox/internal/platform/apperr"
	requestutil "github.com/longboxhq/longbox/internal/platform/request"
)

type createPayload struct {
	Title     *string `json:"title"`
	Publisher *string `json:"publisher"`
}

/*
TestDecodeJSON covers the strict body decoding contract: valid payloads
decode, unrecognized keys are rejected with the offending field named, and
malformed bodies map to the generic invalid-JSON error.
*/
func TestDecodeJSON(t *testing.T) {
	t.Run("valid_payload", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"title": "Saga"}`))

		var payload createPayload
		require.NoError(t, requestutil.DecodeJSON(request, &payload))
		require.NotNil(t, payload.Title)
		assert.Equal(t, "Saga", *payload.Title)
		assert.Nil(t, payload.Publisher)
	})

	t.Run("unknown_field_names_the_key", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"title": "Saga", "imprint": "Vertigo"}`))

		var payload createPayload
		err := requestutil.DecodeJSON(request, &payload)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		require.Len(t, appError.Details, 1)
		assert.Equal(t, "imprint", appError.Details[0].Field)
	})

	t.Run("malformed_body", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":`))

		var payload createPayload
		err := requestutil.DecodeJSON(request, &payload)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		assert.Empty(t, appError.Details)
	})

	t.Run("wrong_type_is_not_unknown_field", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/", strings.NewReader(`{"title": 7}`))

		var payload createPayload
		err := requestutil.DecodeJSON(request, &payload)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		assert.Empty(t, appError.Details)
	})
}

/*
TestIntParam verifies identifier parsing of route parameters.
*/
func TestIntParam(t *testing.T) {
	newRouteContext := func(name, value string) *chi.Context {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add(name, value)
		return routeCtx
	}

	t.Run("integer", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, newRouteContext("seriesID", "42")))

		id, err := requestutil.IntParam(request, "seriesID")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("not_an_integer", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/", nil)
		request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, newRouteContext("seriesID", "saga")))

		_, err := requestutil.IntParam(request, "seriesID")
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		require.Len(t, appError.Details, 1)
		assert.Equal(t, "seriesID", appError.Details[0].Field)
	})
}
