// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package issue_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longboxhq/longbox/internal/library/issue"
)

// newRouter mounts the issue handler the way the API server nests it under
// a series.
func newRouter(repo *fakeRepository) chi.Router {
	handler := issue.NewHandler(newService(repo))
	router := chi.NewRouter()
	router.Route("/v1/series/{seriesID}/issues", handler.RegisterRoutes)
	return router
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

type issueEnvelope struct {
	Data issue.Issue `json:"data"`
}

type pageEnvelope struct {
	Items         []issue.Issue `json:"items"`
	NextPageToken string        `json:"next_page_token"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var body T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_Create exercises the create route end to end: status codes, the
response envelope, and the error taxonomy for conflicts and bad input.
*/
func TestHandler_Create(t *testing.T) {
	router := newRouter(newFakeRepository(1))

	t.Run("created", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/1/issues/",
			`{"issue_nr": "1", "variant": "A", "title": "The Last Stand"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		body := decodeBody[issueEnvelope](t, recorder)
		assert.Equal(t, int64(1), body.Data.SeriesID)
		assert.Equal(t, "1", body.Data.IssueNr)
		assert.Equal(t, "A", body.Data.Variant)
		assert.NotZero(t, body.Data.IssueID)
	})

	t.Run("duplicate_conflicts", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/1/issues/",
			`{"issue_nr": "1", "variant": "A"}`)
		require.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "CONFLICT", decodeBody[errorEnvelope](t, recorder).Code)
	})

	t.Run("unknown_field", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/1/issues/",
			`{"issue_nr": "2", "publisher": "Image"}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		body := decodeBody[errorEnvelope](t, recorder)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		require.Len(t, body.Details, 1)
		assert.Equal(t, "publisher", body.Details[0].Field)
	})

	t.Run("malformed_json", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/1/issues/", `{"issue_nr":`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody[errorEnvelope](t, recorder).Code)
	})

	t.Run("missing_series", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/404/issues/",
			`{"issue_nr": "1"}`)
		require.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "NOT_FOUND", decodeBody[errorEnvelope](t, recorder).Code)
	})

	t.Run("non_integer_series_id", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/saga/issues/",
			`{"issue_nr": "1"}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		body := decodeBody[errorEnvelope](t, recorder)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		require.Len(t, body.Details, 1)
		assert.Equal(t, "seriesID", body.Details[0].Field)
	})
}

/*
TestHandler_List_PageChain posts a base printing and a variant, then walks
the collection one item per page, following next_page_token until it runs
out. It also checks that a foreign token is rejected at the transport level.
*/
func TestHandler_List_PageChain(t *testing.T) {
	router := newRouter(newFakeRepository(1))

	for _, payload := range []string{
		`{"issue_nr": "1"}`,
		`{"issue_nr": "1", "variant": "A"}`,
	} {
		recorder := doRequest(t, router, http.MethodPost, "/v1/series/1/issues/", payload)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	first := doRequest(t, router, http.MethodGet, "/v1/series/1/issues/?page_size=1", "")
	require.Equal(t, http.StatusOK, first.Code)

	firstPage := decodeBody[pageEnvelope](t, first)
	require.Len(t, firstPage.Items, 1)
	assert.Equal(t, "1", firstPage.Items[0].IssueNr)
	assert.Equal(t, "", firstPage.Items[0].Variant)
	require.NotEmpty(t, firstPage.NextPageToken)

	second := doRequest(t, router, http.MethodGet,
		"/v1/series/1/issues/?page_size=1&page_token="+firstPage.NextPageToken, "")
	require.Equal(t, http.StatusOK, second.Code)

	secondPage := decodeBody[pageEnvelope](t, second)
	require.Len(t, secondPage.Items, 1)
	assert.Equal(t, "A", secondPage.Items[0].Variant)
	assert.Empty(t, secondPage.NextPageToken)

	t.Run("garbage_token", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet,
			"/v1/series/1/issues/?page_token=not-a-token", "")
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "INVALID_CURSOR", decodeBody[errorEnvelope](t, recorder).Code)
	})

	t.Run("token_bound_to_filter", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet,
			"/v1/series/1/issues/?story_arc=Rebirth&page_token="+firstPage.NextPageToken, "")
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "INVALID_CURSOR", decodeBody[errorEnvelope](t, recorder).Code)
	})
}

/*
TestHandler_UpdateDelete covers the single-resource routes: sparse patch,
empty patch rejection, and the idempotent 204 delete.
*/
func TestHandler_UpdateDelete(t *testing.T) {
	router := newRouter(newFakeRepository(1))

	created := doRequest(t, router, http.MethodPost, "/v1/series/1/issues/",
		`{"issue_nr": "1", "title": "Saga"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	issueID := decodeBody[issueEnvelope](t, created).Data.IssueID

	target := "/v1/series/1/issues/" + strconv.FormatInt(issueID, 10)

	t.Run("get", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "Saga", *decodeBody[issueEnvelope](t, recorder).Data.Title)
	})

	t.Run("patch_sparse", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPatch, target, `{"story_arc": "Dark Age"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody[issueEnvelope](t, recorder)
		assert.Equal(t, "Dark Age", *body.Data.StoryArc)
		assert.Equal(t, "Saga", *body.Data.Title)
	})

	t.Run("patch_empty", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPatch, target, `{}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody[errorEnvelope](t, recorder).Code)
	})

	t.Run("delete_idempotent", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, doRequest(t, router, http.MethodDelete, target, "").Code)
		require.Equal(t, http.StatusNoContent, doRequest(t, router, http.MethodDelete, target, "").Code)

		recorder := doRequest(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
