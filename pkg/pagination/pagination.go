// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package pagination implements opaque keyset cursors for API list endpoints.
//
// # Overview
//
// A cursor encodes the sort-key tuple of the last row a client received,
// together with a fingerprint of the filters the listing ran under. Storage
// layers resume a scan strictly after that tuple, so pages stay complete and
// duplicate-free even while rows are inserted or deleted ahead of the cursor.
// Row offsets are deliberately not supported: an offset silently skips or
// repeats rows under concurrent writes.
//
// # Filter binding
//
// Decode rejects a token whose embedded fingerprint does not match the
// filters on the current request. Mixing a cursor from one filter set with
// another would desynchronize pagination without any visible error.
package pagination

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 25
	// MaxPageSize is the upper bound for items per page. Larger requests
	// clamp to this value rather than erroring.
	MaxPageSize = 100
)

// ErrInvalidToken is returned by [Decode] for malformed tokens and for
// tokens issued under a different filter set.
var ErrInvalidToken = errors.New("pagination: invalid page token")

// Params holds the parsed page size and token from a request's query string.
type Params struct {
	Size  int
	Token string
}

// FromRequest parses "page_size" and "page_token" query parameters.
//
// # Clamping
//
// Missing or non-numeric sizes fall back to [DefaultPageSize]; values above
// [MaxPageSize] clamp to it. Size errors are never surfaced to the client.
func FromRequest(r *http.Request) Params {
	size := DefaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			size = n
		}
	}

	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{
		Size:  size,
		Token: r.URL.Query().Get("page_token"),
	}
}

// Cursor is a resumable scan position: the sort-key values of the last row
// returned plus the fingerprint of the active filter set.
type Cursor struct {
	// Keys holds the sort-key tuple, one element per ORDER BY column,
	// in order. Integer keys are carried as decimal strings.
	Keys []string `json:"k"`
	// Fingerprint binds the cursor to the filter set it was issued under.
	Fingerprint string `json:"f"`
}

// Encode serializes sort-key values and a filter fingerprint into an opaque,
// URL-safe token. Encoding is deterministic: equal positions under equal
// filters always produce the same token.
func Encode(keys []string, fingerprint string) string {
	payload, _ := json.Marshal(Cursor{Keys: keys, Fingerprint: fingerprint})
	return base64.RawURLEncoding.EncodeToString(payload)
}

// Decode parses a token and verifies it was issued under the filter set
// identified by fingerprint. It returns [ErrInvalidToken] for malformed
// tokens, tokens without key material, and fingerprint mismatches.
func Decode(token, fingerprint string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}

	var cursor Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return Cursor{}, ErrInvalidToken
	}

	if len(cursor.Keys) == 0 {
		return Cursor{}, ErrInvalidToken
	}

	if cursor.Fingerprint != fingerprint {
		return Cursor{}, ErrInvalidToken
	}

	return cursor, nil
}

// Fingerprint derives a short stable digest from the filter values active on
// a list request. Callers must pass filters in a fixed order so that equal
// filter sets fingerprint identically.
func Fingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:8])
}
