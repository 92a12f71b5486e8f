// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longboxhq/longbox/pkg/pagination"
)

/*
TestEncodeDecode_RoundTrip verifies that a token decodes back to the exact
keys it was issued for, under the same fingerprint.
*/
func TestEncodeDecode_RoundTrip(t *testing.T) {
	fingerprint := pagination.Fingerprint("series", "Marvel", "")
	keys := []string{"1", "A", "42"}

	token := pagination.Encode(keys, fingerprint)
	require.NotEmpty(t, token)

	cursor, err := pagination.Decode(token, fingerprint)
	require.NoError(t, err)
	assert.Equal(t, keys, cursor.Keys)
	assert.Equal(t, fingerprint, cursor.Fingerprint)
}

/*
TestEncode_Deterministic checks that equal positions produce equal tokens.
*/
func TestEncode_Deterministic(t *testing.T) {
	fingerprint := pagination.Fingerprint("copies", "7")
	first := pagination.Encode([]string{"10"}, fingerprint)
	second := pagination.Encode([]string{"10"}, fingerprint)
	assert.Equal(t, first, second)
}

/*
TestDecode_InvalidTokens covers the malformed-token surface: garbage bytes,
valid base64 of non-JSON, empty key material, and fingerprint mismatches.
All map to the same sentinel.
*/
func TestDecode_InvalidTokens(t *testing.T) {
	fingerprint := pagination.Fingerprint("series")

	tests := []struct {
		name  string
		token string
	}{
		{"not_base64", "!!not-base64!!"},
		{"not_json", "bm90LWpzb24"},
		{"empty_keys", pagination.Encode(nil, fingerprint)},
		{"wrong_fingerprint", pagination.Encode([]string{"1"}, pagination.Fingerprint("series", "DC"))},
		{"empty_token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.Decode(tt.token, fingerprint)
			assert.ErrorIs(t, err, pagination.ErrInvalidToken)
		})
	}
}

/*
TestFingerprint_Separation verifies that filter values cannot collide across
positions and that order matters.
*/
func TestFingerprint_Separation(t *testing.T) {
	assert.NotEqual(t,
		pagination.Fingerprint("a", "bc"),
		pagination.Fingerprint("ab", "c"),
	)
	assert.NotEqual(t,
		pagination.Fingerprint("a", "b"),
		pagination.Fingerprint("b", "a"),
	)
	assert.Equal(t,
		pagination.Fingerprint("series", "Marvel"),
		pagination.Fingerprint("series", "Marvel"),
	)
}

/*
TestFromRequest checks page size defaulting and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantSize int
	}{
		{"default", "", pagination.DefaultPageSize},
		{"explicit", "page_size=10", 10},
		{"max", "page_size=100", 100},
		{"above_max_clamps", "page_size=500", pagination.MaxPageSize},
		{"zero_falls_back", "page_size=0", pagination.DefaultPageSize},
		{"negative_falls_back", "page_size=-5", pagination.DefaultPageSize},
		{"garbage_falls_back", "page_size=lots", pagination.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/v1/series?"+tt.query, nil)
			params := pagination.FromRequest(request)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}

	t.Run("token_passthrough", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/v1/series?page_token=abc123", nil)
		assert.Equal(t, "abc123", pagination.FromRequest(request).Token)
	})
}
