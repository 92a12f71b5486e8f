// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestNormalizeIssueNr checks the canonical form of CLZ issue numbers.
*/
func TestNormalizeIssueNr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"whole_float", "1.0", "1"},
		{"fraction", "0.5", "0.5"},
		{"plain_integer", "12", "12"},
		{"annual", "Annual 1", "Annual 1"},
		{"empty", "", ""},
		{"padded", " 3.0 ", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeIssueNr(tt.in))
		})
	}
}

/*
TestNullHelpers covers the empty-cell to NULL mapping and CLZ's float-coded
integers.
*/
func TestNullHelpers(t *testing.T) {
	t.Run("empty_string_is_null", func(t *testing.T) {
		assert.Nil(t, nullString(""))
		require.NotNil(t, nullString("CGC"))
		assert.Equal(t, "CGC", *nullString("CGC"))
	})

	t.Run("int_accepts_float_coding", func(t *testing.T) {
		parsed, err := nullInt("2015.0")
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, int64(2015), *parsed)

		parsed, err = nullInt("")
		require.NoError(t, err)
		assert.Nil(t, parsed)

		_, err = nullInt("2015.5")
		assert.Error(t, err)
	})

	t.Run("float", func(t *testing.T) {
		parsed, err := nullFloat("19.99")
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, 19.99, *parsed)

		_, err = nullFloat("free")
		assert.Error(t, err)
	})
}

/*
TestReadExport parses a small export and checks header-keyed access.
*/
func TestReadExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")

	payload := "Core SeriesID,Series,Issue Nr,Variant\n" +
		"100,Saga,1.0,\n" +
		"100,Saga,1.0,B\n"
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	rows, err := readExport(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[0]["Core SeriesID"])
	assert.Equal(t, "Saga", rows[0]["Series"])
	assert.Equal(t, "B", rows[1]["Variant"])
}
