// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package textnorm folds Unicode text into a canonical search form.
//
// # Usage
//
// Series titles are stored alongside a normalized shadow column so that
// title searches match case- and accent-insensitively ("Tintín" matches
// "tintin"). The same fold is applied to the incoming search term, keeping
// the comparison a plain deterministic substring match in SQL.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts s into its canonical search form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Recomposes to NFC and lowercases.
// 4. Collapses runs of whitespace into single spaces and trims the ends.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the input.
		folded = s
	}

	folded = strings.ToLower(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
