// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package series implements the top level of the library hierarchy.
//
// A series is identified by a caller-supplied series_id that matches the
// external CLZ catalog, so creation never invents identifiers. Deleting a
// series cascades to its issues and their copies.
package series

import (
	"strconv"

	"github.com/longboxhq/longbox/pkg/pagination"
	"github.com/longboxhq/longbox/pkg/patch"
	"github.com/longboxhq/longbox/pkg/textnorm"
)

// Series represents a stored comic series.
type Series struct {
	SeriesID    int64   `json:"series_id"`
	Title       *string `json:"title"`
	Publisher   *string `json:"publisher"`
	SeriesGroup *string `json:"series_group"`
	Age         *string `json:"age"`
}

// CreateRequest is the payload accepted when creating a series.
type CreateRequest struct {
	SeriesID    int64   `json:"series_id"`
	Title       *string `json:"title"`
	Publisher   *string `json:"publisher"`
	SeriesGroup *string `json:"series_group"`
	Age         *string `json:"age"`
}

// Patch is the sparse update payload for a series. Omitted fields are left
// untouched; explicit nulls clear the column.
type Patch struct {
	Title       patch.Field[string] `json:"title"`
	Publisher   patch.Field[string] `json:"publisher"`
	SeriesGroup patch.Field[string] `json:"series_group"`
	Age         patch.Field[string] `json:"age"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Publisher.IsSet() && !p.SeriesGroup.IsSet() && !p.Age.IsSet()
}

// Filter holds the indexed predicates for a series listing.
type Filter struct {
	// Publisher matches exactly.
	Publisher string
	// TitleSearch matches as a folded substring of the title.
	TitleSearch string
}

// Fingerprint binds page tokens to this filter set. The search term is
// folded first so that equivalent spellings share cursors.
func (f Filter) Fingerprint() string {
	return pagination.Fingerprint("series", f.Publisher, textnorm.Fold(f.TitleSearch))
}

// CursorKeys returns the sort-key tuple of s for cursor encoding. Series
// listings order by series_id alone, which is unique, so the tuple has a
// single element.
func CursorKeys(s *Series) []string {
	return []string{strconv.FormatInt(s.SeriesID, 10)}
}

const (
	FieldSeriesID    = "series_id"
	FieldTitle       = "title"
	FieldPublisher   = "publisher"
	FieldSeriesGroup = "series_group"
	FieldAge         = "age"
)
