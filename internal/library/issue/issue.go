// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package issue implements the middle level of the library hierarchy.
//
// An issue belongs to exactly one series and is unique within it by its
// (issue_nr, variant) pair. issue_nr is a CLZ-normalized string ("1",
// "1.5", "Annual 1"), never a number. The variant designation is never
// null in storage; the empty string is the base printing.
package issue

import (
	"strconv"

	"github.com/longboxhq/longbox/pkg/pagination"
	"github.com/longboxhq/longbox/pkg/patch"
)

// Issue represents a stored issue of a series.
type Issue struct {
	IssueID   int64   `json:"issue_id"`
	SeriesID  int64   `json:"series_id"`
	IssueNr   string  `json:"issue_nr"`
	Variant   string  `json:"variant"`
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	FullTitle *string `json:"full_title"`
	CoverDate *string `json:"cover_date"`
	CoverYear *int64  `json:"cover_year"`
	StoryArc  *string `json:"story_arc"`
}

// CreateRequest is the payload accepted when creating an issue. Variant is
// a pointer so that both omitted and explicit null coerce to the base
// printing ("").
type CreateRequest struct {
	IssueNr   string  `json:"issue_nr"`
	Variant   *string `json:"variant"`
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	FullTitle *string `json:"full_title"`
	CoverDate *string `json:"cover_date"`
	CoverYear *int64  `json:"cover_year"`
	StoryArc  *string `json:"story_arc"`
}

// Patch is the sparse update payload for an issue.
type Patch struct {
	IssueNr   patch.Field[string] `json:"issue_nr"`
	Variant   patch.Field[string] `json:"variant"`
	Title     patch.Field[string] `json:"title"`
	Subtitle  patch.Field[string] `json:"subtitle"`
	FullTitle patch.Field[string] `json:"full_title"`
	CoverDate patch.Field[string] `json:"cover_date"`
	CoverYear patch.Field[int64]  `json:"cover_year"`
	StoryArc  patch.Field[string] `json:"story_arc"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return !p.IssueNr.IsSet() && !p.Variant.IsSet() && !p.Title.IsSet() &&
		!p.Subtitle.IsSet() && !p.FullTitle.IsSet() && !p.CoverDate.IsSet() &&
		!p.CoverYear.IsSet() && !p.StoryArc.IsSet()
}

// Filter holds the indexed predicates for an issue listing within a series.
type Filter struct {
	// StoryArc matches exactly.
	StoryArc string
}

// Fingerprint binds page tokens to the parent series and this filter set.
func (f Filter) Fingerprint(seriesID int64) string {
	return pagination.Fingerprint("issues", strconv.FormatInt(seriesID, 10), f.StoryArc)
}

// Position is a point in the (issue_nr, variant, issue_id) ordering that
// issue listings resume strictly after.
type Position struct {
	IssueNr string
	Variant string
	IssueID int64
}

// CursorKeys returns the sort-key tuple of i for cursor encoding. The
// issue_id tiebreak makes the ordering total even across issues sharing an
// issue_nr and variant, which cannot happen within one series but keeps the
// tuple self-contained.
func CursorKeys(i *Issue) []string {
	return []string{i.IssueNr, i.Variant, strconv.FormatInt(i.IssueID, 10)}
}

const (
	FieldIssueNr   = "issue_nr"
	FieldVariant   = "variant"
	FieldTitle     = "title"
	FieldSubtitle  = "subtitle"
	FieldFullTitle = "full_title"
	FieldCoverDate = "cover_date"
	FieldCoverYear = "cover_year"
	FieldStoryArc  = "story_arc"
)
