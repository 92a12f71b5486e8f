// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package schema

// IssueTable represents the 'issues' table.
type IssueTable struct {
	Table     string
	IssueID   string
	SeriesID  string
	IssueNr   string
	Variant   string
	Title     string
	Subtitle  string
	FullTitle string
	CoverDate string
	CoverYear string
	StoryArc  string
}

// Issue is the schema definition for the issues table.
//
// The composite unique index over (SeriesID, IssueNr, Variant) is the source
// of truth for issue uniqueness; see migrations/000001.
var Issue = IssueTable{
	Table:     "issues",
	IssueID:   "issue_id",
	SeriesID:  "series_id",
	IssueNr:   "issue_nr",
	Variant:   "variant",
	Title:     "title",
	Subtitle:  "subtitle",
	FullTitle: "full_title",
	CoverDate: "cover_date",
	CoverYear: "cover_year",
	StoryArc:  "story_arc",
}

func (t IssueTable) Columns() []string {
	return []string{
		t.IssueID, t.SeriesID, t.IssueNr, t.Variant, t.Title, t.Subtitle,
		t.FullTitle, t.CoverDate, t.CoverYear, t.StoryArc,
	}
}
