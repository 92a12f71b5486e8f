// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Package schema defines explicit table/column maps for the library tables.
//
// Stores reference these instead of string literals so that a column rename
// is a single-file change and a typo is a compile error, not a runtime one.
package schema

// SeriesTable represents the 'series' table.
type SeriesTable struct {
	Table       string
	SeriesID    string
	Title       string
	TitleNorm   string
	Publisher   string
	SeriesGroup string
	Age         string
}

// Series is the schema definition for the series table.
var Series = SeriesTable{
	Table:       "series",
	SeriesID:    "series_id",
	Title:       "title",
	TitleNorm:   "title_norm",
	Publisher:   "publisher",
	SeriesGroup: "series_group",
	Age:         "age",
}

// Columns returns the API-visible columns in SELECT order. TitleNorm is a
// derived search column and is never returned to clients.
func (t SeriesTable) Columns() []string {
	return []string{t.SeriesID, t.Title, t.Publisher, t.SeriesGroup, t.Age}
}
