package domain

import "time"

// Document is the linear, paginated export representation of a report.
// Renderer-agnostic: the text exporter walks it top to bottom, a future PDF
// backend would do the same.
type Document struct {
	Title       string
	ClientName  string
	GeneratedAt time.Time
	Pages       []DocumentPage
}

type DocumentPage struct {
	Number   int
	Sections []DocumentSection
}

// DocumentSection is one titled block. Absent report sections still appear,
// with Unavailable set, so a reviewer can see what was not collected.
type DocumentSection struct {
	Title       string
	Unavailable string // reason text when the section had no data source
	Rows        []DocumentRow
}

type DocumentRow struct {
	Label string
	Value string
}
