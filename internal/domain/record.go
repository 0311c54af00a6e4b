package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// Point-layer attribute names. DBF field names are capped at ten characters,
// which is why Report_Dat lost its final "e" upstream.
const (
	FieldDrywellID = "Drywell_ID"
	FieldReportDat = "Report_Dat"
)

// Attribute names added to the exported layer by the join.
const (
	FieldShortages  = "Shortages"
	FieldIssueDate  = "issue_date"
	FieldReportDate = "rpt_date"
	FieldProcessed  = "processed"
)

// WellPoint is one reported well-failure location: a planar point geometry
// plus its DBF attribute record, keyed by field name.
type WellPoint struct {
	Geometry orb.Point
	Attrs    map[string]string
}

// PointSet is an ordered collection of well points in a single CRS.
// EPSG 0 means the source carried no recognizable CRS metadata.
// Fields preserves the source layer's column order.
type PointSet struct {
	EPSG   int
	Fields []string
	Points []WellPoint
}

// Boundary is the study-area polygon, possibly multi-part, used only as a
// spatial predicate after load.
type Boundary struct {
	EPSG     int
	Geometry orb.MultiPolygon
}

// RawShortageRow mirrors the workbook columns before normalization.
// All values are the cell text as read; empty string means an empty cell.
type RawShortageRow struct {
	DrywellID     string // "Drywell ID"
	Shortages     string // "Shortages"
	IssueStart    string // "Approximate Issue Start Date"
	RecordCreated string // "Record Creation Date"
}

// ShortageRecord is a normalized workbook row. Dates are calendar dates
// (midnight UTC); nil means missing. Invariant after normalization:
// IssueDate is non-nil whenever ReportDate is non-nil.
type ShortageRecord struct {
	DrywellID  int64
	Shortages  string
	IssueDate  *time.Time
	ReportDate *time.Time
}

// JoinedPoint is a well point after the left join. Unmatched points keep
// their geometry with Matched false and zero-valued tabular attributes.
type JoinedPoint struct {
	WellPoint
	DrywellID   int64
	Matched     bool
	Shortages   string
	IssueDate   *time.Time
	ReportDate  *time.Time
	ProcessedAt time.Time
}

// Window is an inclusive year range for the issue-date filter.
type Window struct {
	StartYear int
	EndYear   int
}

// Contains reports whether t falls inside the window. A nil (missing) date
// resolves out of range.
func (w Window) Contains(t *time.Time) bool {
	if t == nil {
		return false
	}
	y := t.Year()
	return y >= w.StartYear && y <= w.EndYear
}
