package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CanonicalShortage is the single label the known ad-hoc phrasings of a
// pump/well failure collapse to.
const CanonicalShortage = "Dry well (groundwater)"

// Substitution maps one exact source phrasing to its canonical replacement.
type Substitution struct {
	From string
	To   string
}

// DefaultSubstitutions returns the three known variant phrasings observed in
// the Shortages column. Matching is exact substring replacement, case- and
// wording-sensitive.
func DefaultSubstitutions() []Substitution {
	return []Substitution{
		{From: "Pump not working", To: CanonicalShortage},
		{From: "Well has gone dry", To: CanonicalShortage},
		{From: "No water from well", To: CanonicalShortage},
	}
}

// NormalizeShortage applies the substitution list to a category value in
// order. Substitutions are plain substring replacements, not fuzzy matches.
func NormalizeShortage(value string, subs []Substitution) string {
	for _, s := range subs {
		value = strings.ReplaceAll(value, s.From, s.To)
	}
	return value
}

// dateLayouts are the representations observed across the workbook export
// and the point-layer DBF. Year-month-day is the expected form; the
// timestamp variants appear when the export preserved cell time components.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"1/2/06 15:04",
	"01-02-06",
}

// ParseDate parses date text into a calendar date (midnight UTC), discarding
// any time-of-day component. Empty or whitespace-only text returns nil
// (missing). Non-empty text that matches no known layout is a ParseError.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, &ParseError{Field: field, Value: value, Err: errors.New("unrecognized date format")}
}

// CoerceID parses an identifier as a whole number. The DBF stores numeric
// IDs as text, sometimes with a trailing ".0" from an earlier float pass.
func CoerceID(side, value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimSuffix(trimmed, ".0")
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, &JoinKeyError{Side: side, Value: value, Err: err}
	}
	return id, nil
}

// NormalizeRow turns one raw workbook row into a ShortageRecord: coerces the
// identifier, substitutes the category text, parses both dates, and imputes a
// missing issue date from the report date. With both dates missing the issue
// date stays nil and the record falls out at the window filter.
func NormalizeRow(raw RawShortageRow, subs []Substitution) (ShortageRecord, error) {
	id, err := CoerceID("table", raw.DrywellID)
	if err != nil {
		return ShortageRecord{}, err
	}

	issue, err := ParseDate("issue_date", raw.IssueStart)
	if err != nil {
		return ShortageRecord{}, err
	}
	report, err := ParseDate("report_date", raw.RecordCreated)
	if err != nil {
		return ShortageRecord{}, err
	}
	if issue == nil {
		issue = report
	}

	return ShortageRecord{
		DrywellID:  id,
		Shortages:  NormalizeShortage(raw.Shortages, subs),
		IssueDate:  issue,
		ReportDate: report,
	}, nil
}

// NormalizeRows normalizes every workbook row, halting on the first error.
func NormalizeRows(raws []RawShortageRow, subs []Substitution) ([]ShortageRecord, error) {
	recs := make([]ShortageRecord, 0, len(raws))
	for i, raw := range raws {
		rec, err := NormalizeRow(raw, subs)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
