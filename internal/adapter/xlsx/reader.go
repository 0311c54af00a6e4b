// Package xlsx reads the shortage-report workbook exported from the
// household water supply shortage reporting system.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// Workbook column headers, matched exactly against the first row of the
// first sheet.
const (
	ColDrywellID     = "Drywell ID"
	ColShortages     = "Shortages"
	ColIssueStart    = "Approximate Issue Start Date"
	ColRecordCreated = "Record Creation Date"
)

// ReadShortageRows reads every data row of the workbook's first sheet.
// Rows with no cell content are skipped; partially filled rows are kept with
// empty strings for the blank cells. Values come back as the cell text
// excelize renders, which preserves date formatting for the parser.
func ReadShortageRows(path string) ([]domain.RawShortageRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.LoadError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.LoadError{Path: path, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}

	cols, err := columnIndex(rows[0])
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}

	var out []domain.RawShortageRow
	for _, row := range rows[1:] {
		raw := domain.RawShortageRow{
			DrywellID:     cell(row, cols[ColDrywellID]),
			Shortages:     cell(row, cols[ColShortages]),
			IssueStart:    cell(row, cols[ColIssueStart]),
			RecordCreated: cell(row, cols[ColRecordCreated]),
		}
		if raw == (domain.RawShortageRow{}) {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

// columnIndex maps the required headers to their positions in the header row.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, 4)
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{ColDrywellID, ColShortages, ColIssueStart, ColRecordCreated} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return cols, nil
}

// cell returns a value from a possibly ragged row. excelize trims trailing
// empty cells, so short rows are normal.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
