package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// writeWorkbook builds a minimal workbook fixture with the given rows under
// the standard header.
func writeWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	all := append([][]string{{ColDrywellID, ColShortages, ColIssueStart, ColRecordCreated}}, rows...)
	for r, row := range all {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "shortage_reports.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadShortageRows(t *testing.T) {
	t.Run("full rows", func(t *testing.T) {
		path := writeWorkbook(t, [][]string{
			{"1001", "Pump not working", "2015-03-10", "2015-03-12"},
			{"1005", "No water from well", "", "2012-11-30"},
		})

		rows, err := ReadShortageRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.RawShortageRow{
			DrywellID:     "1001",
			Shortages:     "Pump not working",
			IssueStart:    "2015-03-10",
			RecordCreated: "2015-03-12",
		}, rows[0])
		assert.Equal(t, "", rows[1].IssueStart)
	})

	t.Run("ragged rows read as empty cells", func(t *testing.T) {
		path := writeWorkbook(t, [][]string{{"1006"}})

		rows, err := ReadShortageRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "1006", rows[0].DrywellID)
		assert.Equal(t, "", rows[0].RecordCreated)
	})

	t.Run("blank rows are skipped", func(t *testing.T) {
		path := writeWorkbook(t, [][]string{
			{"1001", "Other", "2014-01-01", "2014-01-02"},
			{"", "", "", ""},
			{"1002", "Other", "2014-02-01", "2014-02-02"},
		})

		rows, err := ReadShortageRows(path)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadShortageRows(filepath.Join(t.TempDir(), "nope.xlsx"))
		var lerr *domain.LoadError
		require.ErrorAs(t, err, &lerr)
	})

	t.Run("missing required column", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)
		require.NoError(t, f.SetCellValue(sheet, "A1", ColDrywellID))
		require.NoError(t, f.SetCellValue(sheet, "B1", "Notes"))
		path := filepath.Join(t.TempDir(), "bad.xlsx")
		require.NoError(t, f.SaveAs(path))

		_, err := ReadShortageRows(path)
		var lerr *domain.LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Contains(t, err.Error(), ColShortages)
	})
}
