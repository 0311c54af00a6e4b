package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNormalizeShortage(t *testing.T) {
	subs := DefaultSubstitutions()

	t.Run("known phrasings map to the canonical label", func(t *testing.T) {
		for _, phrase := range []string{"Pump not working", "Well has gone dry", "No water from well"} {
			assert.Equal(t, CanonicalShortage, NormalizeShortage(phrase, subs), phrase)
		}
	})

	t.Run("substring inside a longer value is replaced", func(t *testing.T) {
		got := NormalizeShortage("Pump not working - technician visit pending", subs)
		assert.Equal(t, "Dry well (groundwater) - technician visit pending", got)
	})

	t.Run("unrelated text is untouched", func(t *testing.T) {
		assert.Equal(t, "Water quality issue", NormalizeShortage("Water quality issue", subs))
	})

	t.Run("matching is case sensitive, not fuzzy", func(t *testing.T) {
		assert.Equal(t, "pump not working", NormalizeShortage("pump not working", subs))
	})

	t.Run("empty substitution list is a no-op", func(t *testing.T) {
		assert.Equal(t, "Pump not working", NormalizeShortage("Pump not working", nil))
	})
}

func TestParseDate(t *testing.T) {
	t.Run("year-month-day", func(t *testing.T) {
		got, err := ParseDate("issue_date", "2015-03-10")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *date(2015, time.March, 10), *got)
	})

	t.Run("time-of-day component is discarded", func(t *testing.T) {
		got, err := ParseDate("report_date", "2015-03-10 14:22:08")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *date(2015, time.March, 10), *got)
	})

	t.Run("empty text is missing, not an error", func(t *testing.T) {
		got, err := ParseDate("issue_date", "   ")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("malformed text fails loudly", func(t *testing.T) {
		_, err := ParseDate("issue_date", "tenth of March")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "issue_date", perr.Field)
		assert.Equal(t, "tenth of March", perr.Value)
	})
}

func TestCoerceID(t *testing.T) {
	t.Run("plain numeric", func(t *testing.T) {
		id, err := CoerceID("points", "1001")
		require.NoError(t, err)
		assert.Equal(t, int64(1001), id)
	})

	t.Run("whitespace and float artifact", func(t *testing.T) {
		id, err := CoerceID("table", " 1001.0 ")
		require.NoError(t, err)
		assert.Equal(t, int64(1001), id)
	})

	t.Run("non-numeric text", func(t *testing.T) {
		_, err := CoerceID("points", "well-A")
		var jerr *JoinKeyError
		require.ErrorAs(t, err, &jerr)
		assert.Equal(t, "points", jerr.Side)
	})
}

func TestNormalizeRow(t *testing.T) {
	subs := DefaultSubstitutions()

	t.Run("full row", func(t *testing.T) {
		rec, err := NormalizeRow(RawShortageRow{
			DrywellID:     "1001",
			Shortages:     "Pump not working",
			IssueStart:    "2015-03-10",
			RecordCreated: "2015-03-12",
		}, subs)
		require.NoError(t, err)
		assert.Equal(t, int64(1001), rec.DrywellID)
		assert.Equal(t, CanonicalShortage, rec.Shortages)
		assert.Equal(t, *date(2015, time.March, 10), *rec.IssueDate)
		assert.Equal(t, *date(2015, time.March, 12), *rec.ReportDate)
	})

	t.Run("missing issue date is imputed from report date", func(t *testing.T) {
		rec, err := NormalizeRow(RawShortageRow{
			DrywellID:     "1005",
			RecordCreated: "2015-03-10",
		}, subs)
		require.NoError(t, err)
		require.NotNil(t, rec.IssueDate)
		assert.Equal(t, *date(2015, time.March, 10), *rec.IssueDate)
	})

	t.Run("both dates missing stays missing", func(t *testing.T) {
		rec, err := NormalizeRow(RawShortageRow{DrywellID: "1006", Shortages: "Other"}, subs)
		require.NoError(t, err)
		assert.Nil(t, rec.IssueDate)
		assert.Nil(t, rec.ReportDate)
	})

	t.Run("non-numeric identifier", func(t *testing.T) {
		_, err := NormalizeRow(RawShortageRow{DrywellID: "n/a"}, subs)
		var jerr *JoinKeyError
		require.ErrorAs(t, err, &jerr)
		assert.Equal(t, "table", jerr.Side)
	})
}

func TestNormalizeRows(t *testing.T) {
	subs := DefaultSubstitutions()

	t.Run("imputation totality", func(t *testing.T) {
		recs, err := NormalizeRows([]RawShortageRow{
			{DrywellID: "1", RecordCreated: "2014-01-01"},
			{DrywellID: "2", IssueStart: "2013-05-05", RecordCreated: "2013-05-06"},
			{DrywellID: "3", RecordCreated: "2016-12-31"},
		}, subs)
		require.NoError(t, err)
		for _, rec := range recs {
			require.NotNil(t, rec.ReportDate)
			assert.NotNil(t, rec.IssueDate, "record %d", rec.DrywellID)
		}
	})

	t.Run("error names the failing row", func(t *testing.T) {
		_, err := NormalizeRows([]RawShortageRow{
			{DrywellID: "1", RecordCreated: "2014-01-01"},
			{DrywellID: "2", IssueStart: "not a date"},
		}, subs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("normalization completeness", func(t *testing.T) {
		raws := []RawShortageRow{
			{DrywellID: "1", Shortages: "Pump not working"},
			{DrywellID: "2", Shortages: "Well has gone dry"},
			{DrywellID: "3", Shortages: "No water from well"},
		}
		recs, err := NormalizeRows(raws, subs)
		require.NoError(t, err)
		for i, rec := range recs {
			assert.NotEqual(t, raws[i].Shortages, rec.Shortages)
			assert.Equal(t, CanonicalShortage, rec.Shortages)
		}
	})
}
