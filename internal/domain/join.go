package domain

// FilterWindow keeps the records whose issue date falls inside the window.
// Applied to the tabular side before joining to reduce join cardinality.
func FilterWindow(recs []ShortageRecord, w Window) []ShortageRecord {
	out := make([]ShortageRecord, 0, len(recs))
	for _, rec := range recs {
		if w.Contains(rec.IssueDate) {
			out = append(out, rec)
		}
	}
	return out
}

// LeftJoin attaches shortage records to well points on the numeric
// Drywell_ID. Every point is retained in input order; points without a match
// carry Matched false and zero-valued tabular attributes. The point-side
// identifier is coerced here; a non-numeric value is a JoinKeyError.
// When the same ID appears in multiple records the first one wins.
func LeftJoin(points PointSet, recs []ShortageRecord) ([]JoinedPoint, error) {
	byID := make(map[int64]ShortageRecord, len(recs))
	for _, rec := range recs {
		if _, dup := byID[rec.DrywellID]; !dup {
			byID[rec.DrywellID] = rec
		}
	}

	joined := make([]JoinedPoint, 0, len(points.Points))
	for _, pt := range points.Points {
		id, err := CoerceID("points", pt.Attrs[FieldDrywellID])
		if err != nil {
			return nil, err
		}

		j := JoinedPoint{WellPoint: pt, DrywellID: id}
		if rec, ok := byID[id]; ok {
			j.Matched = true
			j.Shortages = rec.Shortages
			j.IssueDate = rec.IssueDate
			j.ReportDate = rec.ReportDate
		}
		joined = append(joined, j)
	}
	return joined, nil
}

// ImputeFromReportDat fills any still-missing issue date from the point
// layer's own Report_Dat attribute. This is the second, independently sourced
// report date (see package doc) and the only date source for unmatched
// points. Malformed Report_Dat text is a ParseError.
func ImputeFromReportDat(joined []JoinedPoint) ([]JoinedPoint, error) {
	out := make([]JoinedPoint, 0, len(joined))
	for _, j := range joined {
		if j.IssueDate == nil {
			d, err := ParseDate(FieldReportDat, j.Attrs[FieldReportDat])
			if err != nil {
				return nil, err
			}
			j.IssueDate = d
		}
		out = append(out, j)
	}
	return out, nil
}

// FilterJoinedWindow keeps the joined points whose resolved issue date falls
// inside the window and stamps survivors with the processing time. Points
// whose issue date could not be resolved from any source are excluded.
func FilterJoinedWindow(joined []JoinedPoint, w Window) []JoinedPoint {
	now := clock.Now().UTC()
	out := make([]JoinedPoint, 0, len(joined))
	for _, j := range joined {
		if !w.Contains(j.IssueDate) {
			continue
		}
		j.ProcessedAt = now
		out = append(out, j)
	}
	return out
}
