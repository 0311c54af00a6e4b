package shapefile

import (
	"time"

	shp "github.com/jonas-p/go-shp"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// attrWidth is the DBF column width for attribute values. All columns are
// written as text; downstream consumers re-coerce types the same way this
// pipeline does.
const attrWidth = 64

// WritePointLayer writes a point shapefile with its attribute table and .prj
// sidecar. Column order follows ps.Fields; missing attribute values are
// written as empty strings.
func WritePointLayer(path string, ps domain.PointSet) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	defer w.Close()

	fields := make([]shp.Field, len(ps.Fields))
	for i, name := range ps.Fields {
		fields[i] = shp.StringField(name, attrWidth)
	}
	if err := w.SetFields(fields); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}

	for row, pt := range ps.Points {
		w.Write(&shp.Point{X: pt.Geometry.X(), Y: pt.Geometry.Y()})
		for col, name := range ps.Fields {
			if err := w.WriteAttribute(row, col, pt.Attrs[name]); err != nil {
				return &domain.WriteError{Path: path, Err: err}
			}
		}
	}

	if err := writePRJ(path, ps.EPSG); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	return nil
}

// WriteBoundaryLayer writes a polygon shapefile for a boundary. Used by the
// fixture generator and tests; the pipeline itself never writes boundaries.
func WriteBoundaryLayer(path string, b domain.Boundary) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	defer w.Close()

	if err := w.SetFields([]shp.Field{shp.StringField("Name", 25)}); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}

	for row, poly := range b.Geometry {
		rings := make([][]shp.Point, len(poly))
		for i, ring := range poly {
			rings[i] = make([]shp.Point, len(ring))
			for j, p := range ring {
				rings[i][j] = shp.Point{X: p.X(), Y: p.Y()}
			}
		}
		w.Write((*shp.Polygon)(shp.NewPolyLine(rings)))
		if err := w.WriteAttribute(row, 0, "study_area"); err != nil {
			return &domain.WriteError{Path: path, Err: err}
		}
	}

	if err := writePRJ(path, b.EPSG); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	return nil
}

// ExportJoined writes the final joined point collection: all source columns
// plus the attributes accumulated by the join. Dates are written as
// YYYY-MM-DD text (empty when missing), the processed stamp as RFC 3339.
func ExportJoined(path string, epsg int, fields []string, points []domain.JoinedPoint) error {
	out := domain.PointSet{
		EPSG: epsg,
		Fields: append(append([]string{}, fields...),
			domain.FieldShortages,
			domain.FieldIssueDate,
			domain.FieldReportDate,
			domain.FieldProcessed,
		),
	}

	for _, j := range points {
		attrs := make(map[string]string, len(j.Attrs)+4)
		for k, v := range j.Attrs {
			attrs[k] = v
		}
		attrs[domain.FieldShortages] = j.Shortages
		attrs[domain.FieldIssueDate] = formatDate(j.IssueDate)
		attrs[domain.FieldReportDate] = formatDate(j.ReportDate)
		if !j.ProcessedAt.IsZero() {
			attrs[domain.FieldProcessed] = j.ProcessedAt.Format(time.RFC3339)
		}
		out.Points = append(out.Points, domain.WellPoint{Geometry: j.Geometry, Attrs: attrs})
	}

	return WritePointLayer(path, out)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
