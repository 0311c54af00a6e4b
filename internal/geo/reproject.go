// Package geo handles coordinate reference systems and spatial predicates
// for the pipeline: EPSG-coded reprojection and the study-area clip.
package geo

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// Transformer reprojects geometries between two EPSG-coded reference
// systems using standard cartographic transforms. Transforming within the
// same system is an exact no-op.
type Transformer struct {
	from int
	to   int
	fn   wgs84.Func
}

// NewTransformer builds a transform from one EPSG code to another. Codes of
// zero (no CRS metadata) or codes outside the transform registry are a
// ProjectionError.
func NewTransformer(fromEPSG, toEPSG int) (*Transformer, error) {
	if fromEPSG == 0 {
		return nil, &domain.ProjectionError{Err: errors.New("source CRS metadata is absent")}
	}
	if toEPSG == 0 {
		return nil, &domain.ProjectionError{Err: errors.New("target CRS is not set")}
	}

	t := &Transformer{from: fromEPSG, to: toEPSG}
	if fromEPSG == toEPSG {
		return t, nil
	}

	epsg := wgs84.EPSG()
	from := epsg.Code(fromEPSG)
	if from == nil {
		return nil, &domain.ProjectionError{EPSG: fromEPSG, Err: errors.New("unsupported EPSG code")}
	}
	to := epsg.Code(toEPSG)
	if to == nil {
		return nil, &domain.ProjectionError{EPSG: toEPSG, Err: errors.New("unsupported EPSG code")}
	}

	t.fn = wgs84.Transform(from, to)
	return t, nil
}

// Point reprojects a single coordinate pair.
func (t *Transformer) Point(p orb.Point) orb.Point {
	if t.from == t.to {
		return p
	}
	x, y, _ := t.fn(p.X(), p.Y(), 0)
	return orb.Point{x, y}
}

// PointSet returns a new collection with every geometry reprojected.
// Attribute records and feature order are untouched.
func (t *Transformer) PointSet(ps domain.PointSet) domain.PointSet {
	out := domain.PointSet{
		EPSG:   t.to,
		Fields: ps.Fields,
		Points: make([]domain.WellPoint, len(ps.Points)),
	}
	for i, pt := range ps.Points {
		out.Points[i] = domain.WellPoint{Geometry: t.Point(pt.Geometry), Attrs: pt.Attrs}
	}
	return out
}

// Boundary returns a new boundary with every ring vertex reprojected.
func (t *Transformer) Boundary(b domain.Boundary) domain.Boundary {
	out := domain.Boundary{EPSG: t.to, Geometry: make(orb.MultiPolygon, len(b.Geometry))}
	for i, poly := range b.Geometry {
		outPoly := make(orb.Polygon, len(poly))
		for j, ring := range poly {
			outRing := make(orb.Ring, len(ring))
			for k, p := range ring {
				outRing[k] = t.Point(p)
			}
			outPoly[j] = outRing
		}
		out.Geometry[i] = outPoly
	}
	return out
}
