package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// Within reports whether p lies within or on the boundary polygon. Points
// exactly on an edge count as inside.
func Within(b domain.Boundary, p orb.Point) bool {
	return planar.MultiPolygonContains(b.Geometry, p)
}

// ClipPoints returns the order-preserving subset of points inside the
// boundary. Attributes are not touched. Both inputs must already share a CRS.
func ClipPoints(ps domain.PointSet, b domain.Boundary) domain.PointSet {
	out := domain.PointSet{EPSG: ps.EPSG, Fields: ps.Fields}
	for _, pt := range ps.Points {
		if Within(b, pt.Geometry) {
			out.Points = append(out.Points, pt)
		}
	}
	return out
}
