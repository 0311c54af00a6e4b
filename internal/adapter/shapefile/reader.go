package shapefile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// ReadPoints loads a point layer with its full attribute table. Features keep
// their file order. The returned EPSG is 0 when no .prj sidecar is present or
// its projection text is unrecognized.
func ReadPoints(path string) (domain.PointSet, error) {
	r, err := shp.Open(path)
	if err != nil {
		return domain.PointSet{}, &domain.LoadError{Path: path, Err: err}
	}
	defer r.Close()

	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	ps := domain.PointSet{EPSG: readPRJ(path), Fields: names}
	for r.Next() {
		n, shape := r.Shape()

		var x, y float64
		switch p := shape.(type) {
		case *shp.Point:
			x, y = p.X, p.Y
		case *shp.PointZ:
			x, y = p.X, p.Y
		case *shp.PointM:
			x, y = p.X, p.Y
		default:
			return domain.PointSet{}, &domain.LoadError{
				Path: path,
				Err:  fmt.Errorf("feature %d: not a point geometry (%T)", n, shape),
			}
		}

		attrs := make(map[string]string, len(fields))
		for i := range fields {
			// DBF values are fixed-width and space padded.
			attrs[names[i]] = strings.TrimSpace(r.ReadAttribute(n, i))
		}
		ps.Points = append(ps.Points, domain.WellPoint{Geometry: orb.Point{x, y}, Attrs: attrs})
	}
	if err := readErr(r); err != nil {
		return domain.PointSet{}, &domain.LoadError{Path: path, Err: err}
	}
	return ps, nil
}

// readErr surfaces a read failure left behind by Next, which returns false
// both at end of file and on error. Without this check a truncated .shp
// would silently load as a partial feature set.
func readErr(r *shp.Reader) error {
	if err := r.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ReadBoundary loads a polygon layer as a single multi-part boundary. Rings
// follow the shapefile convention: clockwise outer rings, counter-clockwise
// holes. All polygon features in the layer are merged into one boundary.
func ReadBoundary(path string) (domain.Boundary, error) {
	r, err := shp.Open(path)
	if err != nil {
		return domain.Boundary{}, &domain.LoadError{Path: path, Err: err}
	}
	defer r.Close()

	b := domain.Boundary{EPSG: readPRJ(path)}
	for r.Next() {
		n, shape := r.Shape()

		var parts []int32
		var pts []shp.Point
		switch poly := shape.(type) {
		case *shp.Polygon:
			parts, pts = poly.Parts, poly.Points
		case *shp.PolygonZ:
			parts, pts = poly.Parts, poly.Points
		default:
			return domain.Boundary{}, &domain.LoadError{
				Path: path,
				Err:  fmt.Errorf("feature %d: not a polygon geometry (%T)", n, shape),
			}
		}

		b.Geometry = append(b.Geometry, ringsToPolygons(parts, pts)...)
	}
	if err := readErr(r); err != nil {
		return domain.Boundary{}, &domain.LoadError{Path: path, Err: err}
	}

	if len(b.Geometry) == 0 {
		return domain.Boundary{}, &domain.LoadError{Path: path, Err: fmt.Errorf("no polygon features")}
	}
	return b, nil
}

// ringsToPolygons splits a shapefile part list into orb polygons, attaching
// counter-clockwise rings as holes of the preceding outer ring.
func ringsToPolygons(parts []int32, pts []shp.Point) []orb.Polygon {
	var polys []orb.Polygon
	for i := range parts {
		start := int(parts[i])
		end := len(pts)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}

		ring := make(orb.Ring, 0, end-start+1)
		for _, p := range pts[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}

		if ring.Orientation() == orb.CCW && len(polys) > 0 {
			polys[len(polys)-1] = append(polys[len(polys)-1], ring)
			continue
		}
		polys = append(polys, orb.Polygon{ring})
	}
	return polys
}
