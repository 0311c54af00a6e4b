package shapefile

import "github.com/wellwatch/drywell-etl/internal/domain"

// Loader adapts the package read functions to the pipeline's GeometryLoader.
type Loader struct{}

func (Loader) PointLayer(path string) (domain.PointSet, error) {
	return ReadPoints(path)
}

func (Loader) BoundaryLayer(path string) (domain.Boundary, error) {
	return ReadBoundary(path)
}

// Exporter adapts ExportJoined to the pipeline's Exporter.
type Exporter struct{}

func (Exporter) Export(path string, epsg int, fields []string, points []domain.JoinedPoint) error {
	return ExportJoined(path, epsg, fields, points)
}
