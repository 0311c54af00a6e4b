// Package pipeline orchestrates the dry-well ETL: load geometries, reproject,
// clip to the study area, normalize the shortage table, join, filter to the
// date window, and export. Stages run strictly in sequence; each consumes the
// full output of its predecessor.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/wellwatch/drywell-etl/internal/domain"
	"github.com/wellwatch/drywell-etl/internal/geo"
	"github.com/wellwatch/drywell-etl/internal/observability"
)

// GeometryLoader reads the point and boundary layers.
type GeometryLoader interface {
	PointLayer(path string) (domain.PointSet, error)
	BoundaryLayer(path string) (domain.Boundary, error)
}

// TableLoader reads the shortage-report workbook.
type TableLoader interface {
	ShortageRows(path string) ([]domain.RawShortageRow, error)
}

// Exporter writes the final joined point layer.
type Exporter interface {
	Export(path string, epsg int, fields []string, points []domain.JoinedPoint) error
}

// Options carries the per-run settings the pipeline needs.
type Options struct {
	PointsPath   string
	BoundaryPath string
	ReportsPath  string
	OutputPath   string

	SourceEPSG int // fallback when a layer has no usable .prj sidecar; 0 requires one
	TargetEPSG int

	Window        domain.Window
	Substitutions []domain.Substitution
}

// Summary reports row counts per stage and any non-fatal warnings.
type Summary struct {
	PointsLoaded     int
	PointsInBoundary int
	TableRows        int
	RowsInWindow     int
	JoinMatches      int
	PointsExported   int
	Warnings         []string
}

// Pipeline wires the stages together.
type Pipeline struct {
	geoms    GeometryLoader
	table    TableLoader
	exporter Exporter
	logger   *slog.Logger
	metrics  *observability.Metrics
	opts     Options
}

// New creates a Pipeline with the given stages and observability.
func New(g GeometryLoader, t TableLoader, e Exporter, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		geoms:    g,
		table:    t,
		exporter: e,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
	}
}

// Run executes the pipeline once. Any error except an empty intermediate
// result halts the run at the failing stage; nothing is written on failure
// since export is the final stage.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	points, boundary, err := p.loadGeometries(ctx)
	if err != nil {
		return sum, err
	}
	sum.PointsLoaded = len(points.Points)
	p.metrics.PointsLoaded.Set(float64(sum.PointsLoaded))

	clipped := p.timed("spatial_filter", func() domain.PointSet {
		return geo.ClipPoints(points, boundary)
	})
	sum.PointsInBoundary = len(clipped.Points)
	p.metrics.PointsInBoundary.Set(float64(sum.PointsInBoundary))
	p.logger.Info("spatial filter applied",
		"points_in", sum.PointsLoaded, "points_kept", sum.PointsInBoundary)
	if sum.PointsInBoundary == 0 {
		p.warn(&sum, &domain.EmptyResultWarning{Stage: "spatial filter"})
	}

	recs, err := p.loadTable(ctx, &sum)
	if err != nil {
		return sum, err
	}

	joined, err := p.joinAndFilter(ctx, clipped, recs, &sum)
	if err != nil {
		return sum, err
	}

	start := time.Now()
	if err := p.exporter.Export(p.opts.OutputPath, p.opts.TargetEPSG, clipped.Fields, joined); err != nil {
		return sum, err
	}
	p.metrics.StageDuration.WithLabelValues("export").Observe(time.Since(start).Seconds())
	sum.PointsExported = len(joined)
	p.metrics.PointsExported.Set(float64(sum.PointsExported))
	p.logger.Info("export complete", "path", p.opts.OutputPath, "points", sum.PointsExported)

	return sum, nil
}

// loadGeometries reads both layers and reprojects them into the target CRS.
// A layer without CRS metadata falls back to the configured source EPSG;
// with no fallback configured the load fails with a ProjectionError.
func (p *Pipeline) loadGeometries(ctx context.Context) (domain.PointSet, domain.Boundary, error) {
	if err := ctx.Err(); err != nil {
		return domain.PointSet{}, domain.Boundary{}, err
	}

	start := time.Now()
	points, err := p.geoms.PointLayer(p.opts.PointsPath)
	if err != nil {
		return domain.PointSet{}, domain.Boundary{}, err
	}
	boundary, err := p.geoms.BoundaryLayer(p.opts.BoundaryPath)
	if err != nil {
		return domain.PointSet{}, domain.Boundary{}, err
	}
	p.metrics.StageDuration.WithLabelValues("load_geometries").Observe(time.Since(start).Seconds())

	start = time.Now()
	pointsTr, err := geo.NewTransformer(fallbackEPSG(points.EPSG, p.opts.SourceEPSG), p.opts.TargetEPSG)
	if err != nil {
		return domain.PointSet{}, domain.Boundary{}, err
	}
	boundaryTr, err := geo.NewTransformer(fallbackEPSG(boundary.EPSG, p.opts.SourceEPSG), p.opts.TargetEPSG)
	if err != nil {
		return domain.PointSet{}, domain.Boundary{}, err
	}

	points = pointsTr.PointSet(points)
	boundary = boundaryTr.Boundary(boundary)
	p.metrics.StageDuration.WithLabelValues("reproject").Observe(time.Since(start).Seconds())

	p.logger.Info("geometries loaded",
		"points", len(points.Points),
		"boundary_parts", len(boundary.Geometry),
		"target_epsg", p.opts.TargetEPSG)
	return points, boundary, nil
}

// loadTable reads and normalizes the workbook, then pre-filters it to the
// date window before the join.
func (p *Pipeline) loadTable(ctx context.Context, sum *Summary) ([]domain.ShortageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	raws, err := p.table.ShortageRows(p.opts.ReportsPath)
	if err != nil {
		return nil, err
	}
	sum.TableRows = len(raws)
	p.metrics.TableRows.Set(float64(sum.TableRows))

	recs, err := domain.NormalizeRows(raws, p.opts.Substitutions)
	if err != nil {
		return nil, err
	}
	recs = domain.FilterWindow(recs, p.opts.Window)
	p.metrics.StageDuration.WithLabelValues("normalize_table").Observe(time.Since(start).Seconds())

	sum.RowsInWindow = len(recs)
	p.metrics.RowsInWindow.Set(float64(sum.RowsInWindow))
	p.logger.Info("shortage table normalized",
		"rows", sum.TableRows, "rows_in_window", sum.RowsInWindow)
	if sum.TableRows > 0 && sum.RowsInWindow == 0 {
		p.warn(sum, &domain.EmptyResultWarning{Stage: "table window pre-filter"})
	}

	return recs, nil
}

// joinAndFilter left-joins the table onto the clipped points, imputes any
// still-missing issue dates from the point layer's Report_Dat, and applies
// the final date-window filter.
func (p *Pipeline) joinAndFilter(ctx context.Context, clipped domain.PointSet, recs []domain.ShortageRecord, sum *Summary) ([]domain.JoinedPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	joined, err := domain.LeftJoin(clipped, recs)
	if err != nil {
		return nil, err
	}
	for _, j := range joined {
		if j.Matched {
			sum.JoinMatches++
		}
	}
	p.metrics.JoinMatches.Set(float64(sum.JoinMatches))

	joined, err = domain.ImputeFromReportDat(joined)
	if err != nil {
		return nil, err
	}
	kept := domain.FilterJoinedWindow(joined, p.opts.Window)
	p.metrics.StageDuration.WithLabelValues("join_and_filter").Observe(time.Since(start).Seconds())

	p.logger.Info("join and date filter applied",
		"points", len(joined),
		"matched", sum.JoinMatches,
		"in_window", len(kept),
		"window_start", p.opts.Window.StartYear,
		"window_end", p.opts.Window.EndYear)
	if len(joined) > 0 && len(kept) == 0 {
		p.warn(sum, &domain.EmptyResultWarning{Stage: "date-window filter"})
	}

	return kept, nil
}

// warn records a non-fatal empty-result warning without halting the run.
func (p *Pipeline) warn(sum *Summary, w *domain.EmptyResultWarning) {
	p.logger.Warn("empty intermediate result", "stage", w.Stage)
	p.metrics.EmptyResult.Set(1)
	sum.Warnings = append(sum.Warnings, w.Error())
}

// timed runs fn and records its duration under the given stage label.
func (p *Pipeline) timed(stage string, fn func() domain.PointSet) domain.PointSet {
	start := time.Now()
	out := fn()
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return out
}

// fallbackEPSG prefers the layer's own CRS metadata over the configured one.
func fallbackEPSG(layer, configured int) int {
	if layer != 0 {
		return layer
	}
	return configured
}
