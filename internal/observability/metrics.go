package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus gauges and histograms for one pipeline run.
// Each Metrics instance carries its own registry: the job is one-shot, so
// results are exported as a textfile at the end of the run rather than
// scraped, and tests can build instances freely without registration clashes.
type Metrics struct {
	registry *prometheus.Registry

	PointsLoaded     prometheus.Gauge
	PointsInBoundary prometheus.Gauge
	TableRows        prometheus.Gauge
	RowsInWindow     prometheus.Gauge
	JoinMatches      prometheus.Gauge
	PointsExported   prometheus.Gauge
	EmptyResult      prometheus.Gauge

	StageDuration *prometheus.HistogramVec // label: stage
}

// NewMetrics creates and registers all pipeline metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PointsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "points_loaded",
			Help:      "Well points read from the source layer.",
		}),
		PointsInBoundary: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "points_in_boundary",
			Help:      "Well points inside the study-area boundary.",
		}),
		TableRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "table_rows",
			Help:      "Shortage-report rows read from the workbook.",
		}),
		RowsInWindow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "table_rows_in_window",
			Help:      "Shortage-report rows whose issue date falls in the target window.",
		}),
		JoinMatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "join_matches",
			Help:      "Well points matched to a shortage-report row.",
		}),
		PointsExported: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "points_exported",
			Help:      "Well points written to the output layer.",
		}),
		EmptyResult: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drywell_etl",
			Name:      "empty_result",
			Help:      "1 when an intermediate stage produced zero rows.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "drywell_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		m.PointsLoaded,
		m.PointsInBoundary,
		m.TableRows,
		m.RowsInWindow,
		m.JoinMatches,
		m.PointsExported,
		m.EmptyResult,
		m.StageDuration,
	)

	return m
}

// WriteTextfile dumps the run metrics in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
