// Command etl runs the dry-well report pipeline once: load the point and
// boundary layers, reproject, clip to the study area, join the shortage
// workbook, filter to the issue-date window, and export the result.
//
// All settings come from environment variables (see internal/config), with an
// optional .env file in the working directory.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wellwatch/drywell-etl/internal/adapter/shapefile"
	"github.com/wellwatch/drywell-etl/internal/adapter/xlsx"
	"github.com/wellwatch/drywell-etl/internal/config"
	"github.com/wellwatch/drywell-etl/internal/observability"
	"github.com/wellwatch/drywell-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	p := pipeline.New(
		shapefile.Loader{},
		xlsx.Loader{},
		shapefile.Exporter{},
		logger,
		metrics,
		pipeline.Options{
			PointsPath:    cfg.PointsPath,
			BoundaryPath:  cfg.BoundaryPath,
			ReportsPath:   cfg.ReportsPath,
			OutputPath:    cfg.OutputPath,
			SourceEPSG:    cfg.SourceEPSG,
			TargetEPSG:    cfg.TargetEPSG,
			Window:        cfg.Window,
			Substitutions: cfg.Substitutions,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	logger.Info("pipeline complete",
		"points_loaded", sum.PointsLoaded,
		"points_in_boundary", sum.PointsInBoundary,
		"table_rows", sum.TableRows,
		"rows_in_window", sum.RowsInWindow,
		"join_matches", sum.JoinMatches,
		"points_exported", sum.PointsExported,
		"warnings", len(sum.Warnings),
	)

	if cfg.MetricsPath != "" {
		if err := metrics.WriteTextfile(cfg.MetricsPath); err != nil {
			logger.Warn("failed to write metrics textfile", "path", cfg.MetricsPath, "error", err)
		}
	}
}
