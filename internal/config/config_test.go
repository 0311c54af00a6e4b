package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// setRequiredPaths supplies the four mandatory path settings.
func setRequiredPaths(t *testing.T) {
	t.Helper()
	t.Setenv("POINTS_PATH", "data/dry_wells.shp")
	t.Setenv("BOUNDARY_PATH", "data/study_area.shp")
	t.Setenv("REPORTS_PATH", "data/shortage_reports.xlsx")
	t.Setenv("OUTPUT_PATH", "out/dry_wells_filtered.shp")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredPaths(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.SourceEPSG, "no fallback CRS by default; sidecars required")
	assert.Equal(t, 3857, cfg.TargetEPSG)
	assert.Equal(t, domain.Window{StartYear: 2012, EndYear: 2016}, cfg.Window)
	assert.Equal(t, domain.DefaultSubstitutions(), cfg.Substitutions)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsPath)
}

func TestLoad_CustomEnv(t *testing.T) {
	setRequiredPaths(t)
	t.Setenv("SOURCE_EPSG", "4326")
	t.Setenv("TARGET_EPSG", "3857")
	t.Setenv("WINDOW_START_YEAR", "2010")
	t.Setenv("WINDOW_END_YEAR", "2020")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("METRICS_PATH", "out/run_metrics.prom")
	t.Setenv("SHORTAGE_SUBSTITUTIONS", "Pump broken=>Dry well (groundwater); Empty well=>Dry well (groundwater)")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4326, cfg.SourceEPSG)
	assert.Equal(t, domain.Window{StartYear: 2010, EndYear: 2020}, cfg.Window)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "out/run_metrics.prom", cfg.MetricsPath)
	assert.Equal(t, []domain.Substitution{
		{From: "Pump broken", To: "Dry well (groundwater)"},
		{From: "Empty well", To: "Dry well (groundwater)"},
	}, cfg.Substitutions)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing points path", func(t *testing.T) {
		t.Setenv("BOUNDARY_PATH", "b.shp")
		t.Setenv("REPORTS_PATH", "r.xlsx")
		t.Setenv("OUTPUT_PATH", "o.shp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "POINTS_PATH")
	})

	t.Run("inverted window", func(t *testing.T) {
		setRequiredPaths(t)
		t.Setenv("WINDOW_START_YEAR", "2018")
		t.Setenv("WINDOW_END_YEAR", "2012")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non-numeric EPSG", func(t *testing.T) {
		setRequiredPaths(t)
		t.Setenv("TARGET_EPSG", "mercator")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TARGET_EPSG")
	})

	t.Run("malformed substitution entry", func(t *testing.T) {
		setRequiredPaths(t)
		t.Setenv("SHORTAGE_SUBSTITUTIONS", "no-arrow-here")

		_, err := Load()
		require.Error(t, err)
	})
}
