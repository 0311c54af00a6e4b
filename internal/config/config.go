// Package config loads pipeline settings from environment variables, with an
// optional .env file for local runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// Config holds all pipeline settings.
type Config struct {
	PointsPath   string
	BoundaryPath string
	ReportsPath  string
	OutputPath   string

	// SourceEPSG is the fallback CRS for layers without a usable .prj
	// sidecar. Zero means sidecars are required.
	SourceEPSG int
	TargetEPSG int

	Window        domain.Window
	Substitutions []domain.Substitution

	LogLevel    string
	LogFormat   string
	MetricsPath string // optional; empty disables the metrics textfile
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is merged in first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	sourceEPSG, err := envInt("SOURCE_EPSG", 0)
	if err != nil {
		return nil, err
	}
	targetEPSG, err := envInt("TARGET_EPSG", 3857)
	if err != nil {
		return nil, err
	}
	startYear, err := envInt("WINDOW_START_YEAR", 2012)
	if err != nil {
		return nil, err
	}
	endYear, err := envInt("WINDOW_END_YEAR", 2016)
	if err != nil {
		return nil, err
	}

	subs, err := parseSubstitutions(os.Getenv("SHORTAGE_SUBSTITUTIONS"))
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = domain.DefaultSubstitutions()
	}

	cfg := &Config{
		PointsPath:   os.Getenv("POINTS_PATH"),
		BoundaryPath: os.Getenv("BOUNDARY_PATH"),
		ReportsPath:  os.Getenv("REPORTS_PATH"),
		OutputPath:   os.Getenv("OUTPUT_PATH"),

		SourceEPSG: sourceEPSG,
		TargetEPSG: targetEPSG,

		Window:        domain.Window{StartYear: startYear, EndYear: endYear},
		Substitutions: subs,

		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
		MetricsPath: os.Getenv("METRICS_PATH"),
	}

	if cfg.PointsPath == "" {
		return nil, errors.New("POINTS_PATH is required")
	}
	if cfg.BoundaryPath == "" {
		return nil, errors.New("BOUNDARY_PATH is required")
	}
	if cfg.ReportsPath == "" {
		return nil, errors.New("REPORTS_PATH is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.TargetEPSG <= 0 {
		return nil, errors.New("TARGET_EPSG must be a positive EPSG code")
	}
	if cfg.Window.StartYear > cfg.Window.EndYear {
		return nil, fmt.Errorf("window start year %d is after end year %d",
			cfg.Window.StartYear, cfg.Window.EndYear)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

// parseSubstitutions parses "source=>canonical;source=>canonical" into a
// substitution list. Empty input returns nil so the caller can fall back to
// the defaults.
func parseSubstitutions(s string) ([]domain.Substitution, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var subs []domain.Substitution
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=>")
		if !ok || strings.TrimSpace(from) == "" {
			return nil, fmt.Errorf("invalid SHORTAGE_SUBSTITUTIONS entry %q", pair)
		}
		subs = append(subs, domain.Substitution{
			From: strings.TrimSpace(from),
			To:   strings.TrimSpace(to),
		})
	}
	return subs, nil
}
