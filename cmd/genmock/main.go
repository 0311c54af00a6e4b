// Command genmock writes a deterministic fixture dataset for the dry-well
// pipeline: a point layer, a study-area boundary, and a shortage workbook.
// The fixtures cover the interesting cases end to end: matched and unmatched
// points, boundary exclusion, date imputation from both report-date sources,
// and records outside the issue-date window.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/xuri/excelize/v2"

	"github.com/wellwatch/drywell-etl/internal/adapter/shapefile"
	"github.com/wellwatch/drywell-etl/internal/adapter/xlsx"
	"github.com/wellwatch/drywell-etl/internal/domain"
)

// All fixture geometries are WGS-84 lon/lat; the pipeline reprojects them.
const fixtureEPSG = 4326

type mockPoint struct {
	id        string
	reportDat string
	lon, lat  float64
}

// Six points: 1004 sits outside the boundary; 1002 has no workbook row and
// survives only through Report_Dat; 1006 has no usable date anywhere.
var mockPoints = []mockPoint{
	{id: "1001", reportDat: "2015-01-20", lon: -120.1, lat: 36.5},
	{id: "1002", reportDat: "2013-06-01", lon: -120.2, lat: 36.6},
	{id: "1003", reportDat: "2017-02-02", lon: -119.9, lat: 36.4},
	{id: "1004", reportDat: "2014-08-15", lon: -118.0, lat: 35.0},
	{id: "1005", reportDat: "", lon: -120.3, lat: 36.8},
	{id: "1006", reportDat: "", lon: -119.8, lat: 36.9},
}

// Workbook rows: 1001 and 1003 exercise two of the ad-hoc category
// phrasings; 1005 needs report-date imputation; 2001 has no point feature.
var mockRows = [][]string{
	{"1001", "Pump not working", "2015-03-10", "2015-03-12"},
	{"1003", "Well has gone dry", "2017-05-01", "2017-05-02"},
	{"1005", "No water from well", "", "2012-11-30"},
	{"1006", "Other", "", ""},
	{"2001", "Dry well (groundwater)", "2014-01-01", "2014-01-05"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write fixture files into")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	pointsPath := filepath.Join(*outDir, "dry_wells.shp")
	boundaryPath := filepath.Join(*outDir, "study_area.shp")
	reportsPath := filepath.Join(*outDir, "shortage_reports.xlsx")

	if err := shapefile.WritePointLayer(pointsPath, pointLayer()); err != nil {
		return err
	}
	if err := shapefile.WriteBoundaryLayer(boundaryPath, boundaryLayer()); err != nil {
		return err
	}
	if err := writeWorkbook(reportsPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d points)\n", pointsPath, len(mockPoints))
	fmt.Printf("wrote %s\n", boundaryPath)
	fmt.Printf("wrote %s (%d rows)\n", reportsPath, len(mockRows))
	return nil
}

func pointLayer() domain.PointSet {
	ps := domain.PointSet{
		EPSG:   fixtureEPSG,
		Fields: []string{domain.FieldDrywellID, domain.FieldReportDat},
	}
	for _, mp := range mockPoints {
		ps.Points = append(ps.Points, domain.WellPoint{
			Geometry: orb.Point{mp.lon, mp.lat},
			Attrs: map[string]string{
				domain.FieldDrywellID: mp.id,
				domain.FieldReportDat: mp.reportDat,
			},
		})
	}
	return ps
}

func boundaryLayer() domain.Boundary {
	// Clockwise ring per the shapefile outer-ring convention.
	ring := orb.Ring{
		{-120.5, 36.0}, {-120.5, 37.0}, {-119.5, 37.0}, {-119.5, 36.0}, {-120.5, 36.0},
	}
	if ring.Orientation() == orb.CCW {
		ring.Reverse()
	}
	return domain.Boundary{
		EPSG:     fixtureEPSG,
		Geometry: orb.MultiPolygon{orb.Polygon{ring}},
	}
}

func writeWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []string{xlsx.ColDrywellID, xlsx.ColShortages, xlsx.ColIssueStart, xlsx.ColRecordCreated}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range mockRows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
