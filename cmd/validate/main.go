// Command validate runs integrity checks over an exported dry-well layer:
// CRS sidecar presence, issue-date window compliance, category normalization
// completeness, and geometry/attribute count reconciliation. The attribute
// table is read through a separate DBF implementation from the one the
// exporter uses, so a write-side bug cannot mask itself on the read side.
//
// Usage:
//
//	go run ./cmd/validate -export out/dry_wells_filtered.shp
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valentin-kaiser/go-dbase/dbase"
	shp "github.com/jonas-p/go-shp"

	"github.com/wellwatch/drywell-etl/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	exportPath := flag.String("export", "", "path to the exported point shapefile")
	startYear := flag.Int("window-start", 2012, "first year of the issue-date window")
	endYear := flag.Int("window-end", 2016, "last year of the issue-date window")
	flag.Parse()

	if *exportPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	window := domain.Window{StartYear: *startYear, EndYear: *endYear}
	if code := run(*exportPath, window); code != 0 {
		os.Exit(code)
	}
}

func run(exportPath string, window domain.Window) int {
	fmt.Println("=== Dry-Well Export Validation ===")
	fmt.Println()

	phases := []*phase{
		checkSidecar(exportPath),
		checkAttributes(exportPath, window),
		checkGeometry(exportPath),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed\n", len(phases))
	return 0
}

// checkSidecar verifies the .prj sidecar exists and carries projection text.
func checkSidecar(exportPath string) *phase {
	p := &phase{name: "crs sidecar"}

	prj := strings.TrimSuffix(exportPath, ".shp") + ".prj"
	data, err := os.ReadFile(prj)
	if err != nil {
		p.errorf("read %s: %v", prj, err)
		return p
	}
	text := string(data)
	if !strings.Contains(text, "PROJCS") && !strings.Contains(text, "GEOGCS") {
		p.errorf("%s does not look like projection text", prj)
	}
	return p
}

// checkAttributes reads the DBF with go-dbase and verifies every record has
// an in-window issue date and a fully normalized category.
func checkAttributes(exportPath string, window domain.Window) *phase {
	p := &phase{name: "attribute table"}

	dbfPath := strings.TrimSuffix(exportPath, ".shp") + ".dbf"
	table, err := dbase.OpenTable(&dbase.Config{Filename: dbfPath, TrimSpaces: true})
	if err != nil {
		p.errorf("open %s: %v", dbfPath, err)
		return p
	}
	defer table.Close()

	sourcePhrasings := make([]string, 0, 3)
	for _, s := range domain.DefaultSubstitutions() {
		sourcePhrasings = append(sourcePhrasings, s.From)
	}

	row := 0
	for !table.EOF() {
		rec, err := table.Next()
		if err != nil {
			p.errorf("row %d: %v", row, err)
			return p
		}
		if rec.Deleted {
			continue
		}
		row++

		issue := stringValue(rec, domain.FieldIssueDate)
		d, err := domain.ParseDate(domain.FieldIssueDate, issue)
		if err != nil || d == nil {
			p.errorf("row %d: unusable issue_date %q", row, issue)
			continue
		}
		if !window.Contains(d) {
			p.errorf("row %d: issue_date %s outside window %d-%d",
				row, issue, window.StartYear, window.EndYear)
		}

		category := stringValue(rec, domain.FieldShortages)
		for _, phrase := range sourcePhrasings {
			if strings.Contains(category, phrase) {
				p.errorf("row %d: category %q still contains source phrasing %q", row, category, phrase)
			}
		}
	}

	if row == 0 {
		p.errorf("attribute table has no records")
	}
	return p
}

// checkGeometry counts point features with go-shp and reconciles the count
// against the DBF.
func checkGeometry(exportPath string) *phase {
	p := &phase{name: "geometry"}

	r, err := shp.Open(exportPath)
	if err != nil {
		p.errorf("open %s: %v", exportPath, err)
		return p
	}
	defer r.Close()

	shapes := 0
	for r.Next() {
		n, shape := r.Shape()
		if _, ok := shape.(*shp.Point); !ok {
			p.errorf("feature %d: not a point (%T)", n, shape)
		}
		shapes++
	}
	if err := r.Err(); err != nil && !errors.Is(err, io.EOF) {
		p.errorf("read %s: %v", exportPath, err)
		return p
	}

	dbfPath := strings.TrimSuffix(exportPath, ".shp") + ".dbf"
	table, err := dbase.OpenTable(&dbase.Config{Filename: dbfPath, TrimSpaces: true})
	if err != nil {
		p.errorf("open %s: %v", dbfPath, err)
		return p
	}
	defer table.Close()

	records := 0
	for !table.EOF() {
		rec, err := table.Next()
		if err != nil {
			p.errorf("dbf record %d: %v", records, err)
			return p
		}
		if !rec.Deleted {
			records++
		}
	}

	if shapes != records {
		p.errorf("%d geometries but %d attribute records", shapes, records)
	}
	return p
}

// stringValue fetches a field as text, tolerating the DBF's uppercase naming.
func stringValue(rec *dbase.Row, name string) string {
	for _, candidate := range []string{name, strings.ToUpper(name)} {
		v, err := rec.ValueByName(candidate)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
