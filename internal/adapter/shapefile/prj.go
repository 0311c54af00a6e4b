// Package shapefile reads and writes the pipeline's vector layers: point and
// polygon shapefiles with their DBF attribute tables and .prj CRS sidecars.
package shapefile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// wktByEPSG holds the projection text written to .prj sidecars for the codes
// this dataset uses. Other codes get a minimal AUTHORITY-tagged stub that
// round-trips through epsgFromWKT.
var wktByEPSG = map[int]string{
	4326: `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433],AUTHORITY["EPSG","4326"]]`,
	3857: `PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],PROJECTION["Mercator_Auxiliary_Sphere"],PARAMETER["False_Easting",0.0],PARAMETER["False_Northing",0.0],PARAMETER["Central_Meridian",0.0],PARAMETER["Standard_Parallel_1",0.0],PARAMETER["Auxiliary_Sphere_Type",0.0],UNIT["Meter",1.0],AUTHORITY["EPSG","3857"]]`,
}

var authorityRe = regexp.MustCompile(`AUTHORITY\["EPSG","(\d+)"\]`)

// prjPath derives the sidecar path for a .shp file.
func prjPath(shpPath string) string {
	return strings.TrimSuffix(shpPath, filepath.Ext(shpPath)) + ".prj"
}

// readPRJ returns the EPSG code from a layer's .prj sidecar, or 0 when the
// sidecar is absent or its projection text is not recognized. Callers decide
// whether 0 is fatal (it is, unless config supplies a source CRS).
func readPRJ(shpPath string) int {
	data, err := os.ReadFile(prjPath(shpPath))
	if err != nil {
		return 0
	}
	return epsgFromWKT(string(data))
}

// epsgFromWKT extracts an EPSG code from projection text. The last AUTHORITY
// tag identifies the whole CRS; well-known names cover sidecars written
// without authority tags.
func epsgFromWKT(wkt string) int {
	matches := authorityRe.FindAllStringSubmatch(wkt, -1)
	if len(matches) > 0 {
		code, err := strconv.Atoi(matches[len(matches)-1][1])
		if err == nil {
			return code
		}
	}
	switch {
	case strings.Contains(wkt, "Web_Mercator"), strings.Contains(wkt, "Pseudo-Mercator"):
		return 3857
	case strings.Contains(wkt, "GCS_WGS_1984"), strings.Contains(wkt, `GEOGCS["WGS 84"`):
		return 4326
	}
	return 0
}

// writePRJ writes the CRS sidecar next to a .shp file.
func writePRJ(shpPath string, epsg int) error {
	wkt, ok := wktByEPSG[epsg]
	if !ok {
		wkt = fmt.Sprintf(`PROJCS["EPSG:%d",AUTHORITY["EPSG","%d"]]`, epsg, epsg)
	}
	return os.WriteFile(prjPath(shpPath), []byte(wkt), 0o644)
}
