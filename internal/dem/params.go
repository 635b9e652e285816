package dem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lsrd/snowcover/internal/mtl"
	"github.com/lsrd/snowcover/internal/util"
)

// Target projection codes written to the OMF file (GCTP numbering).
const (
	gctpUTM = 1
	gctpPS  = 6
)

// writeParams writes the OMF and ODL parameter files the elevation
// tools read. The layout matches what the LPGS tools expect; field
// order and formatting are part of the de-facto contract.
func (g *Generator) writeParams(sceneDir, metaName string, meta *mtl.Metadata) error {
	files := map[string]string{
		OMFFile:         omfContent(metaName, meta),
		RetrieveElevODL: retrieveElevODL(),
		MakeGeomGridODL: makeGeomGridODL(),
		GeomResampleODL: geomResampleODL(),
	}
	for name, content := range files {
		if err := util.AtomicWriteFile(filepath.Join(sceneDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func omfContent(metaName string, meta *mtl.Metadata) string {
	var b strings.Builder
	b.WriteString("OBJECT = OMF\n")
	b.WriteString("  SATELLITE = 8\n")
	fmt.Fprintf(&b, "  UL_BOUNDARY_LAT_LON = (%f, %f)\n", meta.NorthBoundLat, meta.WestBoundLon)
	fmt.Fprintf(&b, "  UR_BOUNDARY_LAT_LON = (%f, %f)\n", meta.NorthBoundLat, meta.EastBoundLon)
	fmt.Fprintf(&b, "  LL_BOUNDARY_LAT_LON = (%f, %f)\n", meta.SouthBoundLat, meta.WestBoundLon)
	fmt.Fprintf(&b, "  LR_BOUNDARY_LAT_LON = (%f, %f)\n", meta.SouthBoundLat, meta.EastBoundLon)
	fmt.Fprintf(&b, "  TARGET_WRS_PATH = %d\n", meta.WRSPath)
	fmt.Fprintf(&b, "  TARGET_WRS_ROW = %d\n", meta.WRSRow)
	if meta.MapProjection == mtl.ProjectionUTM {
		fmt.Fprintf(&b, "  TARGET_PROJECTION = %d\n", gctpUTM)
		fmt.Fprintf(&b, "  UTM_ZONE = %d\n", meta.UTMZone)
	} else {
		fmt.Fprintf(&b, "  TARGET_PROJECTION = %d\n", gctpPS)
	}
	fmt.Fprintf(&b, "  GRID_FILENAME_PASS_1 = \"%s\"\n\n", metaName)
	b.WriteString("END_OBJECT = OMF\n")
	b.WriteString("END\n")
	return b.String()
}

func retrieveElevODL() string {
	return fmt.Sprintf(`OBJECT = SCA
  WO_DIRECTORY = "."
  WORK_ORDER_ID = LSRD
  DEM_FILENAME = "%s"
END_OBJECT = SCA
END
`, SourceDEM)
}

func makeGeomGridODL() string {
	return fmt.Sprintf(`OBJECT = GRID_TERRAIN
  WO_DIRECTORY = "."
  WORK_ORDER_ID = LSRD
  CELL_LINES = 50
  CELL_SAMPLES = 50
  GEOM_GRID_FILENAME = "%s"
  PROCESSING_PASS = 1
  SOURCE_BAND_NUMBER_LIST = 1
  SOURCE_IMAGE_TYPE = 0
  TARGET_BAND_NUMBER_LIST = 1
END_OBJECT = GRID_TERRAIN
END
`, GeomGrid)
}

func geomResampleODL() string {
	return fmt.Sprintf(`OBJECT = RESAMPLE_TERRAIN
  WO_DIRECTORY = "."
  WORK_ORDER_ID = LSRD
  BACKGRND = 0.000000
  BAND_LIST = 1
  MINMAX_OUTPUT = (-500.000000,9000.000000)
  ODTYPE = "I*2"
  OUTPUT_IMAGE_FILENAME = "%s"
  PCCALPHA = -0.500000
  PROCESSING_PASS = 1
  RESAMPLE = BI
  SOURCE_IMAGE_TYPE = 0
  WINDOW_FLAG = 0
END_OBJECT = RESAMPLE_TERRAIN
END
`, SceneDEM)
}
