package dem

import (
	"fmt"
	"os"
	"strings"

	"github.com/lsrd/snowcover/internal/mtl"
	"github.com/lsrd/snowcover/internal/util"
)

// ENVI projection number for Polar Stereographic.
const enviPSProj = 31

// FixENVIHeader rewrites the map info line of a GDAL-generated ENVI
// header with the scene's true projection. GDAL flags the translated
// raster as Geographic; downstream tools need the real UTM or PS
// parameters. For PS scenes a projection info line is added after map
// info, since ENVI cannot express PS through map info alone.
func FixENVIHeader(hdrPath string, meta *mtl.Metadata) error {
	data, err := os.ReadFile(hdrPath)
	if err != nil {
		return fmt.Errorf("read ENVI header: %w", err)
	}

	var b strings.Builder
	replaced := false
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if strings.Contains(line, "map info") {
			b.WriteString(mapInfoLine(meta))
			if meta.MapProjection == mtl.ProjectionPS {
				b.WriteString(projInfoLine(meta))
			}
			replaced = true
			continue
		}
		b.WriteString(line)
	}
	if !replaced {
		return fmt.Errorf("no map info field in %s", hdrPath)
	}

	return util.AtomicWriteFile(hdrPath, []byte(b.String()), 0o644)
}

func mapInfoLine(meta *mtl.Metadata) string {
	if meta.MapProjection == mtl.ProjectionPS {
		return fmt.Sprintf("map info = {Polar Stereographic, 1.000, 1.000, %f, %f, %f, %f, WGS-84, units=Meters}\n",
			meta.ULProjX, meta.ULProjY, meta.PixelSize, meta.PixelSize)
	}
	zone := meta.UTMZone
	hemisphere := "North"
	if zone < 0 {
		zone = -zone
		hemisphere = "South"
	}
	return fmt.Sprintf("map info = {UTM, 1.000, 1.000, %f, %f, %f, %f, %d, %s, WGS-84, units=Meters}\n",
		meta.ULProjX, meta.ULProjY, meta.PixelSize, meta.PixelSize, zone, hemisphere)
}

func projInfoLine(meta *mtl.Metadata) string {
	return fmt.Sprintf("projection info = {%d, 6378137.0, 6356752.314245179, %f, %f, %f, %f, WGS-84, Polar Stereographic, units=Meters}\n",
		enviPSProj, meta.TrueScaleLat, meta.VertLonFromPole, meta.FalseEasting, meta.FalseNorthing)
}
