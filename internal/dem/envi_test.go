package dem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsrd/snowcover/internal/mtl"
)

const gdalHeader = `ENVI
description = {lsrd_scene_based_dem.bin}
samples = 7801
lines = 7101
bands = 1
data type = 2
interleave = bsq
map info = {Geographic Lat/Lon, 1.000, 1.000, -110.46336, 45.51581, 0.0002, 0.0002}
band names = {Band 1}
`

func writeHeader(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), SceneDEMHeader)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFixENVIHeader_UTMNorth(t *testing.T) {
	path := writeHeader(t, gdalHeader)
	meta := utmMeta()

	require.NoError(t, FixENVIHeader(path, meta))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)

	assert.Contains(t, got, "map info = {UTM, 1.000, 1.000, 385185.000000, 5041515.000000, 30.000000, 30.000000, 12, North, WGS-84, units=Meters}")
	assert.NotContains(t, got, "Geographic Lat/Lon")
	assert.NotContains(t, got, "projection info")

	// Untouched fields survive the rewrite.
	assert.Contains(t, got, "samples = 7801")
	assert.Contains(t, got, "band names = {Band 1}")
}

func TestFixENVIHeader_UTMSouth(t *testing.T) {
	path := writeHeader(t, gdalHeader)
	meta := utmMeta()
	meta.UTMZone = -23

	require.NoError(t, FixENVIHeader(path, meta))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), ", 23, South, WGS-84, units=Meters}")
}

func TestFixENVIHeader_PS(t *testing.T) {
	path := writeHeader(t, gdalHeader)
	meta := utmMeta()
	meta.MapProjection = mtl.ProjectionPS
	meta.TrueScaleLat = -71.0
	meta.VertLonFromPole = 0.0
	meta.FalseEasting = 0.0
	meta.FalseNorthing = 0.0

	require.NoError(t, FixENVIHeader(path, meta))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)

	assert.Contains(t, got, "map info = {Polar Stereographic, 1.000, 1.000, 385185.000000, 5041515.000000, 30.000000, 30.000000, WGS-84, units=Meters}")
	assert.Contains(t, got, "projection info = {31, 6378137.0, 6356752.314245179, -71.000000, 0.000000, 0.000000, 0.000000, WGS-84, Polar Stereographic, units=Meters}")

	// projection info lands directly after map info.
	lines := strings.Split(got, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "map info") {
			require.Less(t, i+1, len(lines))
			assert.True(t, strings.HasPrefix(lines[i+1], "projection info"))
		}
	}
}

func TestFixENVIHeader_NoMapInfo(t *testing.T) {
	path := writeHeader(t, "ENVI\nsamples = 10\n")
	err := FixENVIHeader(path, utmMeta())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map info")
}

func TestFixENVIHeader_MissingFile(t *testing.T) {
	err := FixENVIHeader(filepath.Join(t.TempDir(), "nope.hdr"), utmMeta())
	require.Error(t, err)
}
