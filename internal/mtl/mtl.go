// Package mtl parses Landsat LPGS metadata (MTL) files.
//
// Only the fields needed to drive scene-based DEM generation are
// extracted: the geographic bounding box, the upper-left projection
// coordinate, the reflective pixel size, the WRS path/row, and the map
// projection parameters. Both the classic flat text format (*_MTL.txt)
// and the Collection 2 JSON variant (*_MTL.json) are supported; the JSON
// document is flat-walked so both formats share one field dispatch.
package mtl

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	scaerrors "github.com/lsrd/snowcover/internal/errors"
)

// Map projections supported by the DEM tool chain.
const (
	ProjectionUTM = "UTM"
	ProjectionPS  = "PS"
)

// Sentinels marking fields not yet seen. The corner coordinates fold
// (max/min) across the four product corners, so fields folded upward
// start low and fields folded downward start high.
const (
	sentinelLow  = -9999.0
	sentinelHigh = 9999.0
	noPSParam    = -9999.0
	noCoord      = -13.0
)

// Metadata holds the MTL fields used for DEM generation.
type Metadata struct {
	// Geographic bounding box, folded from the four product corners.
	NorthBoundLat float64
	SouthBoundLat float64
	EastBoundLon  float64
	WestBoundLon  float64

	// Upper-left projection coordinate. The MTL records the pixel
	// center; Parse shifts it to the pixel's UL corner.
	ULProjX float64
	ULProjY float64

	// PixelSize is the reflective grid cell size in meters.
	PixelSize float64

	WRSPath int
	WRSRow  int

	// MapProjection is UTM or PS.
	MapProjection string

	// UTMZone is negative for southern-hemisphere scenes.
	UTMZone int

	// Polar Stereographic parameters.
	VertLonFromPole float64
	TrueScaleLat    float64
	FalseEasting    float64
	FalseNorthing   float64
}

func newMetadata() *Metadata {
	return &Metadata{
		NorthBoundLat:   sentinelLow,
		SouthBoundLat:   sentinelHigh,
		EastBoundLon:    sentinelLow,
		WestBoundLon:    sentinelHigh,
		ULProjX:         noCoord,
		ULProjY:         noCoord,
		PixelSize:       noCoord,
		VertLonFromPole: noPSParam,
		TrueScaleLat:    noPSParam,
		FalseEasting:    noPSParam,
		FalseNorthing:   noPSParam,
	}
}

// Parse reads an MTL file and returns the validated metadata.
func Parse(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %w", err)
	}

	m := newMetadata()
	if isJSON(path, data) {
		err = m.parseJSON(data)
	} else {
		err = m.parseText(data)
	}
	if err != nil {
		return nil, scaerrors.ErrMetadataInvalid(path, err.Error())
	}

	if reason := m.validate(); reason != "" {
		return nil, scaerrors.ErrMetadataInvalid(path, reason)
	}

	// The MTL corner coordinate is the pixel center; the DEM header
	// wants the UL corner of the pixel.
	m.ULProjX -= 0.5 * m.PixelSize
	m.ULProjY += 0.5 * m.PixelSize

	return m, nil
}

func isJSON(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return true
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// parseText reads the flat "PARAM = value" format, stopping at END.
func (m *Metadata) parseText(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "END" {
			break
		}
		param, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if err := m.setField(strings.TrimSpace(param), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseJSON flat-walks the Collection 2 JSON document; group nesting is
// ignored so the same field names serve both formats.
func (m *Metadata) parseJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("malformed JSON document")
	}
	var walkErr error
	var walk func(gjson.Result)
	walk = func(r gjson.Result) {
		r.ForEach(func(key, value gjson.Result) bool {
			if value.IsObject() || value.IsArray() {
				walk(value)
				return true
			}
			if err := m.setField(key.String(), value.String()); err != nil {
				walkErr = err
				return false
			}
			return true
		})
	}
	walk(gjson.ParseBytes(data))
	return walkErr
}

// setField dispatches one metadata parameter into the struct. Unknown
// parameters are ignored; the MTL carries hundreds of fields this
// package has no use for.
func (m *Metadata) setField(param, value string) error {
	value = strings.Trim(value, `"`)

	switch param {
	case "CORNER_UL_LAT_PRODUCT", "CORNER_UR_LAT_PRODUCT":
		v, err := parseFloat(param, value)
		if err != nil {
			return err
		}
		if v > m.NorthBoundLat {
			m.NorthBoundLat = v
		}
	case "CORNER_LL_LAT_PRODUCT", "CORNER_LR_LAT_PRODUCT":
		v, err := parseFloat(param, value)
		if err != nil {
			return err
		}
		if v < m.SouthBoundLat {
			m.SouthBoundLat = v
		}
	case "CORNER_UL_LON_PRODUCT", "CORNER_LL_LON_PRODUCT":
		v, err := parseFloat(param, value)
		if err != nil {
			return err
		}
		if v < m.WestBoundLon {
			m.WestBoundLon = v
		}
	case "CORNER_UR_LON_PRODUCT", "CORNER_LR_LON_PRODUCT":
		v, err := parseFloat(param, value)
		if err != nil {
			return err
		}
		if v > m.EastBoundLon {
			m.EastBoundLon = v
		}
	case "CORNER_UL_PROJECTION_X_PRODUCT":
		return setFloat(&m.ULProjX, param, value)
	case "CORNER_UL_PROJECTION_Y_PRODUCT":
		return setFloat(&m.ULProjY, param, value)
	case "GRID_CELL_SIZE_REFLECTIVE":
		return setFloat(&m.PixelSize, param, value)
	case "WRS_PATH":
		return setInt(&m.WRSPath, param, value)
	case "WRS_ROW":
		return setInt(&m.WRSRow, param, value)
	case "MAP_PROJECTION":
		m.MapProjection = value
	case "UTM_ZONE":
		return setInt(&m.UTMZone, param, value)
	case "VERTICAL_LON_FROM_POLE":
		return setFloat(&m.VertLonFromPole, param, value)
	case "TRUE_SCALE_LAT":
		return setFloat(&m.TrueScaleLat, param, value)
	case "FALSE_EASTING":
		return setFloat(&m.FalseEasting, param, value)
	case "FALSE_NORTHING":
		return setFloat(&m.FalseNorthing, param, value)
	}
	return nil
}

func parseFloat(param, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %q is not a number", param, value)
	}
	return v, nil
}

func setFloat(dst *float64, param, value string) error {
	v, err := parseFloat(param, value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setInt(dst *int, param, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parameter %s: %q is not an integer", param, value)
	}
	*dst = v
	return nil
}

// validate reports the first missing or unusable field, or "" when the
// metadata is complete enough to drive DEM generation.
func (m *Metadata) validate() string {
	if m.NorthBoundLat == sentinelLow || m.SouthBoundLat == sentinelHigh ||
		m.EastBoundLon == sentinelLow || m.WestBoundLon == sentinelHigh {
		return "missing north/south and/or east/west bounding fields"
	}
	if m.ULProjX == noCoord || m.ULProjY == noCoord {
		return "missing UL projection x/y fields"
	}
	if m.PixelSize == noCoord {
		return "missing reflective grid cell size field"
	}
	if m.WRSPath == 0 || m.WRSRow == 0 {
		return "missing WRS path/row fields"
	}
	if m.MapProjection != ProjectionUTM && m.MapProjection != ProjectionPS {
		return fmt.Sprintf("map projection %q is not supported; only UTM and PS are supported", m.MapProjection)
	}
	if m.MapProjection == ProjectionUTM && m.UTMZone == 0 {
		return "missing UTM zone field"
	}
	if m.MapProjection == ProjectionPS {
		if m.VertLonFromPole == noPSParam || m.TrueScaleLat == noPSParam ||
			m.FalseEasting == noPSParam || m.FalseNorthing == noPSParam {
			return "missing Polar Stereographic fields (vertical longitude from pole, true scale latitude, false easting, and/or false northing)"
		}
	}
	return ""
}
