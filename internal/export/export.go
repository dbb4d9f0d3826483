// Package export serializes a calculation result into hand-off formats for
// rescue teams: CSV for spreadsheet work and GeoJSON for GIS tooling.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	geojson "github.com/paulmach/go.geojson"

	"github.com/sarscope/sarscope/internal/geo"
	"github.com/sarscope/sarscope/pkg/core"
)

const (
	// boundarySegments is the number of 10-degree steps on the boundary ring.
	boundarySegments = 36

	// csvProbabilityFloor filters field rows in the CSV export. The GeoJSON
	// floor is stricter.
	csvProbabilityFloor = 0.2

	// geoJSONProbabilityFloor filters the point features of the GeoJSON
	// export.
	geoJSONProbabilityFloor = 0.5
)

// Format selects an export serialization.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatGeoJSON Format = "geojson"
)

// FileName builds the export file name for a result produced at ts:
// aircraft_search_<YYYYMMDD>_<HHMMSS>.<ext>.
func FileName(format Format, ts time.Time) string {
	return fmt.Sprintf("aircraft_search_%s.%s", ts.Format("20060102_150405"), format)
}

// Marshal serializes the result in the requested format.
func Marshal(format Format, res core.Result) ([]byte, error) {
	switch format {
	case FormatCSV:
		return MarshalCSV(res)
	case FormatGeoJSON:
		return MarshalGeoJSON(res)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// boundaryRing returns the 36 boundary points at 10-degree bearing
// increments around the search-area center.
func boundaryRing(area core.SearchArea) []core.Position {
	return geo.Ring(area.Center, area.RadiusNm, boundarySegments)
}

// MarshalCSV writes one center row, 36 boundary rows and one row per field
// point with probability above the CSV floor.
func MarshalCSV(res core.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Latitude", "Longitude", "Probability", "Type"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	writeRow := func(pos core.Position, probability float64, kind string) error {
		return w.Write([]string{
			formatFloat(pos.Lat),
			formatFloat(pos.Lon),
			formatFloat(probability),
			kind,
		})
	}

	if err := writeRow(res.Area.Center, 1.0, "center"); err != nil {
		return nil, fmt.Errorf("write csv center: %w", err)
	}
	for _, pos := range boundaryRing(res.Area) {
		if err := writeRow(pos, 0.0, "boundary"); err != nil {
			return nil, fmt.Errorf("write csv boundary: %w", err)
		}
	}
	for _, pt := range res.Field {
		if pt.Probability <= csvProbabilityFloor {
			continue
		}
		if err := writeRow(pt.Position, pt.Probability, "probability"); err != nil {
			return nil, fmt.Errorf("write csv point: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalGeoJSON builds a FeatureCollection with the center point, the
// closed boundary polygon (37 coordinate pairs, first repeated last) and one
// point feature per field point above the GeoJSON floor. Coordinates are
// [lon, lat] per the GeoJSON spec.
func MarshalGeoJSON(res core.Result) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	center := geojson.NewPointFeature([]float64{res.Area.Center.Lon, res.Area.Center.Lat})
	center.SetProperty("type", "center")
	center.SetProperty("probability", 1.0)
	center.SetProperty("description", "Search Area Center")
	fc.AddFeature(center)

	ring := boundaryRing(res.Area)
	coords := make([][]float64, 0, len(ring)+1)
	for _, pos := range ring {
		coords = append(coords, []float64{pos.Lon, pos.Lat})
	}
	coords = append(coords, coords[0]) // close the ring

	boundary := geojson.NewPolygonFeature([][][]float64{coords})
	boundary.SetProperty("type", "boundary")
	boundary.SetProperty("description",
		fmt.Sprintf("Search Area Boundary (%.2f nm radius)", res.Area.RadiusNm))
	fc.AddFeature(boundary)

	for _, pt := range res.Field {
		if pt.Probability <= geoJSONProbabilityFloor {
			continue
		}
		f := geojson.NewPointFeature([]float64{pt.Position.Lon, pt.Position.Lat})
		f.SetProperty("type", "probability")
		f.SetProperty("probability", pt.Probability)
		f.SetProperty("description", fmt.Sprintf("Probability: %.2f", pt.Probability))
		fc.AddFeature(f)
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return data, nil
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		// Whole values print without an exponent or trailing fraction.
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
