// Package render converts calculation results into the payload map
// front-ends consume and defines the adapter interface they implement.
// Weight scaling for visualization is a rendering concern and stays out of
// the payload.
package render

import (
	"github.com/wroge/wgs84"

	"github.com/sarscope/sarscope/pkg/core"
)

// MetersPerNm converts nautical miles to meters.
const MetersPerNm = 1852.0

// Adapter consumes render payloads. Implementations draw map layers, stream
// to a frontend, or discard; the engine only publishes.
type Adapter interface {
	Render(p Payload) error
}

// Point is one weighted field sample, carried both geographically
// (lat/lon, EPSG:4326) and projected (EPSG:3857) so the frontend can
// place it on a tile layer without reprojection.
type Point struct {
	Lat      float64     `json:"lat"`
	Lon      float64     `json:"lon"`
	Weight   float64     `json:"weight"`
	Mercator WebMercator `json:"mercator"`
}

// Payload is the render contract: geographic center, its web mercator
// projection, radius in meters and the weighted field points.
type Payload struct {
	Center         [2]float64  `json:"center"` // [lat, lon]
	CenterMercator WebMercator `json:"centerMercator"`
	RadiusMeters   float64     `json:"radiusMeters"`
	Points         []Point     `json:"points"`
}

// NewPayload builds the render payload for a result.
func NewPayload(res core.Result) Payload {
	points := make([]Point, len(res.Field))
	for i, pt := range res.Field {
		points[i] = Point{
			Lat:      pt.Position.Lat,
			Lon:      pt.Position.Lon,
			Weight:   pt.Probability,
			Mercator: ToWebMercator(pt.Position),
		}
	}
	return Payload{
		Center:         [2]float64{res.Area.Center.Lat, res.Area.Center.Lon},
		CenterMercator: ToWebMercator(res.Area.Center),
		RadiusMeters:   res.Area.RadiusNm * MetersPerNm,
		Points:         points,
	}
}

// WebMercator is a payload point projected to EPSG:3857, the projection tile
// servers expect.
type WebMercator struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// webMercator projects EPSG:4326 coordinates to EPSG:3857.
var webMercator = wgs84.EPSG().Transform(4326, 3857)

// ToWebMercator projects a geographic position from EPSG:4326 to EPSG:3857.
func ToWebMercator(pos core.Position) WebMercator {
	x, y, _ := webMercator(pos.Lon, pos.Lat, 0)
	return WebMercator{X: x, Y: y}
}

// Discard is an Adapter that drops every payload. Used when no frontend is
// attached.
type Discard struct{}

func (Discard) Render(Payload) error { return nil }
