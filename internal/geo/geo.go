// Package geo provides the spherical-earth primitives the estimator and
// exporter are built on: haversine distance, initial bearing and the direct
// (destination point) formula, all in nautical miles and decimal degrees.
//
// Longitude wrap policy: every function that produces a longitude normalizes
// it to [-180, 180). All callers rely on this and must not re-wrap.
package geo

import (
	"math"

	"github.com/sarscope/sarscope/pkg/core"
)

// EarthRadiusNm is the mean earth radius in nautical miles.
const EarthRadiusNm = 3440.065

// Distance returns the great-circle (haversine) distance between a and b
// in nautical miles. Symmetric, and zero iff a == b.
func Distance(a, b core.Position) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusNm * math.Asin(math.Sqrt(h))
}

// Bearing returns the initial great-circle bearing from a to b in degrees,
// normalized to [0, 360).
func Bearing(a, b core.Position) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := degrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// DestinationPoint returns the point reached by travelling distanceNm along
// the great circle from origin at the given initial bearing. A zero distance
// returns the origin within floating-point tolerance. The result longitude
// is wrapped to [-180, 180).
func DestinationPoint(origin core.Position, bearingDeg, distanceNm float64) core.Position {
	lat1 := radians(origin.Lat)
	lon1 := radians(origin.Lon)
	brg := radians(bearingDeg)
	d := distanceNm / EarthRadiusNm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(brg))
	lon2 := lon1 + math.Atan2(
		math.Sin(brg)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return core.Position{
		Lat: degrees(lat2),
		Lon: normalizeLon(degrees(lon2)),
	}
}

// OffsetPosition converts a local planar offset (east xNm, north yNm) around
// center into a geographic position using an equirectangular approximation.
// Only valid for offsets small relative to the earth radius; the sampler uses
// it for points within the search radius.
func OffsetPosition(center core.Position, xNm, yNm float64) core.Position {
	lat := center.Lat + degrees(yNm/EarthRadiusNm)
	lon := center.Lon + degrees(xNm/(EarthRadiusNm*math.Cos(radians(center.Lat))))
	return core.Position{Lat: lat, Lon: normalizeLon(lon)}
}

// Ring returns segments points around center at the given radius, one per
// 360/segments degrees of bearing starting at north. The ring is open; the
// first point is not repeated.
func Ring(center core.Position, radiusNm float64, segments int) []core.Position {
	step := 360.0 / float64(segments)
	ring := make([]core.Position, segments)
	for i := 0; i < segments; i++ {
		ring[i] = DestinationPoint(center, float64(i)*step, radiusNm)
	}
	return ring
}

// normalizeLon wraps a longitude into [-180, 180).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
