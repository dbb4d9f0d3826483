// pkg/core/types.go
package core

import "math"

// Position is a geographic point in decimal degrees.
// Latitude must be within [-90, 90]. Longitude is kept in [-180, 180);
// see internal/geo for the wrap policy applied by the geodesy primitives.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AircraftProfile holds the performance characteristics of an aircraft type.
// Profiles are immutable lookup values resolved at configuration time.
// CruiseSpeedKt, MaxRangeNm and FuelEnduranceHours are informational only;
// the estimator consumes GlideRatio and EmergencyDescentRateFtMin.
type AircraftProfile struct {
	Name                      string  `json:"name"`
	GlideRatio                float64 `json:"glideRatio"`
	MaxRangeNm                float64 `json:"maxRangeNm"`
	CruiseSpeedKt             float64 `json:"cruiseSpeedKt"`
	FuelEnduranceHours        float64 `json:"fuelEnduranceHours"`
	EmergencyDescentRateFtMin float64 `json:"emergencyDescentRateFtMin"`
}

// FlightState is the last known state of the aircraft.
type FlightState struct {
	Position        Position `json:"position"`
	AltitudeFt      float64  `json:"altitudeFt"`      // >= 0
	GroundSpeedKt   float64  `json:"groundSpeedKt"`   // >= 0
	HeadingDeg      float64  `json:"headingDeg"`      // [0, 360)
	VerticalSpeedFt float64  `json:"verticalSpeedFt"` // ft/min, negative when descending
}

// WindConditions describes the wind over the search area.
type WindConditions struct {
	SpeedKt      float64 `json:"speedKt"`      // >= 0
	DirectionDeg float64 `json:"directionDeg"` // [0, 360)
}

// Request bundles everything needed for one search-area calculation.
type Request struct {
	Flight           FlightState     `json:"flightState"`
	Wind             WindConditions  `json:"windConditions"`
	Profile          AircraftProfile `json:"aircraftProfile"`
	RadiusMultiplier float64         `json:"radiusMultiplier"` // >= 1
	SampleCount      int             `json:"sampleCount"`      // >= 1
}

// SearchArea is the deterministic output of the estimator: a center point,
// a search radius and the maximum glide distance that produced it.
type SearchArea struct {
	Center          Position `json:"center"`
	RadiusNm        float64  `json:"radiusNm"`
	GlideDistanceNm float64  `json:"glideDistanceNm"`
}

// ProbabilityPoint is one weighted sample of the probability field.
type ProbabilityPoint struct {
	Position    Position `json:"position"`
	Probability float64  `json:"probability"` // [0, 1]
}

// ProbabilityField is the ordered sample set for one calculation. Order
// carries no meaning but is fixed for a given seed, so fields are
// reproducible in tests. After normalization the maximum probability of a
// non-empty field is exactly 1.0.
type ProbabilityField []ProbabilityPoint

// Result is the complete outcome of one calculation request.
type Result struct {
	Area  SearchArea       `json:"searchArea"`
	Field ProbabilityField `json:"probabilityField"`
}

// SquareNm returns the gross search area in square nautical miles.
func (a SearchArea) SquareNm() float64 {
	return math.Pi * a.RadiusNm * a.RadiusNm
}
