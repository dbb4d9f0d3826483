package model

import (
	"encoding/json"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/sarscope/sarscope/internal/geo"
	"github.com/sarscope/sarscope/pkg/core"
)

// boundarySegments matches the exporter's 10-degree boundary resolution.
const boundarySegments = 36

// PredictionDetails is the JSON blob stored alongside a prediction.
type PredictionDetails struct {
	SampleCount      int     `json:"sampleCount"`
	RadiusMultiplier float64 `json:"radiusMultiplier"`
	MaxFieldPoints   int     `json:"maxFieldPoints,omitempty"`
}

// NewEmergencyPrediction builds a prediction row from a calculation request
// and its result. aircraftID may be zero for ad-hoc calculations not tied to
// a tracked aircraft.
func NewEmergencyPrediction(
	aircraftID uint,
	req core.Request,
	res core.Result,
	glideTimeMin float64,
	at time.Time,
) (EmergencyPrediction, error) {
	details, err := json.Marshal(PredictionDetails{
		SampleCount:      req.SampleCount,
		RadiusMultiplier: req.RadiusMultiplier,
		MaxFieldPoints:   len(res.Field),
	})
	if err != nil {
		return EmergencyPrediction{}, err
	}

	return EmergencyPrediction{
		AircraftID:       aircraftID,
		Time:             at,
		Latitude:         req.Flight.Position.Lat,
		Longitude:        req.Flight.Position.Lon,
		AltitudeFt:       req.Flight.AltitudeFt,
		GroundSpeedKt:    req.Flight.GroundSpeedKt,
		HeadingDeg:       req.Flight.HeadingDeg,
		VerticalSpeedFt:  req.Flight.VerticalSpeedFt,
		WindSpeedKt:      req.Wind.SpeedKt,
		WindDirectionDeg: req.Wind.DirectionDeg,
		AircraftType:     req.Profile.Name,
		GlideRatio:       req.Profile.GlideRatio,
		CenterLatitude:   res.Area.Center.Lat,
		CenterLongitude:  res.Area.Center.Lon,
		Center:           NewGeometry(pointGeometry(res.Area.Center).AsGeometry()),
		Boundary:         NewGeometry(boundaryGeometry(res.Area).AsGeometry()),
		GlideDistanceNm:  res.Area.GlideDistanceNm,
		GlideTimeMin:     glideTimeMin,
		RadiusNm:         res.Area.RadiusNm,
		Details:          datatypes.JSON(details),
	}, nil
}

// pointGeometry builds an XY point in lon/lat axis order.
func pointGeometry(pos core.Position) geom.Point {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: pos.Lon, Y: pos.Lat},
		Type: geom.DimXY,
	})
}

// boundaryGeometry builds the closed search boundary ring as a polygon.
func boundaryGeometry(area core.SearchArea) geom.Polygon {
	ring := geo.Ring(area.Center, area.RadiusNm, boundarySegments)

	coords := make([]float64, 0, 2*(len(ring)+1))
	for _, pos := range ring {
		coords = append(coords, pos.Lon, pos.Lat)
	}
	coords = append(coords, ring[0].Lon, ring[0].Lat)

	seq := geom.NewSequence(coords, geom.DimXY)
	ls := geom.NewLineString(seq)
	poly := geom.NewPolygon([]geom.LineString{ls})
	return poly
}
