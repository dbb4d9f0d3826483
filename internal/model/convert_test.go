package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarscope/sarscope/pkg/core"
)

func testRequest() core.Request {
	return core.Request{
		Flight: core.FlightState{
			Position:        core.Position{Lat: 37.7749, Lon: -122.4194},
			AltitudeFt:      30000,
			GroundSpeedKt:   450,
			HeadingDeg:      90,
			VerticalSpeedFt: 0,
		},
		Wind: core.WindConditions{SpeedKt: 15, DirectionDeg: 270},
		Profile: core.AircraftProfile{
			Name:                      "Narrow-Body Airliner (Boeing 737)",
			GlideRatio:                17,
			EmergencyDescentRateFtMin: 4000,
		},
		RadiusMultiplier: 2.0,
		SampleCount:      1000,
	}
}

func testResult() core.Result {
	return core.Result{
		Area: core.SearchArea{
			Center:          core.Position{Lat: 37.7749, Lon: -121.30},
			RadiusNm:        168.65,
			GlideDistanceNm: 83.95,
		},
		Field: core.ProbabilityField{
			{Position: core.Position{Lat: 37.8, Lon: -121.2}, Probability: 1.0},
		},
	}
}

func TestNewEmergencyPrediction(t *testing.T) {
	at := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	p, err := NewEmergencyPrediction(42, testRequest(), testResult(), 7.5, at)
	require.NoError(t, err)

	assert.Equal(t, uint(42), p.AircraftID)
	assert.Equal(t, at, p.Time)
	assert.Equal(t, 37.7749, p.Latitude)
	assert.Equal(t, -122.4194, p.Longitude)
	assert.Equal(t, "Narrow-Body Airliner (Boeing 737)", p.AircraftType)
	assert.Equal(t, 37.7749, p.CenterLatitude)
	assert.Equal(t, -121.30, p.CenterLongitude)
	assert.Equal(t, 168.65, p.RadiusNm)
	assert.Equal(t, 83.95, p.GlideDistanceNm)
	assert.Equal(t, 7.5, p.GlideTimeMin)

	var details PredictionDetails
	require.NoError(t, json.Unmarshal(p.Details, &details))
	assert.Equal(t, 1000, details.SampleCount)
	assert.Equal(t, 2.0, details.RadiusMultiplier)
	assert.Equal(t, 1, details.MaxFieldPoints)
}

func TestPredictionGeometry(t *testing.T) {
	p, err := NewEmergencyPrediction(0, testRequest(), testResult(), 7.5, time.Now())
	require.NoError(t, err)

	// Point geometry carries lon/lat axis order.
	xy, ok := p.Center.Geometry.MustAsPoint().XY()
	require.True(t, ok)
	assert.InDelta(t, -121.30, xy.X, 1e-9)
	assert.InDelta(t, 37.7749, xy.Y, 1e-9)

	// Closed 36-segment boundary ring: 37 points.
	ring := p.Boundary.Geometry.MustAsPolygon().ExteriorRing()
	seq := ring.Coordinates()
	assert.Equal(t, 37, seq.Length())
	assert.Equal(t, seq.GetXY(0), seq.GetXY(36))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "aircraft", (&Aircraft{}).TableName())
	assert.Equal(t, "aircraft_positions", (&AircraftPosition{}).TableName())
	assert.Equal(t, "search_queries", (&SearchQuery{}).TableName())
	assert.Equal(t, "search_results", (&SearchResult{}).TableName())
	assert.Equal(t, "emergency_predictions", (&EmergencyPrediction{}).TableName())
	assert.Len(t, DatabaseModels, 5)
}
