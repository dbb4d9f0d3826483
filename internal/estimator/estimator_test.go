package estimator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarscope/sarscope/internal/geo"
	"github.com/sarscope/sarscope/pkg/core"
)

// baseRequest is a Boeing 737 over San Francisco, eastbound at FL300 with a
// 15 kt westerly wind.
func baseRequest() core.Request {
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

func TestEstimateWorkedExample(t *testing.T) {
	area, err := Estimate(baseRequest())
	require.NoError(t, err)

	// glide 83.95 nm, impact in 7.5 min, 56.25 nm travelled, 1.875 nm drift
	assert.InDelta(t, 83.95, area.GlideDistanceNm, 0.02)
	assert.InDelta(t, (83.95+0.375)*2.0, area.RadiusNm, 0.05)

	// Eastbound travel then westerly drift nets ~54.4 nm east of the start.
	start := baseRequest().Flight.Position
	assert.InDelta(t, 56.25-1.875, geo.Distance(start, area.Center), 0.05)
	assert.InDelta(t, 90, geo.Bearing(start, area.Center), 0.5)
	assert.InDelta(t, start.Lat, area.Center.Lat, 0.01)
}

func TestEstimateRadiusLinearInMultiplier(t *testing.T) {
	for _, k := range []float64{1.0, 1.3, 2.5} {
		req := baseRequest()
		req.RadiusMultiplier = k
		single, err := Estimate(req)
		require.NoError(t, err)

		req.RadiusMultiplier = 2 * k
		double, err := Estimate(req)
		require.NoError(t, err)

		assert.InDelta(t, 2*single.RadiusNm, double.RadiusNm, 1e-9)
		assert.Equal(t, single.Center, double.Center)
	}
}

func TestEstimateDeterministic(t *testing.T) {
	a, err := Estimate(baseRequest())
	require.NoError(t, err)
	b, err := Estimate(baseRequest())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateDescendingAircraft(t *testing.T) {
	req := baseRequest()
	req.Flight.VerticalSpeedFt = -2000

	area, err := Estimate(req)
	require.NoError(t, err)

	// 15 minutes of descent means 112.5 nm of travel, which exceeds the
	// glide distance and becomes the base radius.
	assert.InDelta(t, (112.5+0.2*3.75)*2.0, area.RadiusNm, 0.05)
}

func TestEstimateZeroAltitudeIsDegenerate(t *testing.T) {
	req := baseRequest()
	req.Flight.AltitudeFt = 0

	_, err := Estimate(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDegenerateGeometry))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Request)
	}{
		{"latitude too low", func(r *core.Request) { r.Flight.Position.Lat = -90.5 }},
		{"latitude too high", func(r *core.Request) { r.Flight.Position.Lat = 91 }},
		{"longitude out of range", func(r *core.Request) { r.Flight.Position.Lon = 181 }},
		{"negative altitude", func(r *core.Request) { r.Flight.AltitudeFt = -1 }},
		{"negative ground speed", func(r *core.Request) { r.Flight.GroundSpeedKt = -10 }},
		{"heading at 360", func(r *core.Request) { r.Flight.HeadingDeg = 360 }},
		{"negative heading", func(r *core.Request) { r.Flight.HeadingDeg = -1 }},
		{"negative wind speed", func(r *core.Request) { r.Wind.SpeedKt = -5 }},
		{"wind direction at 360", func(r *core.Request) { r.Wind.DirectionDeg = 360 }},
		{"zero glide ratio", func(r *core.Request) { r.Profile.GlideRatio = 0 }},
		{"negative descent rate", func(r *core.Request) { r.Profile.EmergencyDescentRateFtMin = -1 }},
		{"multiplier below one", func(r *core.Request) { r.RadiusMultiplier = 0.9 }},
		{"zero sample count", func(r *core.Request) { r.SampleCount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			err := Validate(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidInput))
		})
	}
}

func TestValidateAcceptsBaseRequest(t *testing.T) {
	require.NoError(t, Validate(baseRequest()))
}
