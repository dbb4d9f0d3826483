// Package estimator computes the deterministic search area for a missing
// aircraft: a drift-corrected center point and a search radius derived from
// the glide envelope and wind conditions.
package estimator

import (
	"fmt"

	"github.com/sarscope/sarscope/internal/envelope"
	"github.com/sarscope/sarscope/internal/geo"
	"github.com/sarscope/sarscope/pkg/core"
)

// windUncertaintyFactor is the share of the wind drift distance added to the
// base radius to account for wind estimate error.
const windUncertaintyFactor = 0.2

// Validate checks every numeric field of a request against its documented
// range. It wraps core.ErrInvalidInput and reports the first violation; no
// geometry is computed for an invalid request.
func Validate(req core.Request) error {
	f := req.Flight
	switch {
	case f.Position.Lat < -90 || f.Position.Lat > 90:
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", core.ErrInvalidInput, f.Position.Lat)
	case f.Position.Lon < -180 || f.Position.Lon > 180:
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", core.ErrInvalidInput, f.Position.Lon)
	case f.AltitudeFt < 0:
		return fmt.Errorf("%w: altitude %v ft is negative", core.ErrInvalidInput, f.AltitudeFt)
	case f.GroundSpeedKt < 0:
		return fmt.Errorf("%w: ground speed %v kt is negative", core.ErrInvalidInput, f.GroundSpeedKt)
	case f.HeadingDeg < 0 || f.HeadingDeg >= 360:
		return fmt.Errorf("%w: heading %v outside [0, 360)", core.ErrInvalidInput, f.HeadingDeg)
	}

	w := req.Wind
	switch {
	case w.SpeedKt < 0:
		return fmt.Errorf("%w: wind speed %v kt is negative", core.ErrInvalidInput, w.SpeedKt)
	case w.DirectionDeg < 0 || w.DirectionDeg >= 360:
		return fmt.Errorf("%w: wind direction %v outside [0, 360)", core.ErrInvalidInput, w.DirectionDeg)
	}

	p := req.Profile
	switch {
	case p.GlideRatio <= 0:
		return fmt.Errorf("%w: glide ratio %v must be positive", core.ErrInvalidInput, p.GlideRatio)
	case p.EmergencyDescentRateFtMin <= 0:
		return fmt.Errorf("%w: emergency descent rate %v must be positive", core.ErrInvalidInput, p.EmergencyDescentRateFtMin)
	}

	if req.RadiusMultiplier < 1 {
		return fmt.Errorf("%w: radius multiplier %v must be >= 1", core.ErrInvalidInput, req.RadiusMultiplier)
	}
	if req.SampleCount < 1 {
		return fmt.Errorf("%w: sample count %d must be >= 1", core.ErrInvalidInput, req.SampleCount)
	}
	return nil
}

// Estimate computes the search area for a validated request. The computation
// is pure: the radius is exactly linear in the radius multiplier for fixed
// other inputs.
//
// The crash center is projected from the last known position along the
// heading for the distance covered during descent, then drifted downwind.
// The radius is the larger of glide distance and descent travel, padded by
// the wind uncertainty and scaled by the safety multiplier.
func Estimate(req core.Request) (core.SearchArea, error) {
	if err := Validate(req); err != nil {
		return core.SearchArea{}, err
	}

	glideDist := envelope.GlideDistanceNm(req.Flight.AltitudeFt, req.Profile.GlideRatio)

	impactMinutes, err := envelope.TimeToImpactMinutes(
		req.Flight.AltitudeFt,
		req.Flight.VerticalSpeedFt,
		req.Profile.EmergencyDescentRateFtMin,
	)
	if err != nil {
		return core.SearchArea{}, err
	}
	tHours := impactMinutes / 60

	horizontalDist := req.Flight.GroundSpeedKt * tHours
	initialCenter := geo.DestinationPoint(req.Flight.Position, req.Flight.HeadingDeg, horizontalDist)

	driftDist := req.Wind.SpeedKt * tHours
	finalCenter := geo.DestinationPoint(initialCenter, req.Wind.DirectionDeg, driftDist)

	baseRadius := glideDist
	if horizontalDist > baseRadius {
		baseRadius = horizontalDist
	}
	radius := (baseRadius + windUncertaintyFactor*driftDist) * req.RadiusMultiplier

	if radius <= 0 {
		return core.SearchArea{}, fmt.Errorf(
			"%w: computed radius %v nm", core.ErrDegenerateGeometry, radius)
	}

	return core.SearchArea{
		Center:          finalCenter,
		RadiusNm:        radius,
		GlideDistanceNm: glideDist,
	}, nil
}
