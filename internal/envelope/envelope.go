// Package envelope converts aircraft performance figures and the last known
// flight state into glide distance and time-to-impact estimates.
package envelope

import (
	"fmt"
	"math"

	"github.com/sarscope/sarscope/pkg/core"
)

// FeetPerNm is the number of feet in one nautical mile.
const FeetPerNm = 6076.0

// GlideDistanceNm returns the maximum unpowered glide distance in nautical
// miles for the given altitude and glide ratio. Linear in both arguments.
func GlideDistanceNm(altitudeFt, glideRatio float64) float64 {
	return (altitudeFt / FeetPerNm) * glideRatio
}

// TimeToImpactMinutes estimates minutes until ground contact.
//
// A descending aircraft is assumed to hold its current vertical speed. A
// level or climbing aircraft is assumed to convert instantly into an
// emergency descent at the type's rated rate, which is the conservative
// worst case for a search estimate.
func TimeToImpactMinutes(altitudeFt, verticalSpeedFtMin, emergencyDescentRateFtMin float64) (float64, error) {
	if verticalSpeedFtMin < 0 {
		return altitudeFt / math.Abs(verticalSpeedFtMin), nil
	}
	if emergencyDescentRateFtMin <= 0 {
		return 0, fmt.Errorf("%w: emergency descent rate must be positive, got %v",
			core.ErrInvalidInput, emergencyDescentRateFtMin)
	}
	return altitudeFt / emergencyDescentRateFtMin, nil
}
