// Package profiles holds the built-in aircraft performance registry. The
// engine never reads the registry itself; callers resolve a profile here and
// pass the record into the request.
package profiles

import (
	"sort"

	"github.com/sarscope/sarscope/pkg/core"
)

// DefaultType is returned when a lookup misses. A light single-engine type
// is the conservative choice: short glide, slow descent.
const DefaultType = "Small Single-Engine (Cessna 172)"

var registry = map[string]core.AircraftProfile{
	"Small Single-Engine (Cessna 172)": {
		GlideRatio:                9.0,
		MaxRangeNm:                800,
		CruiseSpeedKt:             122,
		FuelEnduranceHours:        5.0,
		EmergencyDescentRateFtMin: 1500,
	},
	"Twin-Engine Piston (Beechcraft Baron)": {
		GlideRatio:                10.0,
		MaxRangeNm:                1500,
		CruiseSpeedKt:             200,
		FuelEnduranceHours:        6.0,
		EmergencyDescentRateFtMin: 1800,
	},
	"Small Business Jet (Citation CJ3)": {
		GlideRatio:                15.0,
		MaxRangeNm:                2000,
		CruiseSpeedKt:             415,
		FuelEnduranceHours:        4.5,
		EmergencyDescentRateFtMin: 3000,
	},
	"Medium Business Jet (Gulfstream G450)": {
		GlideRatio:                17.0,
		MaxRangeNm:                4350,
		CruiseSpeedKt:             476,
		FuelEnduranceHours:        9.0,
		EmergencyDescentRateFtMin: 3500,
	},
	"Regional Airliner (Embraer E175)": {
		GlideRatio:                18.0,
		MaxRangeNm:                2200,
		CruiseSpeedKt:             447,
		FuelEnduranceHours:        4.5,
		EmergencyDescentRateFtMin: 3500,
	},
	"Narrow-Body Airliner (Boeing 737)": {
		GlideRatio:                17.0,
		MaxRangeNm:                3400,
		CruiseSpeedKt:             470,
		FuelEnduranceHours:        6.0,
		EmergencyDescentRateFtMin: 4000,
	},
	"Wide-Body Airliner (Boeing 777)": {
		GlideRatio:                19.0,
		MaxRangeNm:                7700,
		CruiseSpeedKt:             490,
		FuelEnduranceHours:        14.0,
		EmergencyDescentRateFtMin: 4500,
	},
	// Glide ratio reflects autorotation, not winged glide.
	"Helicopter (Bell 206)": {
		GlideRatio:                4.0,
		MaxRangeNm:                430,
		CruiseSpeedKt:             122,
		FuelEnduranceHours:        3.0,
		EmergencyDescentRateFtMin: 1500,
	},
}

// Lookup resolves an aircraft type to its profile. Unknown types fall back
// to the DefaultType profile; ok reports whether the lookup hit.
func Lookup(aircraftType string) (profile core.AircraftProfile, ok bool) {
	profile, ok = registry[aircraftType]
	if !ok {
		profile = registry[DefaultType]
		profile.Name = DefaultType
		return profile, false
	}
	profile.Name = aircraftType
	return profile, true
}

// Types returns all registered aircraft type names, sorted.
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
