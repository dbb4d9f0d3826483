package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// Geometry columns hold WKB bytes, so both Postgres and SQLite round-trip
// them without a spatial extension. See geometry.go.

// DatabaseModels lists every struct representing a table in the schema.
var DatabaseModels = []interface{}{
	&Aircraft{},
	&AircraftPosition{},
	&SearchQuery{},
	&SearchResult{},
	&EmergencyPrediction{},
}

// Aircraft is a tracked airframe, keyed by its ICAO24 transponder address.
type Aircraft struct {
	gorm.Model
	ICAO24        string `json:"icao24" gorm:"size:24;uniqueIndex;not null"`
	Callsign      string `json:"callsign" gorm:"size:10"`
	AircraftType  string `json:"aircraftType" gorm:"size:50"`
	OriginCountry string `json:"originCountry" gorm:"size:100"`

	Positions   []AircraftPosition    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Predictions []EmergencyPrediction `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Aircraft) TableName() string {
	return "aircraft"
}

// AircraftPosition is one sample of an aircraft's position time series.
type AircraftPosition struct {
	gorm.Model
	AircraftID uint      `json:"aircraftId" gorm:"index;not null"`
	Time       time.Time `json:"time" gorm:"index"`

	Latitude        float64 `json:"latitude" gorm:"not null"`
	Longitude       float64 `json:"longitude" gorm:"not null"`
	AltitudeFt      float64 `json:"altitudeFt"`
	GroundSpeedKt   float64 `json:"groundSpeedKt"`
	HeadingDeg      float64 `json:"headingDeg"`
	VerticalSpeedFt float64 `json:"verticalSpeedFt"`
	OnGround        bool    `json:"onGround"`
}

func (*AircraftPosition) TableName() string {
	return "aircraft_positions"
}

// SearchQuery records the parameters of a user-initiated aircraft search.
type SearchQuery struct {
	gorm.Model
	SearchType  string `json:"searchType" gorm:"size:50;not null"` // callsign, icao24, country
	SearchValue string `json:"searchValue" gorm:"size:100;not null"`

	Results []SearchResult `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*SearchQuery) TableName() string {
	return "search_queries"
}

// SearchResult links a query to an aircraft it matched.
type SearchResult struct {
	gorm.Model
	SearchQueryID uint `json:"queryId" gorm:"index;not null"`
	AircraftID    uint `json:"aircraftId" gorm:"index;not null"`
}

func (*SearchResult) TableName() string {
	return "search_results"
}

// EmergencyPrediction stores one search-area calculation: the inputs at
// prediction time and the resulting center, radius and boundary.
type EmergencyPrediction struct {
	gorm.Model
	AircraftID uint      `json:"aircraftId" gorm:"index"`
	Time       time.Time `json:"time" gorm:"index"`

	// Aircraft state at prediction time
	Latitude        float64 `json:"latitude" gorm:"not null"`
	Longitude       float64 `json:"longitude" gorm:"not null"`
	AltitudeFt      float64 `json:"altitudeFt" gorm:"not null"`
	GroundSpeedKt   float64 `json:"groundSpeedKt"`
	HeadingDeg      float64 `json:"headingDeg"`
	VerticalSpeedFt float64 `json:"verticalSpeedFt"`

	// Environment
	WindSpeedKt      float64 `json:"windSpeedKt"`
	WindDirectionDeg float64 `json:"windDirectionDeg"`

	// Profile inputs
	AircraftType string  `json:"aircraftType" gorm:"size:50"`
	GlideRatio   float64 `json:"glideRatio"`

	// Results
	CenterLatitude  float64  `json:"centerLatitude" gorm:"not null"`
	CenterLongitude float64  `json:"centerLongitude" gorm:"not null"`
	Center          Geometry `json:"center"`
	Boundary        Geometry `json:"boundary"`
	GlideDistanceNm float64  `json:"glideDistanceNm"`
	GlideTimeMin    float64  `json:"glideTimeMin"`
	RadiusNm        float64  `json:"radiusNm"`

	// Details holds anything extra: sample count, seed, export paths.
	Details datatypes.JSON `json:"details"`
}

func (*EmergencyPrediction) TableName() string {
	return "emergency_predictions"
}
