package model

import (
	"database/sql/driver"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Geometry stores a simplefeatures geometry as WKB so both Postgres and
// SQLite can hold it without a spatial extension.
type Geometry struct {
	geom.Geometry
}

// NewGeometry wraps a geometry for storage.
func NewGeometry(g geom.Geometry) Geometry {
	return Geometry{Geometry: g}
}

// GormDataType maps the column to the dialect's byte type.
func (Geometry) GormDataType() string {
	return "bytes"
}

// Value encodes the geometry as WKB.
func (g Geometry) Value() (driver.Value, error) {
	return g.Geometry.AsBinary(), nil
}

// Scan decodes a WKB column value. NULL leaves the zero geometry in place.
func (g *Geometry) Scan(input interface{}) error {
	if input == nil {
		return nil
	}
	raw, ok := input.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Geometry", input)
	}
	if len(raw) == 0 {
		return nil
	}
	parsed, err := geom.UnmarshalWKB(raw)
	if err != nil {
		return fmt.Errorf("unmarshal WKB: %w", err)
	}
	g.Geometry = parsed
	return nil
}
