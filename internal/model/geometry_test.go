package model

import (
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryRoundTrip(t *testing.T) {
	point := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: -122.4194, Y: 37.7749},
		Type: geom.DimXY,
	})
	g := NewGeometry(point.AsGeometry())

	val, err := g.Value()
	require.NoError(t, err)
	wkb, ok := val.([]byte)
	require.True(t, ok)
	require.NotEmpty(t, wkb)

	var scanned Geometry
	require.NoError(t, scanned.Scan(wkb))
	xy, ok := scanned.Geometry.MustAsPoint().XY()
	require.True(t, ok)
	assert.InDelta(t, -122.4194, xy.X, 1e-9)
	assert.InDelta(t, 37.7749, xy.Y, 1e-9)
}

func TestGeometryScanRejectsNonBytes(t *testing.T) {
	var g Geometry
	assert.Error(t, g.Scan("not bytes"))
}
