package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Point(t *testing.T) {
	p := milton.Point()
	assert.Equal(t, SRID, p.SRID())
	assert.InDelta(t, milton.Lng, p.X(), 1e-12)
	assert.InDelta(t, milton.Lat, p.Y(), 1e-12)
}

func TestSnapToCell(t *testing.T) {
	snapped, err := SnapToCell(milton, 9)
	require.NoError(t, err)
	// Res 9 cells have ~175m edges.
	assert.Less(t, DistanceKm(milton, snapped), 0.5)

	nearby := Coordinate{Lat: milton.Lat + 0.00001, Lng: milton.Lng}
	snappedNearby, err := SnapToCell(nearby, 9)
	require.NoError(t, err)

	c1, err := milton.Cell(9)
	require.NoError(t, err)
	c2, err := nearby.Cell(9)
	require.NoError(t, err)
	if c1 == c2 {
		assert.Equal(t, snapped, snappedNearby)
	}
}

func TestCoordinate_CellInvalidResolution(t *testing.T) {
	_, err := milton.Cell(16)
	assert.Error(t, err)
}

func TestViewport(t *testing.T) {
	v := Viewport{
		Northeast: Coordinate{Lat: -27.4, Lng: 153.1},
		Southwest: Coordinate{Lat: -27.5, Lng: 152.9},
	}
	assert.True(t, v.Contains(milton))
	assert.False(t, v.Contains(Coordinate{Lat: -27.6, Lng: 153.0}))

	b := v.Bounds()
	assert.InDelta(t, 152.9, b.Min(0), 1e-12)
	assert.InDelta(t, -27.5, b.Min(1), 1e-12)
	assert.InDelta(t, 153.1, b.Max(0), 1e-12)
	assert.InDelta(t, -27.4, b.Max(1), 1e-12)

	assert.True(t, v.Contains(v.Center()))
}

func TestViewport_Antimeridian(t *testing.T) {
	v := Viewport{
		Northeast: Coordinate{Lat: 10, Lng: -170},
		Southwest: Coordinate{Lat: -10, Lng: 170},
	}
	assert.True(t, v.Contains(Coordinate{Lat: 0, Lng: 179}))
	assert.True(t, v.Contains(Coordinate{Lat: 0, Lng: -175}))
	assert.False(t, v.Contains(Coordinate{Lat: 0, Lng: 0}))
}
