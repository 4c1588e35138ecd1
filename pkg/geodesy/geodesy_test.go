package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var milton = Coordinate{Lat: -27.4703967, Lng: 153.0042494}

func TestDestination_NorthRoundTrip(t *testing.T) {
	dest := Destination(milton, 0, 1)
	assert.Equal(t, 1, RoundedDistanceKm(milton, dest))
	assert.Greater(t, dest.Lat, milton.Lat)
	assert.InDelta(t, milton.Lng, dest.Lng, 1e-9)
}

func TestDestination_SouthRoundTrip(t *testing.T) {
	dest := Destination(milton, 180, 1)
	assert.Equal(t, 1, RoundedDistanceKm(milton, dest))
	assert.Less(t, dest.Lat, milton.Lat)
}

func TestDestination_RoundTripBearings(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		for _, km := range []float64{1, 5, 25} {
			dest := Destination(milton, bearing, km)
			assert.InDelta(t, km, DistanceKm(milton, dest), 0.01, "bearing=%v km=%v", bearing, km)
		}
	}
}

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	d := DistanceKm(milton, milton)
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, 0, d, 1e-9)
}

func TestDistance_Antipodal(t *testing.T) {
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 180}
	// 180 degrees of arc in the statute-mile approximation.
	want := 180 * 60 * 1.1515 * 1.609344
	assert.InDelta(t, want, DistanceKm(a, b), 1e-6)
	assert.InDelta(t, math.Pi*EarthRadiusKm, DistanceKm(a, b), 20)
}

func TestDistance_Units(t *testing.T) {
	a := Coordinate{Lat: 51.5007, Lng: -0.1246}
	b := Coordinate{Lat: 40.6892, Lng: -74.0445}

	miles := Distance(a, b, Miles)
	assert.InDelta(t, miles*1.609344, Distance(a, b, Kilometers), 1e-9)
	assert.InDelta(t, miles*0.8684, Distance(a, b, NauticalMiles), 1e-9)
	assert.InDelta(t, miles*1609.344, Distance(a, b, Meters), 1e-6)
	assert.InDelta(t, 5575, DistanceKm(a, b), 30)
}

func TestDistance_Symmetric(t *testing.T) {
	b := Coordinate{Lat: -27.456859, Lng: 153.039852}
	assert.InDelta(t, DistanceKm(milton, b), DistanceKm(b, milton), 1e-12)
}

func TestMidpoint(t *testing.T) {
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 90}
	assert.True(t, Midpoint(a, b).Equal(Coordinate{Lat: 0, Lng: 45}))

	dest := Destination(milton, 60, 10)
	mid := Midpoint(milton, dest)
	assert.InDelta(t, DistanceKm(milton, mid), DistanceKm(mid, dest), 1e-6)
	assert.InDelta(t, 5, DistanceKm(milton, mid), 0.01)
}

func TestMidpoint_NotNaiveAverage(t *testing.T) {
	a := Coordinate{Lat: 60, Lng: -30}
	b := Coordinate{Lat: 60, Lng: 30}
	mid := Midpoint(a, b)
	// Great circle bows toward the pole.
	assert.Greater(t, mid.Lat, 60.0)
	assert.InDelta(t, 0, mid.Lng, 1e-9)
}

func TestCoordinate_Equal(t *testing.T) {
	base := Coordinate{Lat: -27.4703967, Lng: 153.0042494}

	assert.True(t, base.Equal(Coordinate{Lat: base.Lat + 0.000005, Lng: base.Lng - 0.000005}))
	assert.False(t, base.Equal(Coordinate{Lat: base.Lat + 0.0001, Lng: base.Lng}))
	assert.False(t, base.Equal(Coordinate{Lat: base.Lat, Lng: base.Lng + 0.0001}))
}

func TestCoordinate_StringAndParse(t *testing.T) {
	c := Coordinate{Lat: -27.47, Lng: 153.004}
	assert.Equal(t, "-27.47,153.004", c.String())

	parsed, err := ParseCoordinate(" -27.47 , 153.004 ")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ParseCoordinate("nope")
	assert.Error(t, err)
	_, err = ParseCoordinate("1,x")
	assert.Error(t, err)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"", Kilometers},
		{"km", Kilometers},
		{"mi", Miles},
		{"nmi", NauticalMiles},
		{"m", Meters},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		if tt.in != "" {
			assert.Equal(t, tt.in, got.String())
		}
	}

	_, err := ParseUnit("furlong")
	assert.Error(t, err)
}
