// Package geodesy provides spherical-earth helpers: great-circle distance,
// forward projection from a bearing, and midpoints.
package geodesy

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// EarthRadiusKm is the mean Earth radius used by Destination.
const EarthRadiusKm = 6371.0

// Tolerance is the per-axis slack, in degrees, under which two coordinates
// are considered the same place (~1m).
const Tolerance = 0.00001

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Equal reports whether c and o are within Tolerance on both axes.
func (c Coordinate) Equal(o Coordinate) bool {
	return math.Abs(c.Lat-o.Lat) < Tolerance && math.Abs(c.Lng-o.Lng) < Tolerance
}

// String renders the coordinate as "lat,lng", the form the upstream API
// expects in query strings.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// ParseCoordinate parses a "lat,lng" string.
func ParseCoordinate(s string) (Coordinate, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, eris.Errorf("geodesy: parse coordinate %q: want lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, eris.Wrapf(err, "geodesy: parse latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coordinate{}, eris.Wrapf(err, "geodesy: parse longitude %q", lngStr)
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// Unit selects the output unit of Distance.
type Unit int

const (
	// Kilometers is the default unit.
	Kilometers Unit = iota
	// Miles are statute miles.
	Miles
	// NauticalMiles are international nautical miles.
	NauticalMiles
	// Meters.
	Meters
)

// fromMiles converts statute miles into the unit.
func (u Unit) fromMiles(miles float64) float64 {
	switch u {
	case Miles:
		return miles
	case NauticalMiles:
		return miles * 0.8684
	case Meters:
		return miles * 1609.344
	default:
		return miles * 1.609344
	}
}

func (u Unit) String() string {
	switch u {
	case Miles:
		return "mi"
	case NauticalMiles:
		return "nmi"
	case Meters:
		return "m"
	default:
		return "km"
	}
}

// ParseUnit maps "km", "mi", "nmi" and "m" to a Unit. Empty means Kilometers.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "", "km", "kilometers":
		return Kilometers, nil
	case "mi", "miles":
		return Miles, nil
	case "nmi", "nautical":
		return NauticalMiles, nil
	case "m", "meters":
		return Meters, nil
	default:
		return Kilometers, eris.Errorf("geodesy: unknown unit %q", s)
	}
}

// Distance returns the great-circle distance between a and b using the
// spherical law of cosines. The arc is expressed in statute miles
// (degrees × 60 × 1.1515) and then converted to unit.
func Distance(a, b Coordinate, unit Unit) float64 {
	aRad := toRadians(a.Lat)
	bRad := toRadians(b.Lat)
	thetaRad := toRadians(a.Lng - b.Lng)

	cosArc := math.Sin(aRad)*math.Sin(bRad) + math.Cos(aRad)*math.Cos(bRad)*math.Cos(thetaRad)
	// Rounding can push identical points just past 1.
	cosArc = math.Max(-1, math.Min(1, cosArc))

	dist := toDegrees(math.Acos(cosArc))
	dist = dist * 60 * 1.1515

	return unit.fromMiles(dist)
}

// DistanceKm is Distance in kilometers.
func DistanceKm(a, b Coordinate) float64 {
	return Distance(a, b, Kilometers)
}

// RoundedDistanceKm is DistanceKm rounded to the nearest integer, ties to even.
func RoundedDistanceKm(a, b Coordinate) int {
	return int(math.RoundToEven(DistanceKm(a, b)))
}

// Destination projects origin by distanceKm along the initial bearing
// (degrees clockwise from north).
func Destination(origin Coordinate, bearingDeg, distanceKm float64) Coordinate {
	bearing := toRadians(bearingDeg)
	lat1 := toRadians(origin.Lat)
	lng1 := toRadians(origin.Lng)
	arc := distanceKm / EarthRadiusKm

	a := math.Sin(arc) * math.Cos(lat1)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(arc) + a*math.Cos(bearing))
	lng2 := lng1 + math.Atan2(math.Sin(bearing)*a, math.Cos(arc)-math.Sin(lat1)*math.Sin(lat2))

	return Coordinate{Lat: toDegrees(lat2), Lng: toDegrees(lng2)}
}

// Midpoint returns the point halfway along the great circle from a to b.
func Midpoint(a, b Coordinate) Coordinate {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	bx := math.Cos(lat2) * math.Cos(dLng)
	by := math.Cos(lat2) * math.Sin(dLng)

	lat := math.Atan2(
		math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by),
	)
	lng := toRadians(a.Lng) + math.Atan2(by, math.Cos(lat1)+bx)

	return Coordinate{Lat: toDegrees(lat), Lng: toDegrees(lng)}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
