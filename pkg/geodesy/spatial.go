package geodesy

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/uber/h3-go/v4"
)

// SRID is the spatial reference of every geometry produced here (WGS 84).
const SRID = 4326

// Point converts the coordinate to a go-geom point (x = lng, y = lat).
func (c Coordinate) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Lng, c.Lat}).SetSRID(SRID)
}

// Cell returns the H3 cell containing c at the given resolution (0-15).
func (c Coordinate) Cell(res int) (h3.Cell, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(c.Lat, c.Lng), res)
	if err != nil {
		return 0, eris.Wrapf(err, "geodesy: h3 cell at res %d", res)
	}
	return cell, nil
}

// SnapToCell moves c to the center of its H3 cell so lookups for nearby
// points resolve to one canonical coordinate.
func SnapToCell(c Coordinate, res int) (Coordinate, error) {
	cell, err := c.Cell(res)
	if err != nil {
		return Coordinate{}, err
	}
	center, err := h3.CellToLatLng(cell)
	if err != nil {
		return Coordinate{}, eris.Wrapf(err, "geodesy: h3 cell center %s", cell.String())
	}
	return Coordinate{Lat: center.Lat, Lng: center.Lng}, nil
}

// Viewport is a lat/lng bounding box given by its corners.
type Viewport struct {
	Northeast Coordinate `json:"northeast" yaml:"northeast"`
	Southwest Coordinate `json:"southwest" yaml:"southwest"`
}

// Contains reports whether c lies inside the viewport, edges included.
// Viewports crossing the antimeridian (Southwest.Lng > Northeast.Lng) wrap.
func (v Viewport) Contains(c Coordinate) bool {
	if c.Lat < v.Southwest.Lat || c.Lat > v.Northeast.Lat {
		return false
	}
	if v.Southwest.Lng <= v.Northeast.Lng {
		return c.Lng >= v.Southwest.Lng && c.Lng <= v.Northeast.Lng
	}
	return c.Lng >= v.Southwest.Lng || c.Lng <= v.Northeast.Lng
}

// Bounds converts the viewport to go-geom bounds in x = lng, y = lat order.
func (v Viewport) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(v.Southwest.Lng, v.Southwest.Lat, v.Northeast.Lng, v.Northeast.Lat)
}

// Center is the midpoint of the viewport's diagonal.
func (v Viewport) Center() Coordinate {
	return Midpoint(v.Southwest, v.Northeast)
}
