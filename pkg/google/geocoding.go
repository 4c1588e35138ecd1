package google

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/places-cli/pkg/geodesy"
)

// ReverseGeocode returns the addresses at a coordinate. With a reverse
// resolution configured the coordinate is first snapped to its H3 cell
// center.
func (c *Client) ReverseGeocode(ctx context.Context, at geodesy.Coordinate) (*Response[Address], error) {
	if c.reverseRes > 0 {
		snapped, err := geodesy.SnapToCell(at, c.reverseRes)
		if err != nil {
			return nil, err
		}
		at = snapped
	}
	resp, err := c.getAddresses(ctx, c.geocodeURL(
		kv("latlng", at.String()),
		kv("language", c.language),
	))
	if err != nil {
		return nil, eris.Wrapf(err, "google: reverse geocode %s", at)
	}
	return resp, nil
}

// SearchAddress geocodes a free-text address.
func (c *Client) SearchAddress(ctx context.Context, address string) (*Response[Address], error) {
	resp, err := c.getAddresses(ctx, c.geocodeURL(
		kv("address", address),
		kv("language", c.language),
	))
	if err != nil {
		return nil, eris.Wrap(err, "google: geocode address")
	}
	return resp, nil
}

// SearchAddressInBounds geocodes address, preferring results inside bounds.
func (c *Client) SearchAddressInBounds(ctx context.Context, address string, bounds geodesy.Viewport) (*Response[Address], error) {
	resp, err := c.getAddresses(ctx, c.geocodeURL(
		kv("address", address),
		kv("bounds", bounds.Southwest.String()+"|"+bounds.Northeast.String()),
		kv("language", c.language),
	))
	if err != nil {
		return nil, eris.Wrap(err, "google: geocode address in bounds")
	}
	return resp, nil
}

// GeocodePlaceID returns the addresses of a place id.
func (c *Client) GeocodePlaceID(ctx context.Context, placeID string) (*Response[Address], error) {
	resp, err := c.getAddresses(ctx, c.geocodeURL(
		kv("place_id", placeID),
		kv("language", c.language),
	))
	if err != nil {
		return nil, eris.Wrapf(err, "google: geocode place %s", placeID)
	}
	return resp, nil
}

// CoordinatesFromAddress returns the location of the first match for
// address, or nil when there is none.
func (c *Client) CoordinatesFromAddress(ctx context.Context, address string) (*geodesy.Coordinate, error) {
	resp, err := c.SearchAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	loc := resp.Results[0].Geometry.Location
	return &loc, nil
}

// CityFromCoordinates reverse geocodes a coordinate and reports its city,
// state and country across all returned components. The city is the short
// name of the second-level area, else the third-level area, else the
// locality.
func (c *Client) CityFromCoordinates(ctx context.Context, at geodesy.Coordinate) (Locality, error) {
	resp, err := c.ReverseGeocode(ctx, at)
	if err != nil {
		return Locality{}, err
	}
	comps := Addresses(resp.Results).Components()
	return Locality{
		City:    cityOf(comps),
		State:   comps.State(),
		Country: comps.Country(),
	}, nil
}
