package google

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testPlacesBase  = "https://places.test/place/"
	testGeocodeBase = "https://geo.test/geocode/"
)

// fakeTransport records every request and answers through handle.
type fakeTransport struct {
	t      *testing.T
	handle func(u *url.URL) (*RawResponse, error)

	mu    sync.Mutex
	calls []*url.URL
}

func newFakeTransport(t *testing.T, handle func(u *url.URL) (*RawResponse, error)) *fakeTransport {
	return &fakeTransport{t: t, handle: handle}
}

func (f *fakeTransport) Get(ctx context.Context, raw string) (*RawResponse, error) {
	u, err := url.Parse(raw)
	require.NoError(f.t, err)
	f.mu.Lock()
	f.calls = append(f.calls, u)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.handle(u)
}

func (f *fakeTransport) Calls() []*url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*url.URL(nil), f.calls...)
}

func (f *fakeTransport) CallsTo(path string) int {
	n := 0
	for _, u := range f.Calls() {
		if u.Path == path {
			n++
		}
	}
	return n
}

func newTestClient(tr Transport, opts ...Option) *Client {
	base := []Option{
		WithTransport(tr),
		WithPlacesBaseURL(testPlacesBase),
		WithGeocodeBaseURL(testGeocodeBase),
		WithPageRetry(5, time.Millisecond),
	}
	return NewClient("test-key", append(base, opts...)...)
}

func okBody(body string) *RawResponse {
	return &RawResponse{StatusCode: 200, Body: []byte(body)}
}

const (
	pathNearby  = "/place/nearbysearch/json"
	pathText    = "/place/textsearch/json"
	pathFind    = "/place/findplacefromtext/json"
	pathDetails = "/place/details/json"
	pathGeocode = "/geocode/json"
)

const invalidRequestBody = `{"status":"INVALID_REQUEST","results":[]}`

// typedPlacesBody only uses recognized tags, so it decodes under the strict
// schema.
const typedPlacesBody = `{
  "status": "OK",
  "html_attributions": ["Listings by Example"],
  "next_page_token": "tok-2",
  "results": [
    {
      "place_id": "p1",
      "name": "Milton Cafe",
      "formatted_address": "1 Park Rd, Milton QLD 4064, Australia",
      "geometry": {
        "location": {"lat": -27.4703967, "lng": 153.0042494},
        "viewport": {
          "northeast": {"lat": -27.46, "lng": 153.01},
          "southwest": {"lat": -27.48, "lng": 152.99}
        }
      },
      "types": ["cafe", "food", "point_of_interest", "establishment"],
      "rating": 4.5,
      "user_ratings_total": 120,
      "opening_hours": {"open_now": true},
      "address_components": [
        {"long_name": "Milton", "short_name": "Milton", "types": ["locality", "political"]}
      ]
    },
    {
      "place_id": "p2",
      "name": "Brisbane",
      "types": ["locality", "political"],
      "geometry": {"location": {"lat": -27.4698, "lng": 153.0251}}
    }
  ]
}`

// loosePlacesBody carries a category outside the recognized table.
const loosePlacesBody = `{
  "status": "OK",
  "results": [
    {
      "place_id": "p1",
      "name": "Milton Cafe",
      "formatted_address": "1 Park Rd, Milton QLD 4064, Australia",
      "geometry": {"location": {"lat": -27.4703967, "lng": 153.0042494}},
      "types": ["cafe", "coworking_space", "establishment"],
      "address_components": [
        {"long_name": "Milton", "short_name": "Milton", "types": ["locality", "ward_district"]}
      ]
    }
  ]
}`

const geocodeBody = `{
  "status": "OK",
  "results": [
    {
      "place_id": "g1",
      "formatted_address": "1 Park Rd, Milton QLD 4064, Australia",
      "geometry": {"location": {"lat": -27.4703967, "lng": 153.0042494}, "location_type": "ROOFTOP"},
      "types": ["street_address"],
      "address_components": [
        {"long_name": "1", "short_name": "1", "types": ["street_number"]},
        {"long_name": "Park Road", "short_name": "Park Rd", "types": ["route"]},
        {"long_name": "Milton", "short_name": "Milton", "types": ["locality", "political"]},
        {"long_name": "Brisbane City", "short_name": "Brisbane", "types": ["administrative_area_level_2", "political"]},
        {"long_name": "Queensland", "short_name": "QLD", "types": ["administrative_area_level_1", "political"]},
        {"long_name": "Australia", "short_name": "AU", "types": ["country", "political"]},
        {"long_name": "4064", "short_name": "4064", "types": ["postal_code"]}
      ]
    }
  ]
}`
