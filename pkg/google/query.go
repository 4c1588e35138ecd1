package google

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/places-cli/pkg/geodesy"
)

const (
	// DefaultPlacesBaseURL is the Places web service root.
	DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place/"
	// DefaultGeocodeBaseURL is the Geocoding web service root.
	DefaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/"
)

// Field groups requested when the caller does not pass its own list.
var (
	SearchFieldsBasic = []string{
		"formatted_address", "geometry", "icon", "name", "permanently_closed",
		"photos", "place_id", "plus_code", "types",
	}
	SearchFieldsContact    = []string{"opening_hours"}
	SearchFieldsAtmosphere = []string{"price_level", "rating", "user_ratings_total"}

	DetailsFieldsBasic = []string{
		"address_component", "adr_address", "formatted_address", "geometry", "icon",
		"name", "permanently_closed", "photo", "place_id", "plus_code", "type", "url",
		"utc_offset", "vicinity",
	}
	DetailsFieldsContact = []string{
		"formatted_phone_number", "international_phone_number", "opening_hours", "website",
	}
	DetailsFieldsAtmosphere = []string{"price_level", "rating", "user_ratings_total"}
)

func fieldList(fields []string, defaults ...[]string) string {
	if len(fields) > 0 {
		return strings.Join(fields, ",")
	}
	var all []string
	for _, d := range defaults {
		all = append(all, d...)
	}
	return strings.Join(all, ",")
}

// RankBy orders nearby search results.
type RankBy string

// Nearby search orderings.
const (
	RankByProminence RankBy = "prominence"
	RankByDistance   RankBy = "distance"
)

// param is one query parameter. Empty values are not sent.
type param struct {
	key   string
	value string
}

func kv(key, value string) param { return param{key: key, value: value} }

func intParam(key string, v int) param {
	if v <= 0 {
		return param{key: key}
	}
	return param{key: key, value: strconv.Itoa(v)}
}

func coordParam(key string, c *geodesy.Coordinate) param {
	if c == nil {
		return param{key: key}
	}
	return param{key: key, value: c.String()}
}

func extraParams(extra url.Values) []param {
	var out []param
	for k, vs := range extra {
		for _, v := range vs {
			out = append(out, param{key: k, value: v})
		}
	}
	return out
}

// buildURL renders base+path with NFC-normalized parameters and the key.
func buildURL(base, path, key string, params []param) string {
	q := url.Values{}
	for _, prm := range params {
		if prm.value == "" {
			continue
		}
		q.Set(prm.key, norm.NFC.String(prm.value))
	}
	q.Set("key", key)
	return base + path + "?" + q.Encode()
}

func (c *Client) placesURL(kind string, params ...param) string {
	return buildURL(c.placesBase, kind+"/json", c.apiKey, params)
}

func (c *Client) geocodeURL(params ...param) string {
	return buildURL(c.geocodeBase, "json", c.apiKey, params)
}

// tokenURL is the token-only continuation request. No other filter is sent
// alongside a page token.
func (c *Client) tokenURL(tok PageToken) string {
	return c.placesBase + string(tok.Family) + "/json?pagetoken=" + url.QueryEscape(tok.Value) +
		"&key=" + url.QueryEscape(c.apiKey)
}

func validateRanking(rankBy RankBy, radius int, keyword string, typ PlaceType, extra url.Values) error {
	if rankBy != RankByDistance {
		return nil
	}
	if radius > 0 {
		return ErrRankByDistanceRadius
	}
	if keyword == "" && typ == "" && extra.Get("name") == "" && extra.Get("type") == "" && extra.Get("keyword") == "" {
		return ErrRankByDistanceFilter
	}
	return nil
}

func withSlash(base string) string {
	if base == "" || strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}
