package google

import (
	"github.com/sells-group/places-cli/pkg/geodesy"
)

// SearchFamily scopes page tokens to the search that issued them.
type SearchFamily string

// Search families with continuation support.
const (
	FamilyText   SearchFamily = "textsearch"
	FamilyNearby SearchFamily = "nearbysearch"
)

// PageToken is a continuation token together with the family that issued it.
type PageToken struct {
	Family SearchFamily `json:"family,omitempty" yaml:"family,omitempty"`
	Value  string       `json:"value,omitempty" yaml:"value,omitempty"`
}

// IsZero reports whether there is no further page.
func (t PageToken) IsZero() bool { return t.Value == "" }

// Geometry locates a place or address.
type Geometry struct {
	Location     geodesy.Coordinate `json:"location" yaml:"location"`
	LocationType string             `json:"location_type,omitempty" yaml:"location_type,omitempty"`
	Viewport     *geodesy.Viewport  `json:"viewport,omitempty" yaml:"viewport,omitempty"`
}

// PlusCode is an Open Location Code reference.
type PlusCode struct {
	GlobalCode   string `json:"global_code,omitempty" yaml:"global_code,omitempty"`
	CompoundCode string `json:"compound_code,omitempty" yaml:"compound_code,omitempty"`
}

// OpeningHours is the opening state and weekly schedule of a place.
type OpeningHours struct {
	OpenNow     bool     `json:"open_now" yaml:"open_now"`
	WeekdayText []string `json:"weekday_text,omitempty" yaml:"weekday_text,omitempty"`
}

// Photo references an image of a place.
type Photo struct {
	PhotoReference   string   `json:"photo_reference" yaml:"photo_reference"`
	Height           int      `json:"height" yaml:"height"`
	Width            int      `json:"width" yaml:"width"`
	HTMLAttributions []string `json:"html_attributions,omitempty" yaml:"html_attributions,omitempty"`
}

// AltID is an alternative place id with its scope.
type AltID struct {
	PlaceID string `json:"place_id" yaml:"place_id"`
	Scope   string `json:"scope" yaml:"scope"`
}

// AddressComponent is one part of a structured address.
type AddressComponent struct {
	LongName  string              `json:"long_name" yaml:"long_name"`
	ShortName string              `json:"short_name" yaml:"short_name"`
	Types     TagSet[AddressType] `json:"types" yaml:"types"`
}

// Address is a geocoding result.
type Address struct {
	PlaceID          string              `json:"place_id" yaml:"place_id"`
	FormattedAddress string              `json:"formatted_address" yaml:"formatted_address"`
	Geometry         Geometry            `json:"geometry" yaml:"geometry"`
	Components       AddressComponents   `json:"address_components" yaml:"address_components"`
	Types            TagSet[AddressType] `json:"types" yaml:"types"`
	PartialMatch     bool                `json:"partial_match,omitempty" yaml:"partial_match,omitempty"`
	PlusCode         *PlusCode           `json:"plus_code,omitempty" yaml:"plus_code,omitempty"`
}

// Place is a search, find or details result.
type Place struct {
	PlaceID                  string            `json:"place_id" yaml:"place_id"`
	Name                     string            `json:"name" yaml:"name"`
	FormattedAddress         string            `json:"formatted_address,omitempty" yaml:"formatted_address,omitempty"`
	AdrAddress               string            `json:"adr_address,omitempty" yaml:"adr_address,omitempty"`
	Vicinity                 string            `json:"vicinity,omitempty" yaml:"vicinity,omitempty"`
	Icon                     string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Geometry                 Geometry          `json:"geometry" yaml:"geometry"`
	OpeningHours             *OpeningHours     `json:"opening_hours,omitempty" yaml:"opening_hours,omitempty"`
	Photos                   []Photo           `json:"photos,omitempty" yaml:"photos,omitempty"`
	Scope                    string            `json:"scope,omitempty" yaml:"scope,omitempty"`
	AltIDs                   []AltID           `json:"alt_ids,omitempty" yaml:"alt_ids,omitempty"`
	PriceLevel               int               `json:"price_level,omitempty" yaml:"price_level,omitempty"`
	Rating                   float64           `json:"rating,omitempty" yaml:"rating,omitempty"`
	UserRatingsTotal         int               `json:"user_ratings_total,omitempty" yaml:"user_ratings_total,omitempty"`
	Reference                string            `json:"reference,omitempty" yaml:"reference,omitempty"`
	PermanentlyClosed        bool              `json:"permanently_closed,omitempty" yaml:"permanently_closed,omitempty"`
	BusinessStatus           string            `json:"business_status,omitempty" yaml:"business_status,omitempty"`
	PlusCode                 *PlusCode         `json:"plus_code,omitempty" yaml:"plus_code,omitempty"`
	FormattedPhoneNumber     string            `json:"formatted_phone_number,omitempty" yaml:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string            `json:"international_phone_number,omitempty" yaml:"international_phone_number,omitempty"`
	Website                  string            `json:"website,omitempty" yaml:"website,omitempty"`
	URL                      string            `json:"url,omitempty" yaml:"url,omitempty"`
	UTCOffset                *int              `json:"utc_offset,omitempty" yaml:"utc_offset,omitempty"`
	Types                    TagSet[PlaceType] `json:"types" yaml:"types"`
	Components               AddressComponents `json:"address_components,omitempty" yaml:"address_components,omitempty"`

	// Addresses is filled by the enrichment calls only.
	Addresses []Address `json:"addresses,omitempty" yaml:"addresses,omitempty"`
}

// SamePlace reports whether both values describe the same place id.
func (p Place) SamePlace(other Place) bool {
	return p.PlaceID != "" && p.PlaceID == other.PlaceID
}

// Response is a decoded envelope. Results and Candidates are never nil.
type Response[T any] struct {
	Status           string    `json:"status" yaml:"status"`
	ErrorMessage     string    `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	Results          []T       `json:"results" yaml:"results"`
	Candidates       []T       `json:"candidates" yaml:"candidates"`
	Result           *T        `json:"result,omitempty" yaml:"result,omitempty"`
	HTMLAttributions []string  `json:"html_attributions,omitempty" yaml:"html_attributions,omitempty"`
	NextPage         PageToken `json:"next_page" yaml:"next_page"`
}

// Items returns whichever collection the endpoint filled: results, then
// candidates, then the single details result.
func (r *Response[T]) Items() []T {
	switch {
	case len(r.Results) > 0:
		return r.Results
	case len(r.Candidates) > 0:
		return r.Candidates
	case r.Result != nil:
		return []T{*r.Result}
	default:
		return []T{}
	}
}

// Locality is the city, state and country of a coordinate.
type Locality struct {
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	Country string `json:"country" yaml:"country"`
}
