package google

import (
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	errNullEnvelope = eris.New("null envelope")
	errNoResponse   = eris.New("no response")
)

// envelope is the outer shape shared by both wire schemas.
type envelope[T any] struct {
	Status           string   `json:"status"`
	ErrorMessage     string   `json:"error_message"`
	Results          []T      `json:"results"`
	Candidates       []T      `json:"candidates"`
	Result           *T       `json:"result"`
	HTMLAttributions []string `json:"html_attributions"`
	NextPageToken    string   `json:"next_page_token"`
}

// placeFields are the place fields whose typing is the same in both schemas.
type placeFields struct {
	PlaceID                  string        `json:"place_id"`
	Name                     string        `json:"name"`
	FormattedAddress         string        `json:"formatted_address"`
	AdrAddress               string        `json:"adr_address"`
	Vicinity                 string        `json:"vicinity"`
	Icon                     string        `json:"icon"`
	Geometry                 Geometry      `json:"geometry"`
	OpeningHours             *OpeningHours `json:"opening_hours"`
	Photos                   []Photo       `json:"photos"`
	Scope                    string        `json:"scope"`
	AltIDs                   []AltID       `json:"alt_ids"`
	PriceLevel               int           `json:"price_level"`
	Rating                   float64       `json:"rating"`
	UserRatingsTotal         int           `json:"user_ratings_total"`
	Reference                string        `json:"reference"`
	PermanentlyClosed        bool          `json:"permanently_closed"`
	BusinessStatus           string        `json:"business_status"`
	PlusCode                 *PlusCode     `json:"plus_code"`
	FormattedPhoneNumber     string        `json:"formatted_phone_number"`
	InternationalPhoneNumber string        `json:"international_phone_number"`
	Website                  string        `json:"website"`
	URL                      string        `json:"url"`
	UTCOffset                *int          `json:"utc_offset"`
}

type addressFields struct {
	PlaceID          string    `json:"place_id"`
	FormattedAddress string    `json:"formatted_address"`
	Geometry         Geometry  `json:"geometry"`
	PartialMatch     bool      `json:"partial_match"`
	PlusCode         *PlusCode `json:"plus_code"`
}

// Schema A: tags are enum values and an unrecognized one fails the decode.

type typedComponent struct {
	LongName  string        `json:"long_name"`
	ShortName string        `json:"short_name"`
	Types     []AddressType `json:"types"`
}

type typedPlace struct {
	placeFields
	Types      []PlaceType      `json:"types"`
	Components []typedComponent `json:"address_components"`
}

type typedAddress struct {
	addressFields
	Types      []AddressType    `json:"types"`
	Components []typedComponent `json:"address_components"`
}

// Schema B: tags are free strings.

type looseComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type loosePlace struct {
	placeFields
	Types      []string         `json:"types"`
	Components []looseComponent `json:"address_components"`
}

type looseAddress struct {
	addressFields
	Types      []string         `json:"types"`
	Components []looseComponent `json:"address_components"`
}

func typedComponents(in []typedComponent) AddressComponents {
	if in == nil {
		return nil
	}
	out := make(AddressComponents, len(in))
	for i, c := range in {
		out[i] = AddressComponent{LongName: c.LongName, ShortName: c.ShortName, Types: TagSetOf(c.Types...)}
	}
	return out
}

func looseComponents(in []looseComponent) AddressComponents {
	if in == nil {
		return nil
	}
	out := make(AddressComponents, len(in))
	for i, c := range in {
		out[i] = AddressComponent{LongName: c.LongName, ShortName: c.ShortName, Types: NewTagSet[AddressType](c.Types)}
	}
	return out
}

func newPlace(f placeFields, types TagSet[PlaceType], comps AddressComponents) Place {
	return Place{
		PlaceID:                  f.PlaceID,
		Name:                     f.Name,
		FormattedAddress:         f.FormattedAddress,
		AdrAddress:               f.AdrAddress,
		Vicinity:                 f.Vicinity,
		Icon:                     f.Icon,
		Geometry:                 f.Geometry,
		OpeningHours:             f.OpeningHours,
		Photos:                   f.Photos,
		Scope:                    f.Scope,
		AltIDs:                   f.AltIDs,
		PriceLevel:               f.PriceLevel,
		Rating:                   f.Rating,
		UserRatingsTotal:         f.UserRatingsTotal,
		Reference:                f.Reference,
		PermanentlyClosed:        f.PermanentlyClosed,
		BusinessStatus:           f.BusinessStatus,
		PlusCode:                 f.PlusCode,
		FormattedPhoneNumber:     f.FormattedPhoneNumber,
		InternationalPhoneNumber: f.InternationalPhoneNumber,
		Website:                  f.Website,
		URL:                      f.URL,
		UTCOffset:                f.UTCOffset,
		Types:                    types,
		Components:               comps,
	}
}

func newAddress(f addressFields, types TagSet[AddressType], comps AddressComponents) Address {
	return Address{
		PlaceID:          f.PlaceID,
		FormattedAddress: f.FormattedAddress,
		Geometry:         f.Geometry,
		Components:       comps,
		Types:            types,
		PartialMatch:     f.PartialMatch,
		PlusCode:         f.PlusCode,
	}
}

func fromTypedPlace(w typedPlace) Place {
	return newPlace(w.placeFields, TagSetOf(w.Types...), typedComponents(w.Components))
}

func fromLoosePlace(w loosePlace) Place {
	return newPlace(w.placeFields, NewTagSet[PlaceType](w.Types), looseComponents(w.Components))
}

func fromTypedAddress(w typedAddress) Address {
	return newAddress(w.addressFields, TagSetOf(w.Types...), typedComponents(w.Components))
}

func fromLooseAddress(w looseAddress) Address {
	return newAddress(w.addressFields, NewTagSet[AddressType](w.Types), looseComponents(w.Components))
}

// DecodePlaces decodes a Places endpoint response.
func DecodePlaces(raw *RawResponse) (*Response[Place], error) {
	return decode(raw, fromTypedPlace, fromLoosePlace)
}

// DecodeAddresses decodes a Geocoding endpoint response.
func DecodeAddresses(raw *RawResponse) (*Response[Address], error) {
	return decode(raw, fromTypedAddress, fromLooseAddress)
}

// decode turns a raw response into a canonical envelope. Non-2xx responses
// are never parsed. The strict schema is tried first and the loose schema is
// the fallback for any error. A well-formed INVALID_REQUEST envelope is
// returned as a *RequestError.
func decode[A, B, T any](raw *RawResponse, fromA func(A) T, fromB func(B) T) (*Response[T], error) {
	if raw == nil {
		return nil, &DecodeError{Err: errNoResponse}
	}
	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		return nil, &TransportError{StatusCode: raw.StatusCode, Body: raw.Body}
	}

	resp, errA := decodeAs(raw.Body, fromA)
	if errA != nil {
		var errB error
		resp, errB = decodeAs(raw.Body, fromB)
		if errB != nil {
			return nil, &DecodeError{StatusCode: raw.StatusCode, Body: raw.Body, Err: errors.Join(errA, errB)}
		}
		zap.L().Debug("google: decoded with loose schema", zap.NamedError("strict_error", errA))
	}

	if resp.Status == StatusInvalidRequest {
		msg := resp.ErrorMessage
		if msg == "" {
			msg = StatusInvalidRequest
		}
		return nil, &RequestError{Status: resp.Status, Message: msg}
	}
	return resp, nil
}

func decodeAs[W, T any](body []byte, convert func(W) T) (*Response[T], error) {
	var env *envelope[W]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, errNullEnvelope
	}

	resp := &Response[T]{
		Status:           env.Status,
		ErrorMessage:     env.ErrorMessage,
		Results:          convertAll(env.Results, convert),
		Candidates:       convertAll(env.Candidates, convert),
		HTMLAttributions: env.HTMLAttributions,
		NextPage:         PageToken{Value: env.NextPageToken},
	}
	if env.Result != nil {
		r := convert(*env.Result)
		resp.Result = &r
	}
	return resp, nil
}

func convertAll[W, T any](in []W, convert func(W) T) []T {
	out := make([]T, len(in))
	for i, w := range in {
		out[i] = convert(w)
	}
	return out
}
