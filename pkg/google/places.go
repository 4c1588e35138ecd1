package google

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/sells-group/places-cli/pkg/geodesy"
)

// DefaultBusinessRadius is the text-search radius, in meters, used by
// FindBusiness when none is given.
const DefaultBusinessRadius = 50000

// BusinessQuery is a text search for a business.
type BusinessQuery struct {
	Query    string
	Location *geodesy.Coordinate
	Radius   int
	// Region is a ccTLD country code biasing the results.
	Region   string
	Language string
	Type     PlaceType
	// PageToken continues an earlier text search. Every other field is then
	// ignored.
	PageToken string
	Fields    []string
}

// NearbyQuery searches around a location.
type NearbyQuery struct {
	Location geodesy.Coordinate
	Radius   int
	Language string
	Type     PlaceType
	Keyword  string
	RankBy   RankBy
	// Extra carries further service parameters such as name or opennow.
	Extra url.Values
}

// TextQuery is a free-text place search.
type TextQuery struct {
	Query    string
	Location *geodesy.Coordinate
	Radius   int
	Language string
	Type     PlaceType
	Extra    url.Values
}

// DetailsOptions tune a details lookup.
type DetailsOptions struct {
	Fields       []string
	SessionToken string
	Language     string
}

// FindBusiness runs a text search with the default search fields.
func (c *Client) FindBusiness(ctx context.Context, q BusinessQuery) (*Response[Place], error) {
	if q.PageToken != "" {
		return c.NextTextPage(ctx, PageToken{Family: FamilyText, Value: q.PageToken})
	}
	radius := q.Radius
	if radius <= 0 {
		radius = DefaultBusinessRadius
	}
	u := c.placesURL(string(FamilyText),
		kv("query", q.Query),
		kv("type", string(q.Type)),
		coordParam("location", q.Location),
		intParam("radius", radius),
		kv("region", q.Region),
		kv("language", c.lang(q.Language)),
		kv("fields", fieldList(q.Fields, SearchFieldsBasic, SearchFieldsContact, SearchFieldsAtmosphere)),
	)
	return c.searchPage(ctx, FamilyText, u)
}

// FindPlaces runs a find-place-from-text query. Matches are in Candidates.
func (c *Client) FindPlaces(ctx context.Context, input string, fields []string) (*Response[Place], error) {
	u := c.placesURL("findplacefromtext",
		kv("input", input),
		kv("inputtype", "textquery"),
		kv("language", c.language),
		kv("fields", fieldList(fields, SearchFieldsBasic, SearchFieldsContact, SearchFieldsAtmosphere)),
	)
	resp, err := c.getPlaces(ctx, u)
	if err != nil {
		return nil, eris.Wrap(err, "google: find place")
	}
	return resp, nil
}

// PlaceDetails looks up one place. The place is in Result.
func (c *Client) PlaceDetails(ctx context.Context, placeID string, opts DetailsOptions) (*Response[Place], error) {
	u := c.placesURL("details",
		kv("place_id", placeID),
		kv("sessiontoken", opts.SessionToken),
		kv("language", c.lang(opts.Language)),
		kv("fields", fieldList(opts.Fields, DetailsFieldsBasic, DetailsFieldsContact, DetailsFieldsAtmosphere)),
	)
	resp, err := c.getPlaces(ctx, u)
	if err != nil {
		return nil, eris.Wrapf(err, "google: details %s", placeID)
	}
	return resp, nil
}

// SearchNearby returns up to 20 places around q.Location. rankby=distance
// cannot be combined with a radius and needs a keyword, name or type.
func (c *Client) SearchNearby(ctx context.Context, q NearbyQuery) (*Response[Place], error) {
	if err := validateRanking(q.RankBy, q.Radius, q.Keyword, q.Type, q.Extra); err != nil {
		return nil, err
	}
	params := []param{
		coordParam("location", &q.Location),
		intParam("radius", q.Radius),
		kv("language", c.lang(q.Language)),
		kv("type", string(q.Type)),
		kv("keyword", q.Keyword),
		kv("rankby", string(q.RankBy)),
	}
	u := c.placesURL(string(FamilyNearby), append(params, extraParams(q.Extra)...)...)
	return c.searchPage(ctx, FamilyNearby, u)
}

// SearchText returns up to 20 places matching q.Query.
func (c *Client) SearchText(ctx context.Context, q TextQuery) (*Response[Place], error) {
	if err := validateRanking(RankBy(q.Extra.Get("rankby")), q.Radius, "", q.Type, q.Extra); err != nil {
		return nil, err
	}
	params := []param{
		kv("query", q.Query),
		coordParam("location", q.Location),
		intParam("radius", q.Radius),
		kv("language", c.lang(q.Language)),
		kv("type", string(q.Type)),
	}
	u := c.placesURL(string(FamilyText), append(params, extraParams(q.Extra)...)...)
	return c.searchPage(ctx, FamilyText, u)
}

func isPoliticalLocality(p Place) bool {
	return p.Types.Has(string(PlaceTypeLocality)) && p.Types.Has(string(PlaceTypePolitical))
}

func firstSpecific(places []Place) *Place {
	for i := range places {
		if !isPoliticalLocality(places[i]) {
			p := places[i]
			return &p
		}
	}
	return nil
}

// ExactPlaceByLocation finds the place at a coordinate, like "What's here?"
// on a map. It prefers the first point of interest within 10 meters that is
// not just the surrounding town, then any such place within 5 meters, then
// whatever is nearest. It returns nil when nothing is there.
func (c *Client) ExactPlaceByLocation(ctx context.Context, at geodesy.Coordinate) (*Place, error) {
	resp, err := c.SearchNearby(ctx, NearbyQuery{
		Location: at,
		Radius:   10,
		Type:     PlaceTypePointOfInterest,
		RankBy:   RankByProminence,
	})
	if err != nil {
		return nil, err
	}
	if p := firstSpecific(resp.Results); p != nil {
		return p, nil
	}

	resp, err = c.SearchNearby(ctx, NearbyQuery{Location: at, Radius: 5})
	if err != nil {
		return nil, err
	}
	if p := firstSpecific(resp.Results); p != nil {
		return p, nil
	}
	if len(resp.Results) > 0 {
		p := resp.Results[0]
		return &p, nil
	}
	return nil, nil
}

// ExactPlaceByAddress geocodes address and runs ExactPlaceByLocation there.
func (c *Client) ExactPlaceByAddress(ctx context.Context, address string) (*Place, error) {
	at, err := c.CoordinatesFromAddress(ctx, address)
	if err != nil || at == nil {
		return nil, err
	}
	return c.ExactPlaceByLocation(ctx, *at)
}

// FindBusinessAddresses runs FindBusiness and attaches addresses found
// through each result's details label.
func (c *Client) FindBusinessAddresses(ctx context.Context, q BusinessQuery) (*Response[Place], error) {
	resp, err := c.FindBusiness(ctx, q)
	if err != nil {
		return nil, err
	}
	enriched, err := c.AttachAddressesByLabel(ctx, resp.Results)
	if err != nil {
		return nil, eris.Wrap(err, "google: business addresses")
	}
	resp.Results = enriched
	return resp, nil
}

// SearchNearbyAddresses runs SearchNearby and attaches every address
// geocoded from each result's place id.
func (c *Client) SearchNearbyAddresses(ctx context.Context, q NearbyQuery) (*Response[Place], error) {
	resp, err := c.SearchNearby(ctx, q)
	if err != nil {
		return nil, err
	}
	enriched, err := c.AttachAddresses(ctx, resp.Results)
	if err != nil {
		return nil, eris.Wrap(err, "google: nearby addresses")
	}
	resp.Results = enriched
	return resp, nil
}

// SearchNearbyAddress is SearchNearbyAddresses keeping only the first
// address of each place.
func (c *Client) SearchNearbyAddress(ctx context.Context, q NearbyQuery) (*Response[Place], error) {
	resp, err := c.SearchNearbyAddresses(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range resp.Results {
		if len(resp.Results[i].Addresses) > 1 {
			resp.Results[i].Addresses = resp.Results[i].Addresses[:1]
		}
	}
	return resp, nil
}
