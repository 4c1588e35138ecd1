package google

import (
	"encoding/json"
	"slices"

	"github.com/rotisserie/eris"
)

// PlaceType is a place category such as "restaurant" or "locality".
type PlaceType string

// Recognized place types. The service adds categories over time, so a
// PlaceType outside this table is valid data, just not recognized.
const (
	PlaceTypeAccounting             PlaceType = "accounting"
	PlaceTypeAirport                PlaceType = "airport"
	PlaceTypeAmusementPark          PlaceType = "amusement_park"
	PlaceTypeAquarium               PlaceType = "aquarium"
	PlaceTypeArtGallery             PlaceType = "art_gallery"
	PlaceTypeATM                    PlaceType = "atm"
	PlaceTypeBakery                 PlaceType = "bakery"
	PlaceTypeBank                   PlaceType = "bank"
	PlaceTypeBar                    PlaceType = "bar"
	PlaceTypeBeautySalon            PlaceType = "beauty_salon"
	PlaceTypeBookStore              PlaceType = "book_store"
	PlaceTypeBusStation             PlaceType = "bus_station"
	PlaceTypeCafe                   PlaceType = "cafe"
	PlaceTypeCampground             PlaceType = "campground"
	PlaceTypeCarRental              PlaceType = "car_rental"
	PlaceTypeChurch                 PlaceType = "church"
	PlaceTypeCityHall               PlaceType = "city_hall"
	PlaceTypeClothingStore          PlaceType = "clothing_store"
	PlaceTypeConvenienceStore       PlaceType = "convenience_store"
	PlaceTypeDentist                PlaceType = "dentist"
	PlaceTypeDoctor                 PlaceType = "doctor"
	PlaceTypeEstablishment          PlaceType = "establishment"
	PlaceTypeFinance                PlaceType = "finance"
	PlaceTypeFood                   PlaceType = "food"
	PlaceTypeGasStation             PlaceType = "gas_station"
	PlaceTypeGym                    PlaceType = "gym"
	PlaceTypeHealth                 PlaceType = "health"
	PlaceTypeHospital               PlaceType = "hospital"
	PlaceTypeLibrary                PlaceType = "library"
	PlaceTypeLocality               PlaceType = "locality"
	PlaceTypeLodging                PlaceType = "lodging"
	PlaceTypeMuseum                 PlaceType = "museum"
	PlaceTypeNaturalFeature         PlaceType = "natural_feature"
	PlaceTypeNeighborhood           PlaceType = "neighborhood"
	PlaceTypePark                   PlaceType = "park"
	PlaceTypeParking                PlaceType = "parking"
	PlaceTypePharmacy               PlaceType = "pharmacy"
	PlaceTypePointOfInterest        PlaceType = "point_of_interest"
	PlaceTypePolitical              PlaceType = "political"
	PlaceTypePostOffice             PlaceType = "post_office"
	PlaceTypePremise                PlaceType = "premise"
	PlaceTypeRestaurant             PlaceType = "restaurant"
	PlaceTypeRoute                  PlaceType = "route"
	PlaceTypeSchool                 PlaceType = "school"
	PlaceTypeShoppingMall           PlaceType = "shopping_mall"
	PlaceTypeStore                  PlaceType = "store"
	PlaceTypeStreetAddress          PlaceType = "street_address"
	PlaceTypeSublocality            PlaceType = "sublocality"
	PlaceTypeSupermarket            PlaceType = "supermarket"
	PlaceTypeTouristAttraction      PlaceType = "tourist_attraction"
	PlaceTypeTrainStation           PlaceType = "train_station"
	PlaceTypeTransitStation         PlaceType = "transit_station"
	PlaceTypeUniversity             PlaceType = "university"
	PlaceTypeAdministrativeAreaLvl1 PlaceType = "administrative_area_level_1"
	PlaceTypeAdministrativeAreaLvl2 PlaceType = "administrative_area_level_2"
	PlaceTypeCountry                PlaceType = "country"
	PlaceTypePostalCode             PlaceType = "postal_code"
)

var knownPlaceTypes = map[PlaceType]struct{}{}

func init() {
	for _, t := range []PlaceType{
		PlaceTypeAccounting, PlaceTypeAirport, PlaceTypeAmusementPark, PlaceTypeAquarium,
		PlaceTypeArtGallery, PlaceTypeATM, PlaceTypeBakery, PlaceTypeBank, PlaceTypeBar,
		PlaceTypeBeautySalon, PlaceTypeBookStore, PlaceTypeBusStation, PlaceTypeCafe,
		PlaceTypeCampground, PlaceTypeCarRental, PlaceTypeChurch, PlaceTypeCityHall,
		PlaceTypeClothingStore, PlaceTypeConvenienceStore, PlaceTypeDentist, PlaceTypeDoctor,
		PlaceTypeEstablishment, PlaceTypeFinance, PlaceTypeFood, PlaceTypeGasStation,
		PlaceTypeGym, PlaceTypeHealth, PlaceTypeHospital, PlaceTypeLibrary, PlaceTypeLocality,
		PlaceTypeLodging, PlaceTypeMuseum, PlaceTypeNaturalFeature, PlaceTypeNeighborhood,
		PlaceTypePark, PlaceTypeParking, PlaceTypePharmacy, PlaceTypePointOfInterest,
		PlaceTypePolitical, PlaceTypePostOffice, PlaceTypePremise, PlaceTypeRestaurant,
		PlaceTypeRoute, PlaceTypeSchool, PlaceTypeShoppingMall, PlaceTypeStore,
		PlaceTypeStreetAddress, PlaceTypeSublocality, PlaceTypeSupermarket,
		PlaceTypeTouristAttraction, PlaceTypeTrainStation, PlaceTypeTransitStation,
		PlaceTypeUniversity, PlaceTypeAdministrativeAreaLvl1, PlaceTypeAdministrativeAreaLvl2,
		PlaceTypeCountry, PlaceTypePostalCode,
	} {
		knownPlaceTypes[t] = struct{}{}
	}
	for _, t := range []AddressType{
		AddressTypeStreetAddress, AddressTypeStreetNumber, AddressTypeRoute,
		AddressTypeIntersection, AddressTypePolitical, AddressTypeCountry,
		AddressTypeAdminLevel1, AddressTypeAdminLevel2, AddressTypeAdminLevel3,
		AddressTypeAdminLevel4, AddressTypeAdminLevel5, AddressTypeColloquialArea,
		AddressTypeLocality, AddressTypeSublocality, AddressTypeSublocalityLevel1,
		AddressTypeSublocalityLevel2, AddressTypeNeighborhood, AddressTypePremise,
		AddressTypeSubpremise, AddressTypePlusCode, AddressTypePostalCode,
		AddressTypePostalCodeSuffix, AddressTypePostalTown, AddressTypeNaturalFeature,
		AddressTypeAirport, AddressTypePark, AddressTypePointOfInterest,
		AddressTypeEstablishment, AddressTypeFloor, AddressTypeRoom,
	} {
		knownAddressTypes[t] = struct{}{}
	}
}

// Known reports whether t is in the recognized table.
func (t PlaceType) Known() bool {
	_, ok := knownPlaceTypes[t]
	return ok
}

// UnmarshalJSON rejects unrecognized values so the strict wire schema fails
// closed and the decoder falls back to plain strings.
func (t *PlaceType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !PlaceType(s).Known() {
		return eris.Errorf("google: unrecognized place type %q", s)
	}
	*t = PlaceType(s)
	return nil
}

// AddressType is the kind of an address or address component.
type AddressType string

// Recognized address types.
const (
	AddressTypeStreetAddress     AddressType = "street_address"
	AddressTypeStreetNumber      AddressType = "street_number"
	AddressTypeRoute             AddressType = "route"
	AddressTypeIntersection      AddressType = "intersection"
	AddressTypePolitical         AddressType = "political"
	AddressTypeCountry           AddressType = "country"
	AddressTypeAdminLevel1       AddressType = "administrative_area_level_1"
	AddressTypeAdminLevel2       AddressType = "administrative_area_level_2"
	AddressTypeAdminLevel3       AddressType = "administrative_area_level_3"
	AddressTypeAdminLevel4       AddressType = "administrative_area_level_4"
	AddressTypeAdminLevel5       AddressType = "administrative_area_level_5"
	AddressTypeColloquialArea    AddressType = "colloquial_area"
	AddressTypeLocality          AddressType = "locality"
	AddressTypeSublocality       AddressType = "sublocality"
	AddressTypeSublocalityLevel1 AddressType = "sublocality_level_1"
	AddressTypeSublocalityLevel2 AddressType = "sublocality_level_2"
	AddressTypeNeighborhood      AddressType = "neighborhood"
	AddressTypePremise           AddressType = "premise"
	AddressTypeSubpremise        AddressType = "subpremise"
	AddressTypePlusCode          AddressType = "plus_code"
	AddressTypePostalCode        AddressType = "postal_code"
	AddressTypePostalCodeSuffix  AddressType = "postal_code_suffix"
	AddressTypePostalTown        AddressType = "postal_town"
	AddressTypeNaturalFeature    AddressType = "natural_feature"
	AddressTypeAirport           AddressType = "airport"
	AddressTypePark              AddressType = "park"
	AddressTypePointOfInterest   AddressType = "point_of_interest"
	AddressTypeEstablishment     AddressType = "establishment"
	AddressTypeFloor             AddressType = "floor"
	AddressTypeRoom              AddressType = "room"
)

var knownAddressTypes = map[AddressType]struct{}{}

// Known reports whether t is in the recognized table.
func (t AddressType) Known() bool {
	_, ok := knownAddressTypes[t]
	return ok
}

// UnmarshalJSON rejects unrecognized values, see PlaceType.UnmarshalJSON.
func (t *AddressType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !AddressType(s).Known() {
		return eris.Errorf("google: unrecognized address type %q", s)
	}
	*t = AddressType(s)
	return nil
}

// Tag is a string enum with a recognized-value table.
type Tag interface {
	~string
	Known() bool
}

// TagSet holds category tags as the service sent them, in wire order, plus
// the subset it recognizes. Every recognized tag has its raw string, and raw
// strings outside the table are kept.
type TagSet[T Tag] struct {
	raw   []string
	known []T
}

// NewTagSet builds a set from raw strings and derives the recognized overlay.
func NewTagSet[T Tag](raw []string) TagSet[T] {
	if len(raw) == 0 {
		return TagSet[T]{}
	}
	s := TagSet[T]{raw: slices.Clone(raw)}
	for _, r := range raw {
		if t := T(r); t.Known() {
			s.known = append(s.known, t)
		}
	}
	return s
}

// TagSetOf builds a set from typed tags. Each tag contributes its string form.
func TagSetOf[T Tag](tags ...T) TagSet[T] {
	raw := make([]string, len(tags))
	for i, t := range tags {
		raw[i] = string(t)
	}
	return NewTagSet[T](raw)
}

// Raw returns a copy of the tags as sent.
func (s TagSet[T]) Raw() []string { return slices.Clone(s.raw) }

// Known returns a copy of the recognized tags.
func (s TagSet[T]) Known() []T { return slices.Clone(s.known) }

// Len is the number of raw tags.
func (s TagSet[T]) Len() int { return len(s.raw) }

// Has reports whether the raw tag is present, recognized or not.
func (s TagSet[T]) Has(tag string) bool { return slices.Contains(s.raw, tag) }

// Contains reports whether the recognized tag is present.
func (s TagSet[T]) Contains(tag T) bool { return slices.Contains(s.known, tag) }

// Unknown returns the raw tags outside the recognized table.
func (s TagSet[T]) Unknown() []string {
	var out []string
	for _, r := range s.raw {
		if !T(r).Known() {
			out = append(out, r)
		}
	}
	return out
}

// MarshalJSON encodes the raw tags as a string array.
func (s TagSet[T]) MarshalJSON() ([]byte, error) {
	if s.raw == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.raw)
}

// UnmarshalJSON accepts a string array.
func (s *TagSet[T]) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NewTagSet[T](raw)
	return nil
}

// MarshalYAML encodes the raw tags as a sequence.
func (s TagSet[T]) MarshalYAML() (any, error) {
	if s.raw == nil {
		return []string{}, nil
	}
	return s.raw, nil
}
