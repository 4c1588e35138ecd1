package google

// AddressComponents is the structured breakdown of one or more addresses.
type AddressComponents []AddressComponent

// First returns the first component tagged with any of the types, tried in
// order.
func (cs AddressComponents) First(types ...AddressType) (AddressComponent, bool) {
	for _, t := range types {
		for _, c := range cs {
			if c.Types.Has(string(t)) {
				return c, true
			}
		}
	}
	return AddressComponent{}, false
}

// name returns pick of the first component of each type in turn, moving to
// the next type when that component has no name.
func (cs AddressComponents) name(pick func(AddressComponent) string, types ...AddressType) string {
	for _, t := range types {
		if c, ok := cs.First(t); ok {
			if n := pick(c); n != "" {
				return n
			}
		}
	}
	return ""
}

func (cs AddressComponents) shortName(types ...AddressType) string {
	return cs.name(func(c AddressComponent) string { return c.ShortName }, types...)
}

func (cs AddressComponents) longName(types ...AddressType) string {
	return cs.name(func(c AddressComponent) string { return c.LongName }, types...)
}

// Country is the long country name.
func (cs AddressComponents) Country() string { return cs.longName(AddressTypeCountry) }

// State is the short first-level administrative area.
func (cs AddressComponents) State() string { return cs.shortName(AddressTypeAdminLevel1) }

// City is the short second-level administrative area.
func (cs AddressComponents) City() string { return cs.shortName(AddressTypeAdminLevel2) }

// Suburb is the short third-level administrative area, or the locality.
func (cs AddressComponents) Suburb() string {
	return cs.shortName(AddressTypeAdminLevel3, AddressTypeLocality)
}

var suburbTypes = []AddressType{
	AddressTypeAdminLevel3,
	AddressTypeLocality,
	AddressTypeSublocality,
	AddressTypeSublocalityLevel1,
}

// Name accessors over the address's own components. Suburb falls back from
// the third-level area to locality, sublocality and sublocality_level_1.

// CountryShortName is the short country name, e.g. "AU".
func (a Address) CountryShortName() string { return a.Components.shortName(AddressTypeCountry) }
func (a Address) CountryLongName() string  { return a.Components.longName(AddressTypeCountry) }
func (a Address) StateShortName() string   { return a.Components.shortName(AddressTypeAdminLevel1) }
func (a Address) StateLongName() string    { return a.Components.longName(AddressTypeAdminLevel1) }
func (a Address) CityShortName() string    { return a.Components.shortName(AddressTypeAdminLevel2) }
func (a Address) CityLongName() string     { return a.Components.longName(AddressTypeAdminLevel2) }
func (a Address) SuburbShortName() string  { return a.Components.shortName(suburbTypes...) }
func (a Address) SuburbLongName() string   { return a.Components.longName(suburbTypes...) }

// Addresses is a list of geocoding results.
type Addresses []Address

// Components flattens the components of every address, in order.
func (as Addresses) Components() AddressComponents {
	var out AddressComponents
	for _, a := range as {
		out = append(out, a.Components...)
	}
	return out
}

func (as Addresses) firstOfType(types ...AddressType) *Address {
	if len(as) == 1 {
		return &as[0]
	}
	for _, t := range types {
		for i := range as {
			if as[i].Types.Has(string(t)) {
				return &as[i]
			}
		}
	}
	return nil
}

// Country returns the country-level result. A single-element list always
// returns its only element.
func (as Addresses) Country() *Address { return as.firstOfType(AddressTypeCountry) }

// State returns the first-level administrative area result.
func (as Addresses) State() *Address { return as.firstOfType(AddressTypeAdminLevel1) }

// City returns the second-level administrative area result.
func (as Addresses) City() *Address { return as.firstOfType(AddressTypeAdminLevel2) }

// Suburb returns the third-level administrative area or locality result.
func (as Addresses) Suburb() *Address {
	return as.firstOfType(AddressTypeAdminLevel3, AddressTypeLocality)
}

// cityOf picks the city name the way CityFromCoordinates reports it.
func cityOf(cs AddressComponents) string {
	return cs.shortName(AddressTypeAdminLevel2, AddressTypeAdminLevel3, AddressTypeLocality)
}
