package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func component(long, short string, types ...string) AddressComponent {
	return AddressComponent{LongName: long, ShortName: short, Types: NewTagSet[AddressType](types)}
}

func TestAddress_NameAccessors(t *testing.T) {
	resp, err := DecodeAddresses(okBody(geocodeBody))
	require.NoError(t, err)
	a := resp.Results[0]

	assert.Equal(t, "AU", a.CountryShortName())
	assert.Equal(t, "Australia", a.CountryLongName())
	assert.Equal(t, "QLD", a.StateShortName())
	assert.Equal(t, "Queensland", a.StateLongName())
	assert.Equal(t, "Brisbane", a.CityShortName())
	assert.Equal(t, "Brisbane City", a.CityLongName())
	assert.Equal(t, "Milton", a.SuburbShortName())
	assert.Equal(t, "Milton", a.SuburbLongName())
}

func TestAddress_SuburbFallbackOrder(t *testing.T) {
	a := Address{Components: AddressComponents{
		component("Sub One", "S1", "sublocality_level_1"),
		component("Sub", "S", "sublocality"),
	}}
	assert.Equal(t, "S", a.SuburbShortName())

	a.Components = append(a.Components, component("Ward 3", "W3", "administrative_area_level_3"))
	assert.Equal(t, "W3", a.SuburbShortName())
	assert.Equal(t, "Ward 3", a.SuburbLongName())

	assert.Empty(t, Address{}.SuburbShortName())
}

func TestAddressComponents_SkipsEmptyNames(t *testing.T) {
	cs := AddressComponents{
		component("", "", "administrative_area_level_3"),
		component("Milton", "", "locality"),
		component("", "AU", "country"),
	}
	assert.Equal(t, "Milton", cs.longName(AddressTypeAdminLevel3, AddressTypeLocality))
	assert.Empty(t, cs.shortName(AddressTypeAdminLevel3, AddressTypeLocality))
	assert.Equal(t, "AU", cs.shortName(AddressTypeCountry))
	assert.Empty(t, cs.Country())

	a := Address{Components: AddressComponents{
		component("", "", "administrative_area_level_3"),
		component("Sub", "S", "sublocality"),
	}}
	assert.Equal(t, "S", a.SuburbShortName())
	assert.Equal(t, "Sub", a.SuburbLongName())

	assert.Equal(t, "Ward", cityOf(AddressComponents{
		component("", "", "administrative_area_level_2"),
		component("Ward", "Ward", "administrative_area_level_3"),
	}))
}

func TestAddresses_ListHelpers(t *testing.T) {
	country := Address{PlaceID: "c", Types: TagSetOf(AddressTypeCountry, AddressTypePolitical)}
	state := Address{PlaceID: "s", Types: TagSetOf(AddressTypeAdminLevel1, AddressTypePolitical)}
	city := Address{PlaceID: "m", Types: TagSetOf(AddressTypeAdminLevel2)}
	locality := Address{PlaceID: "l", Types: TagSetOf(AddressTypeLocality)}
	list := Addresses{locality, city, state, country}

	assert.Equal(t, "c", list.Country().PlaceID)
	assert.Equal(t, "s", list.State().PlaceID)
	assert.Equal(t, "m", list.City().PlaceID)
	assert.Equal(t, "l", list.Suburb().PlaceID)

	single := Addresses{locality}
	assert.Equal(t, "l", single.Country().PlaceID)

	assert.Nil(t, Addresses{locality, city}.Country())
	assert.Nil(t, Addresses(nil).State())
}

func TestAddressComponents_ResponseLevel(t *testing.T) {
	resp, err := DecodeAddresses(okBody(geocodeBody))
	require.NoError(t, err)
	cs := Addresses(resp.Results).Components()

	assert.Equal(t, "Australia", cs.Country())
	assert.Equal(t, "QLD", cs.State())
	assert.Equal(t, "Brisbane", cs.City())
	assert.Equal(t, "Milton", cs.Suburb())

	c, ok := cs.First(AddressTypePostalCode)
	require.True(t, ok)
	assert.Equal(t, "4064", c.LongName)
	_, ok = cs.First(AddressTypeFloor)
	assert.False(t, ok)
}
