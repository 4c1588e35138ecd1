package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/places-cli/pkg/geodesy"
	"github.com/sells-group/places-cli/pkg/google"
)

// Output formats accepted by --output.
const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatGeoJSON = "geojson"
)

// writeOutput renders v to w in the requested format.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "output: json")
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "output: yaml")
		}
		return eris.Wrap(enc.Close(), "output: yaml")
	case formatGeoJSON:
		fc, err := toFeatureCollection(v)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(fc), "output: geojson")
	default:
		return eris.Errorf("output: unknown format %q", format)
	}
}

// toFeatureCollection maps the located values this CLI prints onto GeoJSON
// point features.
func toFeatureCollection(v any) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}

	switch x := v.(type) {
	case *google.Response[google.Place]:
		for _, p := range x.Results {
			fc.Features = append(fc.Features, placeFeature(p))
		}
		if x.Result != nil {
			fc.Features = append(fc.Features, placeFeature(*x.Result))
		}
		for _, p := range x.Candidates {
			fc.Features = append(fc.Features, placeFeature(p))
		}
	case []google.Place:
		for _, p := range x {
			fc.Features = append(fc.Features, placeFeature(p))
		}
	case *google.Place:
		if x != nil {
			fc.Features = append(fc.Features, placeFeature(*x))
		}
	case *google.Response[google.Address]:
		for _, a := range x.Results {
			fc.Features = append(fc.Features, addressFeature(a))
		}
	case *geodesy.Coordinate:
		if x != nil {
			fc.Features = append(fc.Features, &geojson.Feature{Geometry: x.Point()})
		}
	case distanceResult:
		fc.Features = append(fc.Features,
			&geojson.Feature{ID: "from", Geometry: x.From.Point()},
			&geojson.Feature{ID: "to", Geometry: x.To.Point()},
			&geojson.Feature{
				ID:       "midpoint",
				Geometry: x.Midpoint.Point(),
				Properties: map[string]any{
					"distance": x.Distance,
					"unit":     x.Unit,
				},
			},
		)
	default:
		return nil, eris.Errorf("output: geojson is not available for %T", v)
	}
	return fc, nil
}

func placeFeature(p google.Place) *geojson.Feature {
	props := map[string]any{
		"name":  p.Name,
		"types": p.Types.Raw(),
	}
	if p.FormattedAddress != "" {
		props["formatted_address"] = p.FormattedAddress
	}
	if p.Vicinity != "" {
		props["vicinity"] = p.Vicinity
	}
	if p.Rating > 0 {
		props["rating"] = p.Rating
	}
	return &geojson.Feature{
		ID:         p.PlaceID,
		Geometry:   p.Geometry.Location.Point(),
		Properties: props,
	}
}

func addressFeature(a google.Address) *geojson.Feature {
	return &geojson.Feature{
		ID:       a.PlaceID,
		Geometry: a.Geometry.Location.Point(),
		Properties: map[string]any{
			"formatted_address": a.FormattedAddress,
			"types":             a.Types.Raw(),
		},
	}
}
