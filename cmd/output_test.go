package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/places-cli/pkg/geodesy"
	"github.com/sells-group/places-cli/pkg/google"
)

func samplePlaces() *google.Response[google.Place] {
	return &google.Response[google.Place]{
		Status: google.StatusOK,
		Results: []google.Place{{
			PlaceID:  "p1",
			Name:     "Cafe",
			Geometry: google.Geometry{Location: geodesy.Coordinate{Lat: -27.47, Lng: 153.0}},
			Types:    google.NewTagSet[google.PlaceType]([]string{"cafe", "coworking_space"}),
		}},
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatJSON, samplePlaces()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "OK", got["status"])
	place := got["results"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"cafe", "coworking_space"}, place["types"])
}

func TestWriteOutput_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatYAML, samplePlaces()))

	var got struct {
		Status  string `yaml:"status"`
		Results []struct {
			PlaceID string   `yaml:"place_id"`
			Types   []string `yaml:"types"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "OK", got.Status)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "p1", got.Results[0].PlaceID)
	assert.Equal(t, []string{"cafe", "coworking_space"}, got.Results[0].Types)
}

func TestWriteOutput_GeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, formatGeoJSON, samplePlaces()))

	var got struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "FeatureCollection", got.Type)
	require.Len(t, got.Features, 1)
	f := got.Features[0]
	assert.Equal(t, "p1", f.ID)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{153.0, -27.47}, f.Geometry.Coordinates)
	assert.Equal(t, "Cafe", f.Properties["name"])
}

func TestWriteOutput_GeoJSONDistance(t *testing.T) {
	var buf bytes.Buffer
	res := measure(geodesy.Coordinate{}, geodesy.Coordinate{Lng: 90}, geodesy.Kilometers)
	require.NoError(t, writeOutput(&buf, formatGeoJSON, res))

	var got struct {
		Features []struct {
			ID string `json:"id"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Features, 3)
	assert.Equal(t, "midpoint", got.Features[2].ID)
}

func TestWriteOutput_GeoJSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := writeOutput(&buf, formatGeoJSON, google.Locality{City: "Brisbane"})
	assert.Error(t, err)
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeOutput(&buf, "xml", samplePlaces()))
}
