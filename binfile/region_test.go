package binfile

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestBboxRegion(t *testing.T) {
	r, err := BboxRegion("11.3,47.9,11.7,48.2")
	require.NoError(t, err)
	want := Project(11.3, 47.9, 11.7, 48.2)
	assert.Equal(t, want, r)
}

func TestBboxRegionWrongArity(t *testing.T) {
	_, err := BboxRegion("1,2,3")
	assert.Error(t, err)
}

func TestBboxRegionBadNumber(t *testing.T) {
	_, err := BboxRegion("a,2,3,4")
	assert.Error(t, err)
}

// TestPolygonRegionMatchesBbox is P8: a rectangular GeoJSON polygon whose
// corners equal the bbox region's corners must project to the same Rect.
func TestPolygonRegionMatchesBbox(t *testing.T) {
	geojsonDoc := []byte(`{
		"type": "Feature",
		"properties": {},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[
				[11.3, 47.9], [11.7, 47.9], [11.7, 48.2], [11.3, 48.2], [11.3, 47.9]
			]]
		}
	}`)

	bbox, err := BboxRegion("11.3,47.9,11.7,48.2")
	require.NoError(t, err)

	poly, err := PolygonRegion(geojsonDoc)
	require.NoError(t, err)

	assert.Equal(t, bbox, poly)
}

func TestPolygonRegionFeatureCollection(t *testing.T) {
	geojsonDoc := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry":
				{"type": "Point", "coordinates": [11.3, 47.9]}},
			{"type": "Feature", "properties": {}, "geometry":
				{"type": "Point", "coordinates": [11.7, 48.2]}}
		]
	}`)

	want := Project(11.3, 47.9, 11.7, 48.2)
	got, err := PolygonRegion(geojsonDoc)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPolygonRegionInvalidDocument(t *testing.T) {
	_, err := PolygonRegion([]byte("not json"))
	assert.Error(t, err)
}
