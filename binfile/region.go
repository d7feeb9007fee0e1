package binfile

import (
	"fmt"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"strconv"
	"strings"
)

// BboxRegion parses "lon_bl,lat_bl,lon_tr,lat_tr" and projects it into a
// Rect, the same four numbers the CLI's positional arguments already
// require.
func BboxRegion(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("bbox region: want 4 comma-separated coordinates, got %d", len(parts))
	}
	var coords [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("bbox region: coordinate %d: %w", i, err)
		}
		coords[i] = v
	}
	return Project(coords[0], coords[1], coords[2], coords[3]), nil
}

// PolygonRegion parses a GeoJSON document (a Feature, FeatureCollection or
// bare Geometry) and projects the WGS84 bound of its geometry into a
// Rect. Polygon-accurate clipping is out of scope for the filter; this
// only produces the bounding rectangle the filter then uses.
func PolygonRegion(data []byte) (Rect, error) {
	g, err := geojsonGeometry(data)
	if err != nil {
		return Rect{}, fmt.Errorf("polygon region: %w", err)
	}
	b := g.Bound()
	return Project(b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()), nil
}

func geojsonGeometry(data []byte) (orb.Geometry, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		var collection orb.Collection
		for _, f := range fc.Features {
			collection = append(collection, f.Geometry)
		}
		if len(collection) > 0 {
			return collection, nil
		}
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil {
		return f.Geometry, nil
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	return g.Geometry(), nil
}
