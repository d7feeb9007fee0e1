package binfile

import "math"

// EarthRadiusMeters is the radius this engine's spherical Mercator uses.
// It is deliberately not the WGS84 ellipsoid value (6_378_137); matching
// the engine's existing archives requires the same, slightly-off constant.
const EarthRadiusMeters = 6_371_000.0

// Project converts a WGS84 bottom-left/top-right corner pair, in decimal
// degrees, to a Mercator Rect using EarthRadiusMeters. Each axis is rounded
// independently to the nearest integer.
func Project(lonBL, latBL, lonTR, latTR float64) Rect {
	return Rect{
		Low:  Point{X: round32(mercatorX(lonBL)), Y: round32(mercatorY(latBL))},
		High: Point{X: round32(mercatorX(lonTR)), Y: round32(mercatorY(latTR))},
	}
}

func mercatorX(lon float64) float64 {
	return lon * EarthRadiusMeters * math.Pi / 180
}

func mercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)) * EarthRadiusMeters
}

func round32(v float64) int32 {
	return int32(math.Round(v))
}
