// Package binfile implements the tile-geometry and streaming ZIP64 rewrite
// logic used to cut a smaller regional extract out of a navigation engine's
// map archive.
package binfile

// Point is an integer coordinate in the engine's spherical Mercator space.
type Point struct {
	X, Y int32
}

// Rect is an axis-aligned rectangle in Mercator space, Low inclusive,
// High inclusive.
type Rect struct {
	Low  Point
	High Point
}

// WorldBound is the root tile's rectangle: the engine's own convention for
// "the whole world", not the true Mercator range at R=6_371_000.
var WorldBound = Rect{
	Low:  Point{X: -20_000_000, Y: -20_000_000},
	High: Point{X: 20_000_000, Y: 20_000_000},
}

// Intersects reports whether a and b overlap, including rectangles that
// only touch along a shared edge.
func Intersects(a, b Rect) bool {
	if a.High.X < b.Low.X || b.High.X < a.Low.X {
		return false
	}
	if a.High.Y < b.Low.Y || b.High.Y < a.Low.Y {
		return false
	}
	return true
}
