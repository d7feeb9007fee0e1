package binfile

// TileLen returns the number of leading bytes of name that belong to the
// tile-path alphabet {a,b,c,d}. It stops at the first byte outside that
// alphabet, so control files such as "index" or the empty name report 0.
func TileLen(name string) int {
	n := 0
	for n < len(name) && name[n] >= 'a' && name[n] <= 'd' {
		n++
	}
	return n
}

// TileBbox maps a tile path over {a,b,c,d} to its Mercator rectangle via
// recursive quadrant subdivision of WorldBound. Each character narrows the
// box to one quadrant by moving its two mid-facing edges to the midpoint;
// the edges a quadrant shares with the box it came from are never touched,
// so they carry through from whatever ancestor last set them (or from
// WorldBound, for the quadrant's very first character). Only the path's
// final character is a leaf: there, overlapPercent pushes its mid-facing
// edges past the midpoint by that fraction of the current box's width and
// height, so neighbouring tiles get a small amount of coverage overlap.
// Bytes past the first non-alphabet character (see TileLen) are ignored.
func TileBbox(path string, overlapPercent int32) Rect {
	r := WorldBound
	n := TileLen(path)
	for i := 0; i < n; i++ {
		mx := (r.Low.X + r.High.X) / 2
		my := (r.Low.Y + r.High.Y) / 2
		var xo, yo int32
		if i == n-1 {
			xo = (r.High.X - r.Low.X) * overlapPercent / 100
			yo = (r.High.Y - r.Low.Y) * overlapPercent / 100
		}
		switch path[i] {
		case 'a':
			r.High.X, r.High.Y = mx+xo, my+yo
		case 'b':
			r.Low.X, r.High.Y = mx-xo, my+yo
		case 'c':
			r.High.X, r.Low.Y = mx+xo, my-yo
		case 'd':
			r.Low.X, r.Low.Y = mx-xo, my-yo
		}
	}
	return r
}

// ShouldKeep implements the filter decision: non-tile control files
// (tile_len == 0) are always kept; everything else is kept iff its 1%
// overlap bbox intersects query.
func ShouldKeep(name string, query Rect) bool {
	if TileLen(name) == 0 {
		return true
	}
	return Intersects(query, TileBbox(name, 1))
}

// PathID packs a tile path into a depth-disambiguated integer, quadkey
// style: a leading 1 bit marks the start of the path so that e.g. "a" and
// "aa" never collide. Used only for coverage reporting (RunStats), never
// for the keep/blank decision itself.
func PathID(path string) uint64 {
	n := TileLen(path)
	id := uint64(1)
	for i := 0; i < n; i++ {
		var v uint64
		switch path[i] {
		case 'a':
			v = 0
		case 'b':
			v = 1
		case 'c':
			v = 2
		case 'd':
			v = 3
		}
		id = id<<2 | v
	}
	return id
}
