package binfile

import (
	"fmt"
	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"io"
	"sort"
)

// RunStats accumulates a post-run coverage summary: which tile paths were
// kept or blanked, bucketed by depth, plus aggregate byte counts. It is
// purely observational; nothing here feeds back into the filter decision.
type RunStats struct {
	kept    map[int]*roaring64.Bitmap
	blanked map[int]*roaring64.Bitmap

	controlFiles int
	bytesCopied  uint64
	bytesBlanked uint64

	seenContent map[uint64]int
}

// NewRunStats returns an empty stats accumulator.
func NewRunStats() *RunStats {
	return &RunStats{
		kept:        make(map[int]*roaring64.Bitmap),
		blanked:     make(map[int]*roaring64.Bitmap),
		seenContent: make(map[uint64]int),
	}
}

func (s *RunStats) bitmapFor(m map[int]*roaring64.Bitmap, depth int) *roaring64.Bitmap {
	b, ok := m[depth]
	if !ok {
		b = roaring64.New()
		m[depth] = b
	}
	return b
}

// RecordEntry registers the keep/blank decision for one tile entry. depth
// is TileLen(name); id is PathID(name). Control files (depth 0) are not
// bucketed by depth; RecordEntry hands them on to RecordControlFile.
func (s *RunStats) RecordEntry(depth int, id uint64, kept bool, bytes uint64) {
	if depth == 0 {
		s.RecordControlFile(bytes)
		return
	}
	if kept {
		s.bitmapFor(s.kept, depth).Add(id)
		s.bytesCopied += bytes
	} else {
		s.bitmapFor(s.blanked, depth).Add(id)
		s.bytesBlanked += bytes
	}
}

// RecordControlFile tallies a non-tile entry (tile_len == 0), which is
// always kept and never bucketed by depth.
func (s *RunStats) RecordControlFile(bytes uint64) {
	s.controlFiles++
	s.bytesCopied += bytes
}

// NewContentHasher returns a fresh incremental hasher the rewriter feeds
// each copied chunk of a kept entry's payload through, so a whole-payload
// fingerprint can be had without ever buffering the payload itself.
func NewContentHasher() *xxhash.Digest { return xxhash.New() }

// RecordContent tallies whether a kept entry's payload fingerprint has
// been seen before in this run, a cheap duplicate-tile signal: tiles
// covering open water or a uniform background commonly compress to the
// identical byte stream.
func (s *RunStats) RecordContent(sum uint64) {
	s.seenContent[sum]++
}

// DuplicateContentEntries returns the number of kept entries whose payload
// fingerprint matches some other kept entry's.
func (s *RunStats) DuplicateContentEntries() int {
	dup := 0
	for _, n := range s.seenContent {
		if n > 1 {
			dup += n - 1
		}
	}
	return dup
}

// KeptCount returns the total number of kept tile entries across all
// depths (control files excluded).
func (s *RunStats) KeptCount() uint64 {
	var n uint64
	for _, b := range s.kept {
		n += b.GetCardinality()
	}
	return n
}

// BlankedCount returns the total number of blanked tile entries across all
// depths.
func (s *RunStats) BlankedCount() uint64 {
	var n uint64
	for _, b := range s.blanked {
		n += b.GetCardinality()
	}
	return n
}

// ControlFileCount returns the number of non-tile entries seen.
func (s *RunStats) ControlFileCount() int { return s.controlFiles }

// Summary writes a human-readable per-depth coverage report to w.
func (s *RunStats) Summary(w io.Writer) {
	depths := make(map[int]bool)
	for d := range s.kept {
		depths[d] = true
	}
	for d := range s.blanked {
		depths[d] = true
	}
	sorted := make([]int, 0, len(depths))
	for d := range depths {
		sorted = append(sorted, d)
	}
	sort.Ints(sorted)

	fmt.Fprintf(w, "control files kept: %d\n", s.controlFiles)
	for _, d := range sorted {
		kept := s.bitmapFor(s.kept, d).GetCardinality()
		blanked := s.bitmapFor(s.blanked, d).GetCardinality()
		fmt.Fprintf(w, "depth %d: kept=%d blanked=%d\n", d, kept, blanked)
	}
	fmt.Fprintf(w, "bytes copied: %s\n", humanize.Bytes(s.bytesCopied))
	fmt.Fprintf(w, "bytes blanked: %s\n", humanize.Bytes(s.bytesBlanked))
	if dup := s.DuplicateContentEntries(); dup > 0 {
		fmt.Fprintf(w, "duplicate tile payloads: %d\n", dup)
	}
}
