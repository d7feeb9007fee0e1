package binfile

// LocalEntry records one local file header emitted to the output stream:
// its final (already patched) header bytes, the offset its header began
// at, and the compressed size written for it.
type LocalEntry struct {
	Header         *LocalHeader
	Offset         uint64
	CompressedSize uint64
}

// EntryStore is the append-only, ordered record of every entry written to
// the output, in emission order. It is built up during the streaming pass
// and consumed exactly once, by the central-directory writer.
type EntryStore struct {
	entries []LocalEntry
}

// NewEntryStore returns an empty store.
func NewEntryStore() *EntryStore {
	return &EntryStore{}
}

// Append records a newly emitted entry. Callers must supply offsets in
// strictly increasing order; the store itself does not re-derive them.
func (s *EntryStore) Append(h *LocalHeader, offset, compressedSize uint64) {
	s.entries = append(s.entries, LocalEntry{Header: h, Offset: offset, CompressedSize: compressedSize})
}

// Len returns the number of stored entries.
func (s *EntryStore) Len() int { return len(s.entries) }

// At returns the i'th stored entry in emission order.
func (s *EntryStore) At(i int) LocalEntry { return s.entries[i] }

// All returns every stored entry in emission order. The slice shares the
// store's backing array and must not be mutated by callers.
func (s *EntryStore) All() []LocalEntry { return s.entries }
