package binfile

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestEntryStoreAppendOrdering(t *testing.T) {
	s := NewEntryStore()
	assert.Equal(t, 0, s.Len())

	h1 := &LocalHeader{}
	h2 := &LocalHeader{}
	s.Append(h1, 0, 100)
	s.Append(h2, 130, 50)

	assert.Equal(t, 2, s.Len())
	assert.Same(t, h1, s.At(0).Header)
	assert.Equal(t, uint64(0), s.At(0).Offset)
	assert.Equal(t, uint64(100), s.At(0).CompressedSize)
	assert.Same(t, h2, s.At(1).Header)
	assert.Equal(t, uint64(130), s.At(1).Offset)

	all := s.All()
	assert.Len(t, all, 2)
	assert.Equal(t, s.At(0), all[0])
	assert.Equal(t, s.At(1), all[1])
}

func TestEntryStoreEmpty(t *testing.T) {
	s := NewEntryStore()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
}
