package binfile

import (
	"encoding/binary"
	"github.com/stretchr/testify/assert"
	"testing"
)

func zip64ExtraBytes(z Zip64Extra) []byte {
	return z.EncodeFull()
}

func TestFindZip64ExtraPresent(t *testing.T) {
	z := Zip64Extra{UncompressedSize: 111, CompressedSize: 222, Offset: 333, DiskStart: 0}
	extra := zip64ExtraBytes(z)

	payload, ok := FindZip64Extra(extra)
	assert.True(t, ok)
	assert.Equal(t, z, DecodeZip64Extra(payload))
}

func TestFindZip64ExtraAmongOthers(t *testing.T) {
	other := make([]byte, 8)
	binary.LittleEndian.PutUint16(other[0:2], 0x5455) // unix timestamp extra, unrelated id
	binary.LittleEndian.PutUint16(other[2:4], 4)
	binary.LittleEndian.PutUint32(other[4:8], 1700000000)

	z := Zip64Extra{UncompressedSize: 1, CompressedSize: 2, Offset: 3}
	extra := append(append([]byte{}, other...), zip64ExtraBytes(z)...)

	payload, ok := FindZip64Extra(extra)
	assert.True(t, ok)
	assert.Equal(t, z, DecodeZip64Extra(payload))
}

func TestFindZip64ExtraAbsent(t *testing.T) {
	_, ok := FindZip64Extra(nil)
	assert.False(t, ok)

	other := make([]byte, 8)
	binary.LittleEndian.PutUint16(other[0:2], 0x5455)
	binary.LittleEndian.PutUint16(other[2:4], 4)
	_, ok = FindZip64Extra(other)
	assert.False(t, ok)
}

func TestFindZip64ExtraMalformed(t *testing.T) {
	// claims a 100-byte payload but only 4 bytes follow the record header
	bad := make([]byte, 8)
	binary.LittleEndian.PutUint16(bad[0:2], Zip64ExtraID)
	binary.LittleEndian.PutUint16(bad[2:4], 100)
	_, ok := FindZip64Extra(bad)
	assert.False(t, ok)
}

func newLocalHeaderWithZip64(compressedSize, uncompressedSize uint64) *LocalHeader {
	h := &LocalHeader{}
	binary.LittleEndian.PutUint32(h.Fixed[0:4], SigLocalFileHeader)
	h.SetCompressedSize(0xFFFFFFFF)
	h.SetUncompressedSize(0xFFFFFFFF)
	z := Zip64Extra{UncompressedSize: uncompressedSize, CompressedSize: compressedSize, Offset: 0}
	h.Extra = z.EncodeFull()
	binary.LittleEndian.PutUint16(h.Fixed[26:28], 0)
	binary.LittleEndian.PutUint16(h.Fixed[28:30], uint16(len(h.Extra)))
	return h
}

func newLocalHeaderNoZip64(compressedSize uint32) *LocalHeader {
	h := &LocalHeader{}
	binary.LittleEndian.PutUint32(h.Fixed[0:4], SigLocalFileHeader)
	h.SetCompressedSize(compressedSize)
	h.SetUncompressedSize(compressedSize)
	return h
}

func TestAuthoritativeSizeZip64(t *testing.T) {
	h := newLocalHeaderWithZip64(5_000_000_000, 5_000_000_000)
	assert.Equal(t, uint64(5_000_000_000), AuthoritativeSize(h))
}

func TestAuthoritativeSizeNoZip64(t *testing.T) {
	h := newLocalHeaderNoZip64(4096)
	assert.Equal(t, uint64(4096), AuthoritativeSize(h))
}

func TestPatchEntryZip64Kept(t *testing.T) {
	h := newLocalHeaderWithZip64(5_000_000_000, 5_000_000_000)
	PatchEntry(h, 123456, 5_000_000_000)

	assert.Equal(t, uint32(0xFFFFFFFF), h.CompressedSize())
	assert.Equal(t, uint32(0xFFFFFFFF), h.UncompressedSize())

	payload, ok := FindZip64Extra(h.Extra)
	assert.True(t, ok)
	z := DecodeZip64Extra(payload)
	assert.Equal(t, uint64(123456), z.Offset)
	assert.Equal(t, uint64(5_000_000_000), z.CompressedSize)
	assert.Equal(t, uint64(5_000_000_000), z.UncompressedSize)
}

func TestPatchEntryZip64Blanked(t *testing.T) {
	h := newLocalHeaderWithZip64(5_000_000_000, 5_000_000_000)
	PatchEntry(h, 999, 0)

	payload, ok := FindZip64Extra(h.Extra)
	assert.True(t, ok)
	z := DecodeZip64Extra(payload)
	assert.Equal(t, uint64(999), z.Offset)
	assert.Equal(t, uint64(0), z.CompressedSize)
	assert.Equal(t, uint64(0), z.UncompressedSize)
	assert.Equal(t, uint32(0), h.CRC32())
	assert.Equal(t, uint16(0), h.CompressionMethod())
}

func TestPatchEntryNoZip64Kept(t *testing.T) {
	h := newLocalHeaderNoZip64(4096)
	PatchEntry(h, 42, 4096)

	assert.Equal(t, uint32(4096), h.CompressedSize())
	assert.Equal(t, uint32(4096), h.UncompressedSize())
}

func TestPatchEntryNoZip64Blanked(t *testing.T) {
	h := newLocalHeaderNoZip64(4096)
	PatchEntry(h, 42, 0)

	assert.Equal(t, uint32(0), h.CompressedSize())
	assert.Equal(t, uint32(0), h.UncompressedSize())
	assert.Equal(t, uint32(0), h.CRC32())
	assert.Equal(t, uint16(0), h.CompressionMethod())
}
