package binfile

import (
	"encoding/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCentralHeaderEncodeStrict(t *testing.T) {
	c := CentralHeader{
		VersionMadeBy:     versionMadeBy,
		VersionNeeded:     versionNeeded,
		CompressionMethod: 0,
		CRC32:             0xDEADBEEF,
		Name:              []byte("a"),
		Zip64:             Zip64Extra{UncompressedSize: 10, CompressedSize: 10, Offset: 500},
	}
	data := c.Encode(true)

	require.GreaterOrEqual(t, len(data), CentralHeaderFixedLen)
	assert.Equal(t, SigCentralDirHeader, binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint32(0xFFFFFFFF), binary.LittleEndian.Uint32(data[20:24]))
	assert.Equal(t, uint32(0xFFFFFFFF), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint32(0xFFFFFFFF), binary.LittleEndian.Uint32(data[42:46]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[28:30]))

	extraLen := binary.LittleEndian.Uint16(data[30:32])
	extra := data[CentralHeaderFixedLen+1 : CentralHeaderFixedLen+1+int(extraLen)]
	assert.Equal(t, Zip64ExtraID, binary.LittleEndian.Uint16(extra[0:2]))
	assert.Equal(t, uint16(Zip64ExtraPayloadLen), binary.LittleEndian.Uint16(extra[2:4]))

	z := DecodeZip64Extra(extra[4:])
	assert.Equal(t, uint64(10), z.UncompressedSize)
	assert.Equal(t, uint64(10), z.CompressedSize)
	assert.Equal(t, uint64(500), z.Offset)
}

func TestCentralHeaderEncodeCompat(t *testing.T) {
	c := CentralHeader{
		Name:  []byte("b"),
		Zip64: Zip64Extra{UncompressedSize: 10, CompressedSize: 10, Offset: 777},
	}
	data := c.Encode(false)

	extraLen := binary.LittleEndian.Uint16(data[30:32])
	assert.Equal(t, uint16(4+Zip64ExtraCompatPayloadLen), extraLen)

	extra := data[CentralHeaderFixedLen+1:]
	assert.Equal(t, Zip64ExtraID, binary.LittleEndian.Uint16(extra[0:2]))
	assert.Equal(t, uint16(Zip64ExtraCompatPayloadLen), binary.LittleEndian.Uint16(extra[2:4]))
	assert.Equal(t, uint64(777), binary.LittleEndian.Uint64(extra[4:12]))
}

func TestEOCD64Encode(t *testing.T) {
	e := EOCD64{VersionMadeBy: 1, VersionNeeded: 2, EntriesTotal: 3, CDSize: 400, CDOffset: 500}
	data := e.Encode()

	require.Len(t, data, EOCD64FixedLen)
	assert.Equal(t, SigZip64EOCDRecord, binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint64(EOCD64FixedLen-12), binary.LittleEndian.Uint64(data[4:12]))
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(data[24:32]))
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(data[32:40]))
	assert.Equal(t, uint64(400), binary.LittleEndian.Uint64(data[40:48]))
	assert.Equal(t, uint64(500), binary.LittleEndian.Uint64(data[48:56]))
}

func TestEOCD64LocatorEncode(t *testing.T) {
	l := EOCD64Locator{EOCD64Offset: 12345}
	data := l.Encode()

	require.Len(t, data, EOCD64LocatorLen)
	assert.Equal(t, SigZip64EOCDLocator, binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint64(12345), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[16:20]))
}

func TestEOCDEncode(t *testing.T) {
	e := EOCD{Comment: []byte("hi")}
	data := e.Encode()

	require.Len(t, data, EOCDFixedLen+2)
	assert.Equal(t, SigEOCD, binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint16(0xFFFF), binary.LittleEndian.Uint16(data[8:10]))
	assert.Equal(t, uint32(0xFFFFFFFF), binary.LittleEndian.Uint32(data[12:16]))
	assert.Equal(t, uint32(0xFFFFFFFF), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(data[20:22]))
	assert.Equal(t, "hi", string(data[22:]))
}

func TestBuildCentralHeaderFromZip64Local(t *testing.T) {
	h := newLocalHeaderWithZip64(999, 999)
	h.Name = []byte("tile")
	entry := LocalEntry{Header: h, Offset: 42, CompressedSize: 999}

	c := buildCentralHeader(entry)
	assert.Equal(t, uint64(42), c.Zip64.Offset)
	assert.Equal(t, uint64(999), c.Zip64.CompressedSize)
	assert.Equal(t, uint64(999), c.Zip64.UncompressedSize)
}

func TestBuildCentralHeaderFromPlainLocal(t *testing.T) {
	h := newLocalHeaderNoZip64(128)
	h.Name = []byte("index")
	entry := LocalEntry{Header: h, Offset: 7, CompressedSize: 128}

	c := buildCentralHeader(entry)
	assert.Equal(t, uint64(7), c.Zip64.Offset)
	assert.Equal(t, uint64(128), c.Zip64.CompressedSize)
	assert.Equal(t, uint64(128), c.Zip64.UncompressedSize)
}
