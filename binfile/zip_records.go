package binfile

import "encoding/binary"

// Signatures that begin each record type a streaming scan can encounter.
const (
	SigLocalFileHeader  uint32 = 0x04034B50
	SigCentralDirHeader uint32 = 0x02014B50
	SigZip64EOCDRecord  uint32 = 0x06064B50
	SigZip64EOCDLocator uint32 = 0x07064B50
	SigEOCD             uint32 = 0x06054B50
)

// Zip64ExtraID is the extra-field header id that marks a ZIP64 record.
const Zip64ExtraID uint16 = 0x0001

const (
	// LocalHeaderFixedLen is the local file header up to, but excluding,
	// the filename/extra trailer.
	LocalHeaderFixedLen = 30
	// CentralHeaderFixedLen is the central-directory header up to,
	// but excluding, the filename/extra/comment trailer.
	CentralHeaderFixedLen = 46
	// Zip64ExtraPayloadLen is the full-form ZIP64 extra payload this tool
	// always expects to find already present in an input local header:
	// uncompressed_size(8) + compressed_size(8) + offset(8) + disk_start(4).
	Zip64ExtraPayloadLen = 28
	// Zip64ExtraCompatPayloadLen is the offset-only payload written into
	// synthesised central directory entries under EngineCompatibleMode.
	Zip64ExtraCompatPayloadLen = 8
	// EOCD64FixedLen is the ZIP64 End-of-Central-Directory record length,
	// signature through central_directory_offset.
	EOCD64FixedLen = 56
	// EOCD64LocatorLen is the ZIP64 locator record's fixed (and only) length.
	EOCD64LocatorLen = 20
	// EOCDFixedLen is the classic EOCD record up to, but excluding, the
	// comment trailer.
	EOCDFixedLen = 22
)

// LocalHeader is a parsed local file header: the fixed 30-byte record plus
// its filename and extra-field bytes, each held in its own slice rather
// than aliasing the stream's read buffer.
type LocalHeader struct {
	Fixed [LocalHeaderFixedLen]byte
	Name  []byte
	Extra []byte
}

// DecodeLocalHeaderFixed assembles a local header's fixed part from the
// 4-byte signature already read by the dispatch loop and the remaining
// 26 fixed bytes.
func DecodeLocalHeaderFixed(sig uint32, rest [LocalHeaderFixedLen - 4]byte) [LocalHeaderFixedLen]byte {
	var fixed [LocalHeaderFixedLen]byte
	binary.LittleEndian.PutUint32(fixed[0:4], sig)
	copy(fixed[4:], rest[:])
	return fixed
}

func (h *LocalHeader) VersionNeeded() uint16     { return binary.LittleEndian.Uint16(h.Fixed[4:6]) }
func (h *LocalHeader) GenPurposeFlag() uint16    { return binary.LittleEndian.Uint16(h.Fixed[6:8]) }
func (h *LocalHeader) CompressionMethod() uint16 { return binary.LittleEndian.Uint16(h.Fixed[8:10]) }
func (h *LocalHeader) LastModTime() uint16       { return binary.LittleEndian.Uint16(h.Fixed[10:12]) }
func (h *LocalHeader) LastModDate() uint16       { return binary.LittleEndian.Uint16(h.Fixed[12:14]) }
func (h *LocalHeader) CRC32() uint32             { return binary.LittleEndian.Uint32(h.Fixed[14:18]) }
func (h *LocalHeader) CompressedSize() uint32    { return binary.LittleEndian.Uint32(h.Fixed[18:22]) }
func (h *LocalHeader) UncompressedSize() uint32  { return binary.LittleEndian.Uint32(h.Fixed[22:26]) }
func (h *LocalHeader) FileNameLength() uint16    { return binary.LittleEndian.Uint16(h.Fixed[26:28]) }
func (h *LocalHeader) ExtraFieldLength() uint16  { return binary.LittleEndian.Uint16(h.Fixed[28:30]) }

func (h *LocalHeader) SetCompressedSize(v uint32) {
	binary.LittleEndian.PutUint32(h.Fixed[18:22], v)
}
func (h *LocalHeader) SetUncompressedSize(v uint32) {
	binary.LittleEndian.PutUint32(h.Fixed[22:26], v)
}
func (h *LocalHeader) SetCRC32(v uint32)             { binary.LittleEndian.PutUint32(h.Fixed[14:18], v) }
func (h *LocalHeader) SetCompressionMethod(v uint16) { binary.LittleEndian.PutUint16(h.Fixed[8:10], v) }

// Bytes concatenates the fixed record, filename and extra trailer, in the
// order a ZIP reader expects them on the wire.
func (h *LocalHeader) Bytes() []byte {
	out := make([]byte, 0, LocalHeaderFixedLen+len(h.Name)+len(h.Extra))
	out = append(out, h.Fixed[:]...)
	out = append(out, h.Name...)
	out = append(out, h.Extra...)
	return out
}

// Zip64Extra is the fixed-size ZIP64 extra-field payload this format's
// local headers are assumed to already carry in full form: uncompressed
// and compressed sizes, the local header's offset, and a disk number.
type Zip64Extra struct {
	UncompressedSize uint64
	CompressedSize   uint64
	Offset           uint64
	DiskStart        uint32
}

// DecodeZip64Extra reads a Zip64Extra from a payload of at least
// Zip64ExtraPayloadLen bytes (the id:u16/size:u16 header is not included;
// see FindZip64Extra).
func DecodeZip64Extra(payload []byte) Zip64Extra {
	return Zip64Extra{
		UncompressedSize: binary.LittleEndian.Uint64(payload[0:8]),
		CompressedSize:   binary.LittleEndian.Uint64(payload[8:16]),
		Offset:           binary.LittleEndian.Uint64(payload[16:24]),
		DiskStart:        binary.LittleEndian.Uint32(payload[24:28]),
	}
}

// EncodeInto writes z back into payload in place, matching DecodeZip64Extra's
// layout. payload must be at least Zip64ExtraPayloadLen bytes.
func (z Zip64Extra) EncodeInto(payload []byte) {
	binary.LittleEndian.PutUint64(payload[0:8], z.UncompressedSize)
	binary.LittleEndian.PutUint64(payload[8:16], z.CompressedSize)
	binary.LittleEndian.PutUint64(payload[16:24], z.Offset)
	binary.LittleEndian.PutUint32(payload[24:28], z.DiskStart)
}

// EncodeFull serialises z as a complete (id, data_size, payload) extra
// record: the "strict" central-directory form that restates both sizes.
func (z Zip64Extra) EncodeFull() []byte {
	buf := make([]byte, 4+Zip64ExtraPayloadLen)
	binary.LittleEndian.PutUint16(buf[0:2], Zip64ExtraID)
	binary.LittleEndian.PutUint16(buf[2:4], Zip64ExtraPayloadLen)
	z.EncodeInto(buf[4:])
	return buf
}

// EncodeOffsetOnly serialises just the offset field: the engine-compatible
// central-directory form this format defaults to.
func (z Zip64Extra) EncodeOffsetOnly() []byte {
	buf := make([]byte, 4+Zip64ExtraCompatPayloadLen)
	binary.LittleEndian.PutUint16(buf[0:2], Zip64ExtraID)
	binary.LittleEndian.PutUint16(buf[2:4], Zip64ExtraCompatPayloadLen)
	binary.LittleEndian.PutUint64(buf[4:12], z.Offset)
	return buf
}

// CentralHeader is an in-progress central-directory record this tool
// synthesises itself; it is never parsed off the wire (the input's
// central directory is read and discarded).
type CentralHeader struct {
	VersionMadeBy         uint16
	VersionNeeded         uint16
	GenPurposeFlag        uint16
	CompressionMethod     uint16
	LastModTime           uint16
	LastModDate           uint16
	CRC32                 uint32
	Name                  []byte
	Zip64                 Zip64Extra
	DiskNumberStart       uint16
	InternalFileAttrs     uint16
	ExternalFileAttrs     uint32
}

// Encode serialises the central-directory record. strict selects whether
// the trailing ZIP64 extra restates both sizes (true) or carries the
// offset alone (false, the engine-compatible default).
func (c CentralHeader) Encode(strict bool) []byte {
	var extra []byte
	if strict {
		extra = c.Zip64.EncodeFull()
	} else {
		extra = c.Zip64.EncodeOffsetOnly()
	}

	fixed := make([]byte, CentralHeaderFixedLen)
	binary.LittleEndian.PutUint32(fixed[0:4], SigCentralDirHeader)
	binary.LittleEndian.PutUint16(fixed[4:6], c.VersionMadeBy)
	binary.LittleEndian.PutUint16(fixed[6:8], c.VersionNeeded)
	binary.LittleEndian.PutUint16(fixed[8:10], c.GenPurposeFlag)
	binary.LittleEndian.PutUint16(fixed[10:12], c.CompressionMethod)
	binary.LittleEndian.PutUint16(fixed[12:14], c.LastModTime)
	binary.LittleEndian.PutUint16(fixed[14:16], c.LastModDate)
	binary.LittleEndian.PutUint32(fixed[16:20], c.CRC32)
	binary.LittleEndian.PutUint32(fixed[20:24], 0xFFFFFFFF) // compressed_size
	binary.LittleEndian.PutUint32(fixed[24:28], 0xFFFFFFFF) // uncompressed_size
	binary.LittleEndian.PutUint16(fixed[28:30], uint16(len(c.Name)))
	binary.LittleEndian.PutUint16(fixed[30:32], uint16(len(extra)))
	binary.LittleEndian.PutUint16(fixed[32:34], 0) // file_comment_length
	binary.LittleEndian.PutUint16(fixed[34:36], c.DiskNumberStart)
	binary.LittleEndian.PutUint16(fixed[36:38], c.InternalFileAttrs)
	binary.LittleEndian.PutUint32(fixed[38:42], c.ExternalFileAttrs)
	binary.LittleEndian.PutUint32(fixed[42:46], 0xFFFFFFFF) // relative_offset_of_local_header

	out := make([]byte, 0, CentralHeaderFixedLen+len(c.Name)+len(extra))
	out = append(out, fixed...)
	out = append(out, c.Name...)
	out = append(out, extra...)
	return out
}

// EOCD64 is the ZIP64 End-of-Central-Directory record.
type EOCD64 struct {
	VersionMadeBy   uint16
	VersionNeeded   uint16
	EntriesTotal    uint64
	CDSize          uint64
	CDOffset        uint64
}

func (e EOCD64) Encode() []byte {
	buf := make([]byte, EOCD64FixedLen)
	binary.LittleEndian.PutUint32(buf[0:4], SigZip64EOCDRecord)
	binary.LittleEndian.PutUint64(buf[4:12], EOCD64FixedLen-12)
	binary.LittleEndian.PutUint16(buf[12:14], e.VersionMadeBy)
	binary.LittleEndian.PutUint16(buf[14:16], e.VersionNeeded)
	binary.LittleEndian.PutUint32(buf[16:20], 0) // number_of_this_disk
	binary.LittleEndian.PutUint32(buf[20:24], 0) // disk_with_start_of_cd
	binary.LittleEndian.PutUint64(buf[24:32], e.EntriesTotal)
	binary.LittleEndian.PutUint64(buf[32:40], e.EntriesTotal)
	binary.LittleEndian.PutUint64(buf[40:48], e.CDSize)
	binary.LittleEndian.PutUint64(buf[48:56], e.CDOffset)
	return buf
}

// EOCD64Locator is the ZIP64 locator record pointing at EOCD64.
type EOCD64Locator struct {
	EOCD64Offset uint64
}

func (l EOCD64Locator) Encode() []byte {
	buf := make([]byte, EOCD64LocatorLen)
	binary.LittleEndian.PutUint32(buf[0:4], SigZip64EOCDLocator)
	binary.LittleEndian.PutUint32(buf[4:8], 0) // disk with EOCD64
	binary.LittleEndian.PutUint64(buf[8:16], l.EOCD64Offset)
	binary.LittleEndian.PutUint32(buf[16:20], 1) // total disks
	return buf
}

// EOCD is the classic End-of-Central-Directory record, always written with
// ZIP64 sentinel values since every archive this tool emits requires
// ZIP64 to be read correctly.
type EOCD struct {
	Comment []byte
}

func (e EOCD) Encode() []byte {
	buf := make([]byte, EOCDFixedLen, EOCDFixedLen+len(e.Comment))
	binary.LittleEndian.PutUint32(buf[0:4], SigEOCD)
	binary.LittleEndian.PutUint16(buf[4:6], 0)      // disk number
	binary.LittleEndian.PutUint16(buf[6:8], 0)      // disk with start of cd
	binary.LittleEndian.PutUint16(buf[8:10], 0xFFFF) // entries this disk
	binary.LittleEndian.PutUint16(buf[10:12], 0xFFFF)
	binary.LittleEndian.PutUint32(buf[12:16], 0xFFFFFFFF) // cd size
	binary.LittleEndian.PutUint32(buf[16:20], 0xFFFFFFFF) // cd offset
	binary.LittleEndian.PutUint16(buf[20:22], uint16(len(e.Comment)))
	return append(buf, e.Comment...)
}
