package binfile

import "encoding/binary"

// FindZip64Extra walks a local header's extra-field area as a sequence of
// (id:u16, size:u16, payload[size]) records and returns the payload bytes
// of the first ZIP64 record found. ok is false if none is present or the
// area is malformed (a record claiming more bytes than remain).
func FindZip64Extra(extra []byte) (payload []byte, ok bool) {
	used := 0
	for used+4 <= len(extra) {
		id := binary.LittleEndian.Uint16(extra[used : used+2])
		size := int(binary.LittleEndian.Uint16(extra[used+2 : used+4]))
		used += 4
		if used+size > len(extra) {
			return nil, false
		}
		if id == Zip64ExtraID {
			return extra[used : used+size], true
		}
		used += size
	}
	return nil, false
}

// AuthoritativeSize returns the entry's real compressed size: the ZIP64
// extra's value when present (and large enough to carry one), else the
// 32-bit header field.
func AuthoritativeSize(h *LocalHeader) uint64 {
	if payload, ok := FindZip64Extra(h.Extra); ok && len(payload) >= Zip64ExtraPayloadLen {
		return DecodeZip64Extra(payload).CompressedSize
	}
	return uint64(h.CompressedSize())
}

// PatchEntry rewrites h in place so its recorded offset and compressed
// size reflect where and how large the entry is in the *output* stream.
// When newCompressedSize is 0 (the entry was blanked), the uncompressed
// size, crc32 and compression method are cleared too so a consumer never
// attempts to decompress empty data.
func PatchEntry(h *LocalHeader, newOffset uint64, newCompressedSize uint64) {
	if payload, ok := FindZip64Extra(h.Extra); ok && len(payload) >= Zip64ExtraPayloadLen {
		h.SetCompressedSize(0xFFFFFFFF)
		h.SetUncompressedSize(0xFFFFFFFF)
		z := DecodeZip64Extra(payload)
		z.Offset = newOffset
		z.CompressedSize = newCompressedSize
		if newCompressedSize == 0 {
			z.UncompressedSize = 0
		}
		z.EncodeInto(payload)
	} else {
		h.SetCompressedSize(uint32(newCompressedSize))
		if newCompressedSize == 0 {
			h.SetUncompressedSize(0)
		}
	}
	if newCompressedSize == 0 {
		h.SetCRC32(0)
		h.SetCompressionMethod(0)
	}
}
