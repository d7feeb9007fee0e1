package binfile

import (
	"fmt"
	"io"
)

// versionMadeBy and versionNeeded match the source tool's choice: UNIX,
// spec version 3.0 for "made by", and 4.5 (ZIP64) for "needed to extract".
const (
	versionMadeBy = 0x031E
	versionNeeded = 0x002D
)

// WriteDirectory emits the synthesised central directory, ZIP64
// End-of-Central-Directory record, ZIP64 locator and classic EOCD,
// referencing the offsets recorded in rw's EntryStore. It is the final
// step of Run, called once the input scan is exhausted.
func (rw *Rewriter) WriteDirectory(out io.Writer) error {
	strict := rw.Mode.Strict()
	cdOffset := rw.written
	var cdSize uint64

	for _, e := range rw.entries.All() {
		rec := buildCentralHeader(e)
		data := rec.Encode(strict)
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("writing central directory entry: %w", err)
		}
		cdSize += uint64(len(data))
	}
	rw.written += cdSize

	eocd64Offset := rw.written
	eocd64 := EOCD64{
		VersionMadeBy: versionMadeBy,
		VersionNeeded: versionNeeded,
		EntriesTotal:  uint64(rw.entries.Len()),
		CDSize:        cdSize,
		CDOffset:      cdOffset,
	}
	e64 := eocd64.Encode()
	if _, err := out.Write(e64); err != nil {
		return fmt.Errorf("writing zip64 EOCD record: %w", err)
	}
	rw.written += uint64(len(e64))

	locator := EOCD64Locator{EOCD64Offset: eocd64Offset}
	lb := locator.Encode()
	if _, err := out.Write(lb); err != nil {
		return fmt.Errorf("writing zip64 EOCD locator: %w", err)
	}
	rw.written += uint64(len(lb))

	var comment []byte
	if strict {
		comment = []byte("binfile-extract region clip")
	}
	eb := EOCD{Comment: comment}.Encode()
	if _, err := out.Write(eb); err != nil {
		return fmt.Errorf("writing EOCD: %w", err)
	}
	rw.written += uint64(len(eb))

	return nil
}

// buildCentralHeader derives a central-directory record for an emitted
// entry. Its sizes come from the entry's local ZIP64 extra if one is
// present (already patched to the output values by PatchEntry), else from
// the local header's 32-bit fields (also already patched).
func buildCentralHeader(e LocalEntry) CentralHeader {
	h := e.Header
	z := Zip64Extra{Offset: e.Offset}
	if payload, ok := FindZip64Extra(h.Extra); ok && len(payload) >= Zip64ExtraPayloadLen {
		local := DecodeZip64Extra(payload)
		z.UncompressedSize = local.UncompressedSize
		z.CompressedSize = local.CompressedSize
	} else {
		z.UncompressedSize = uint64(h.UncompressedSize())
		z.CompressedSize = uint64(h.CompressedSize())
	}

	return CentralHeader{
		VersionMadeBy:     versionMadeBy,
		VersionNeeded:     versionNeeded,
		GenPurposeFlag:    h.GenPurposeFlag(),
		CompressionMethod: h.CompressionMethod(),
		LastModTime:       h.LastModTime(),
		LastModDate:       h.LastModDate(),
		CRC32:             h.CRC32(),
		Name:              h.Name,
		Zip64:             z,
	}
}
