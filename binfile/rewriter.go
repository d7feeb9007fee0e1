package binfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
)

// copyBufferSize is the fixed payload-copy buffer. Its size is not part of
// the wire contract, only that it is bounded and independent of entry
// size.
const copyBufferSize = 10 * 1024 * 1024

// Rewriter performs the single forward pass over an input archive stream,
// filtering or blanking entries against a query rectangle and producing a
// patched, always-ZIP64 output archive.
type Rewriter struct {
	Query    Rect
	Mode     CompatMode
	Logger   *log.Logger
	Progress Progress

	written uint64
	entries *EntryStore
	stats   *RunStats
	buf     []byte
}

// NewRewriter returns a Rewriter ready to process one archive against
// query. A nil progress tracker is treated as quiet.
func NewRewriter(query Rect, mode CompatMode, logger *log.Logger, progress Progress) *Rewriter {
	if progress == nil {
		progress = quietProgress{}
	}
	return &Rewriter{
		Query:    query,
		Mode:     mode,
		Logger:   logger,
		Progress: progress,
		entries:  NewEntryStore(),
		stats:    NewRunStats(),
		buf:      make([]byte, copyBufferSize),
	}
}

// Stats returns the coverage accumulator. Only meaningful once Run has
// returned successfully.
func (rw *Rewriter) Stats() *RunStats { return rw.stats }

// Entries returns the store of emitted entries. Only meaningful once Run
// has returned successfully.
func (rw *Rewriter) Entries() *EntryStore { return rw.entries }

// Run executes the full streaming rewrite: a forward scan dispatched on
// each record's 4-byte signature, a per-entry filter/patch/copy for local
// file headers, and the central-directory finalisation once the input is
// exhausted or an unrecognised signature is seen.
func (rw *Rewriter) Run(in io.Reader, out io.Writer) error {
scan:
	for {
		var sigBuf [4]byte
		n, err := io.ReadFull(in, sigBuf[:])
		if err == io.EOF && n == 0 {
			break
		}
		if err != nil {
			return fmt.Errorf("reading record signature: %w", err)
		}
		sig := binary.LittleEndian.Uint32(sigBuf[:])

		switch sig {
		case SigLocalFileHeader:
			if err := rw.processLocalFile(sig, in, out); err != nil {
				return err
			}
		case SigCentralDirHeader:
			if err := rw.discardCentralDirHeader(in); err != nil {
				return err
			}
		case SigZip64EOCDRecord:
			if err := rw.discardZip64EOCD(in); err != nil {
				return err
			}
		case SigZip64EOCDLocator:
			if err := discardN(in, EOCD64LocatorLen-4); err != nil {
				return fmt.Errorf("reading zip64 EOCD locator: %w", err)
			}
		case SigEOCD:
			if err := rw.discardEOCD(in); err != nil {
				return err
			}
		default:
			if rw.Logger != nil {
				rw.Logger.Printf("unrecognised record signature %#08x, treating as end of archive", sig)
			}
			break scan
		}
	}
	return rw.WriteDirectory(out)
}

func (rw *Rewriter) processLocalFile(sig uint32, in io.Reader, out io.Writer) error {
	var rest [LocalHeaderFixedLen - 4]byte
	if _, err := io.ReadFull(in, rest[:]); err != nil {
		return fmt.Errorf("reading local file header: %w", err)
	}
	h := &LocalHeader{Fixed: DecodeLocalHeaderFixed(sig, rest)}

	nameLen := int(h.FileNameLength())
	extraLen := int(h.ExtraFieldLength())
	trailer := make([]byte, nameLen+extraLen)
	if _, err := io.ReadFull(in, trailer); err != nil {
		return fmt.Errorf("reading local file header name/extra: %w", err)
	}
	h.Name = trailer[:nameLen:nameLen]
	h.Extra = trailer[nameLen : nameLen+extraLen : nameLen+extraLen]

	name := string(h.Name)
	filesize := AuthoritativeSize(h)
	depth := TileLen(name)
	keep := ShouldKeep(name, rw.Query)

	var newSize uint64
	if keep {
		newSize = filesize
	} else {
		if err := discardN(in, int64(filesize)); err != nil {
			return fmt.Errorf("draining blanked payload for %q: %w", name, err)
		}
	}

	offsetBefore := rw.written
	PatchEntry(h, offsetBefore, newSize)

	hdrBytes := h.Bytes()
	if _, err := out.Write(hdrBytes); err != nil {
		return fmt.Errorf("writing local file header for %q: %w", name, err)
	}
	rw.written += uint64(len(hdrBytes))

	var contentSum uint64
	var haveContentSum bool
	if keep {
		hasher := NewContentHasher()
		if err := rw.copyPayload(in, io.MultiWriter(out, hasher), newSize); err != nil {
			return fmt.Errorf("copying payload for %q: %w", name, err)
		}
		contentSum = hasher.Sum64()
		haveContentSum = true
	}
	rw.written += newSize

	rw.entries.Append(h, offsetBefore, newSize)
	rw.stats.RecordEntry(depth, PathID(name), keep, filesize)
	if haveContentSum {
		rw.stats.RecordContent(contentSum)
	}
	return nil
}

// copyPayload streams exactly n bytes from in to out using rw's fixed
// buffer, reporting progress as it goes.
func (rw *Rewriter) copyPayload(in io.Reader, out io.Writer, n uint64) error {
	remaining := n
	for remaining > 0 {
		chunk := uint64(len(rw.buf))
		if chunk > remaining {
			chunk = remaining
		}
		if _, err := io.ReadFull(in, rw.buf[:chunk]); err != nil {
			return fmt.Errorf("short read on payload: %w", err)
		}
		if _, err := out.Write(rw.buf[:chunk]); err != nil {
			return err
		}
		rw.Progress.Add(int(chunk))
		remaining -= chunk
	}
	return nil
}

func (rw *Rewriter) discardCentralDirHeader(in io.Reader) error {
	rest := make([]byte, CentralHeaderFixedLen-4)
	if _, err := io.ReadFull(in, rest); err != nil {
		return fmt.Errorf("reading central directory header: %w", err)
	}
	nameLen := binary.LittleEndian.Uint16(rest[24:26])
	extraLen := binary.LittleEndian.Uint16(rest[26:28])
	commentLen := binary.LittleEndian.Uint16(rest[28:30])
	if err := discardN(in, int64(nameLen)+int64(extraLen)+int64(commentLen)); err != nil {
		return fmt.Errorf("reading central directory header trailer: %w", err)
	}
	return nil
}

func (rw *Rewriter) discardZip64EOCD(in io.Reader) error {
	var sizeBuf [8]byte
	if _, err := io.ReadFull(in, sizeBuf[:]); err != nil {
		return fmt.Errorf("reading zip64 EOCD record size: %w", err)
	}
	size := binary.LittleEndian.Uint64(sizeBuf[:])
	if err := discardN(in, int64(size)); err != nil {
		return fmt.Errorf("reading zip64 EOCD record: %w", err)
	}
	return nil
}

func (rw *Rewriter) discardEOCD(in io.Reader) error {
	rest := make([]byte, EOCDFixedLen-4)
	if _, err := io.ReadFull(in, rest); err != nil {
		return fmt.Errorf("reading EOCD: %w", err)
	}
	commentLen := binary.LittleEndian.Uint16(rest[16:18])
	if err := discardN(in, int64(commentLen)); err != nil {
		return fmt.Errorf("reading EOCD comment: %w", err)
	}
	return nil
}

func discardN(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
