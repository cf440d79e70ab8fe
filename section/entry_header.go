package section

import (
	"bytes"
	"fmt"

	"github.com/drpkit/drp/errs"
)

// MaxNameLen is the longest entry name that leaves room for a NUL terminator.
const MaxNameLen = EntryNameSize - 1

// EntryHeader describes one entry: its name, four margin words, and the size block.
//
// Layout (big-endian, relative to the start of the entry header):
//
//	0x00-0x3F  name, NUL-padded
//	0x40-0x4F  margin words (4 x uint32)
//	0x50-0x5F  compressed size words (4 x uint32, duplicates)
//	0x60-0x63  raw size
type EntryHeader struct {
	// Name is the entry file name, without its NUL padding.
	Name string
	// Margin holds the four margin words. Encoders write the variant's constants; decoders
	// keep them for inspection only.
	Margin [4]uint32
	// CompressedSizes are the four duplicated size words. Only the first is authoritative.
	CompressedSizes [4]uint32
	// RawSize is the uncompressed payload length, used as a checksum.
	RawSize uint32
}

// NewEntryHeader creates an entry header whose four size words all hold compressedSize.
//
// Returns errs.ErrEmbeddedNameTooLong if name does not fit the name field with a terminator.
func NewEntryHeader(name string, margin [4]uint32, compressedSize, rawSize uint32) (*EntryHeader, error) {
	if len(name) > MaxNameLen {
		return nil, fmt.Errorf("%w: %q is %d bytes, max %d", errs.ErrEmbeddedNameTooLong, name, len(name), MaxNameLen)
	}

	return &EntryHeader{
		Name:            name,
		Margin:          margin,
		CompressedSizes: [4]uint32{compressedSize, compressedSize, compressedSize, compressedSize},
		RawSize:         rawSize,
	}, nil
}

// Parse parses the entry header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry header (must be exactly EntryHeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidEntrySize if data is not EntryHeaderSize bytes
func (h *EntryHeader) Parse(data []byte) error {
	if len(data) != EntryHeaderSize {
		return errs.ErrInvalidEntrySize
	}

	name := data[:EntryNameSize]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	h.Name = string(name)

	off := EntryNameSize
	for i := range h.Margin {
		h.Margin[i] = engine.Uint32(data[off : off+4])
		off += 4
	}
	for i := range h.CompressedSizes {
		h.CompressedSizes[i] = engine.Uint32(data[off : off+4])
		off += 4
	}
	h.RawSize = engine.Uint32(data[off : off+4])

	return nil
}

// Bytes serializes the entry header into an EntryHeaderSize byte slice.
//
// Names longer than MaxNameLen are truncated; use NewEntryHeader to reject them instead.
func (h *EntryHeader) Bytes() []byte {
	b := make([]byte, 0, EntryHeaderSize)

	var name [EntryNameSize]byte
	copy(name[:MaxNameLen], h.Name)
	b = append(b, name[:]...)

	for _, w := range h.Margin {
		b = engine.AppendUint32(b, w)
	}
	for _, w := range h.CompressedSizes {
		b = engine.AppendUint32(b, w)
	}

	return engine.AppendUint32(b, h.RawSize)
}

// CompressedSize returns the authoritative (first) compressed size word.
func (h *EntryHeader) CompressedSize() uint32 {
	return h.CompressedSizes[0]
}

// IsStored reports whether the payload is stored as-is rather than compressed.
func (h *EntryHeader) IsStored() bool {
	return h.CompressedSize() <= StoredThreshold
}

// PayloadLen returns the number of payload bytes to read after the entry header.
//
// Returns an error when the size word is too small to subtract SizeFieldAdjust.
func (h *EntryHeader) PayloadLen() (int, error) {
	size := h.CompressedSize()
	if size < SizeFieldAdjust {
		return 0, fmt.Errorf("compressed size field %d is below the minimum %d", size, SizeFieldAdjust)
	}

	return int(size - SizeFieldAdjust), nil
}

// SizesAgree reports whether all four compressed size words hold the same value.
//
// Decoders do not require this; it is exposed for inspection.
func (h *EntryHeader) SizesAgree() bool {
	first := h.CompressedSizes[0]
	for _, s := range h.CompressedSizes[1:] {
		if s != first {
			return false
		}
	}

	return true
}

// ParseEntryHeader parses an EntryHeader from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice containing the entry header (must be at least EntryHeaderSize bytes)
//
// Returns:
//   - EntryHeader: Parsed entry header
//   - error: ErrInvalidEntrySize if data is too short
func ParseEntryHeader(data []byte) (EntryHeader, error) {
	if len(data) < EntryHeaderSize {
		return EntryHeader{}, errs.ErrInvalidEntrySize
	}

	h := EntryHeader{}
	if err := h.Parse(data[:EntryHeaderSize]); err != nil {
		return EntryHeader{}, err
	}

	return h, nil
}
