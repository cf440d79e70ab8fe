package section

import (
	"github.com/drpkit/drp/endian"
	"github.com/drpkit/drp/errs"
)

var engine = endian.GetBigEndianEngine()

// Header is the container header: the region in front of the first entry header.
//
// Only the pair at FlagOffset carries data; the rest of the region is zero-filled.
type Header struct {
	// Flag is an unidentified field, 2 in every known container.
	Flag uint16 // byte offset 0x14-0x15
	// FileCount is the number of entries that follow.
	FileCount uint16 // byte offset 0x16-0x17
}

// NewHeader creates a header for a single-entry container.
func NewHeader() Header {
	return Header{Flag: DefaultFlag, FileCount: 1}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Container bytes (must hold at least the flag pair)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data ends before the flag pair
func (h *Header) Parse(data []byte) error {
	if len(data) < FlagOffset+FlagPairSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag = engine.Uint16(data[FlagOffset : FlagOffset+2])
	h.FileCount = engine.Uint16(data[FlagOffset+2 : FlagOffset+4])

	return nil
}

// Bytes serializes the header into an EntryOffset-sized, zero-filled byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, EntryOffset)
	engine.PutUint16(b[FlagOffset:FlagOffset+2], h.Flag)
	engine.PutUint16(b[FlagOffset+2:FlagOffset+4], h.FileCount)

	return b
}

// IsSingleEntry reports whether the container holds exactly one entry, the only fully
// supported layout.
func (h Header) IsSingleEntry() bool {
	return h.FileCount == 1
}

// ParseHeader parses a Header from a byte slice.
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
