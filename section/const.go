package section

const (
	// Container header
	FlagOffset   = 0x14 // byte offset of the big-endian (flag, file count) pair
	FlagPairSize = 4    // two uint16 fields
	EntryOffset  = 0x60 // byte offset of the first entry header
	DefaultFlag  = 2    // value of the unidentified flag field written by encoders

	// Entry header
	EntryNameSize   = 0x40 // NUL-padded entry name
	EntryMarginSize = 0x10 // four margin words, not interpreted on decode
	EntrySizeBlock  = 0x14 // four compressed size words and the raw size word

	// EntryHeaderSize is the size of one entry header, 0x64.
	EntryHeaderSize = EntryNameSize + EntryMarginSize + EntrySizeBlock

	// SizeBlockOffset is the offset of the first entry's margin and size words, 0xA0.
	SizeBlockOffset = EntryOffset + EntryNameSize

	// FirstPayloadOffset is the offset of the first entry's payload, 0xC4.
	FirstPayloadOffset = EntryOffset + EntryHeaderSize

	// Size field semantics
	SizeFieldAdjust = 4  // subtracted from the first size word to get the payload read length
	StoredThreshold = 80 // size words at or below this value mark a stored payload
	MaxSizeOverhang = 8  // largest bias minus SizeFieldAdjust

	// Alignment is the boundary containers are zero-padded to.
	Alignment = 0x10
)
