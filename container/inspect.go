package container

import (
	"github.com/drpkit/drp/internal/hash"
	"github.com/drpkit/drp/variant"
)

// EntryInfo describes one entry of an inspected container.
type EntryInfo struct {
	Index int
	Name  string

	// Offset is where the entry header starts; PayloadOffset and PayloadLen locate the
	// payload bytes actually read.
	Offset        int
	PayloadOffset int
	PayloadLen    int

	Margin          [4]uint32
	CompressedSizes [4]uint32
	RawSize         uint32

	// Stored is true when the size field marks the payload as uncompressed.
	Stored bool
	// SizesAgree is false when the four duplicated size words differ.
	SizesAgree bool

	// Variant is the variant whose embedded name matches Name; zero when none does.
	Variant variant.Variant

	// Digest is the xxHash64 of the decoded payload.
	Digest uint64
}

// ContainerInfo summarizes a container.
type ContainerInfo struct {
	Size      int
	Flag      uint16
	FileCount uint16
	Entries   []EntryInfo
}

// Inspect decodes the container and reports its layout.
//
// Inspect applies the same validation as Decode and fails on the same inputs.
func (d *Decoder) Inspect(data []byte) (ContainerInfo, error) {
	header, decoded, err := d.walk(data)
	if err != nil {
		return ContainerInfo{}, err
	}

	info := ContainerInfo{
		Size:      len(data),
		Flag:      header.Flag,
		FileCount: header.FileCount,
		Entries:   make([]EntryInfo, 0, len(decoded)),
	}

	for _, de := range decoded {
		v, _ := variant.ByEmbeddedName(de.header.Name)
		info.Entries = append(info.Entries, EntryInfo{
			Index:           de.index,
			Name:            de.header.Name,
			Offset:          de.offset,
			PayloadOffset:   de.payloadOffset,
			PayloadLen:      de.payloadLen,
			Margin:          de.header.Margin,
			CompressedSizes: de.header.CompressedSizes,
			RawSize:         de.header.RawSize,
			Stored:          de.header.IsStored(),
			SizesAgree:      de.header.SizesAgree(),
			Variant:         v,
			Digest:          hash.Digest(de.data),
		})
	}

	return info, nil
}
