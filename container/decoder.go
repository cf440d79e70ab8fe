package container

import (
	"bytes"
	"fmt"
	"io"

	"github.com/drpkit/drp/compress"
	"github.com/drpkit/drp/errs"
	"github.com/drpkit/drp/format"
	"github.com/drpkit/drp/section"
	"github.com/hashicorp/go-hclog"
)

// Entry is one decoded container entry.
type Entry struct {
	// Index is the zero-based position of the entry in the container.
	Index int
	// Name is the embedded entry name, without NUL padding.
	Name string
	// Data is the raw payload, owned by the caller.
	Data []byte
}

// OutputName returns the file name a multi-entry decode writes this entry to: the embedded
// name with an ".xml" suffix. Entries without a name are called entry<index>.xml.
func (e Entry) OutputName() string {
	if e.Name == "" {
		return fmt.Sprintf("entry%d.xml", e.Index)
	}

	return e.Name + ".xml"
}

// SinkOpener opens the output for one entry of a multi-entry container.
type SinkOpener func(name string) (io.WriteCloser, error)

// Decoder extracts payloads from DRP containers.
//
// Single-entry containers are fully supported. Multi-entry containers are read best-effort:
// entries are walked back to back from offset 0x60, and a warning is logged.
//
// A Decoder is immutable after construction and safe for concurrent use.
type Decoder struct {
	stored     compress.Codec
	deflate    compress.Codec
	maxRawSize uint32
	logger     hclog.Logger
}

// decodedEntry carries everything learned about one entry during a walk.
type decodedEntry struct {
	index         int
	offset        int
	payloadOffset int
	payloadLen    int
	header        section.EntryHeader
	data          []byte
}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: WithMaxRawSize, WithLogger
//
// Returns:
//   - *Decoder: New decoder instance
//   - error: Invalid option
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	stored, err := compress.GetCodec(format.CompressionNone)
	if err != nil {
		return nil, err
	}
	deflate, err := compress.GetCodec(format.CompressionZlib)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		stored:     stored,
		deflate:    deflate,
		maxRawSize: cfg.maxRawSize,
		logger:     cfg.logger,
	}, nil
}

// Decode decodes every entry of the container.
//
// Either every entry decodes and verifies, or an error is returned and no entry is.
//
// Returns:
//   - []Entry: Decoded entries in container order
//   - error: *errs.MalformedContainerError, *errs.DecompressError or *errs.ChecksumError
func (d *Decoder) Decode(data []byte) ([]Entry, error) {
	_, decoded, err := d.walk(data)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(decoded))
	for i, de := range decoded {
		entries[i] = Entry{Index: de.index, Name: de.header.Name, Data: de.data}
	}

	return entries, nil
}

// DecodeTo decodes the container and writes the payloads out.
//
// A single-entry container is written to w. Each entry of a multi-entry container is
// written to a sink obtained from open with the entry's OutputName; every opened sink is
// closed before DecodeTo returns. All entries are decoded before anything is written, so a
// corrupt container produces no output. Errors from sinks are returned unchanged.
func (d *Decoder) DecodeTo(data []byte, w io.Writer, open SinkOpener) error {
	entries, err := d.Decode(data)
	if err != nil {
		return err
	}

	if len(entries) == 1 {
		_, err := w.Write(entries[0].Data)
		return err
	}

	if open == nil {
		return fmt.Errorf("container holds %d entries but no sink opener was given", len(entries))
	}

	for _, entry := range entries {
		if err := writeEntry(open, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeEntry(open SinkOpener, entry Entry) (err error) {
	sink, err := open(entry.OutputName())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = sink.Write(entry.Data)

	return err
}

func (d *Decoder) walk(data []byte) (section.Header, []decodedEntry, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return section.Header{}, nil, &errs.MalformedContainerError{
			Index:  -1,
			Offset: section.FlagOffset,
			Reason: fmt.Sprintf("container of %d bytes ends before the file count", len(data)),
			Err:    err,
		}
	}

	if header.FileCount == 0 {
		return header, nil, &errs.MalformedContainerError{
			Index:  -1,
			Offset: section.FlagOffset + 2,
			Reason: "file count is zero",
		}
	}

	if !header.IsSingleEntry() {
		d.logger.Warn("not a single-entry container, entries are named after their embedded names",
			"file_count", header.FileCount)
	}

	decoded := make([]decodedEntry, 0, header.FileCount)
	offset := section.EntryOffset
	for i := range int(header.FileCount) {
		de, err := d.decodeEntry(data, i, offset)
		if err != nil {
			return header, nil, err
		}

		d.logger.Debug("decoded entry",
			"index", i,
			"name", de.header.Name,
			"stored", de.header.IsStored(),
			"raw_size", de.header.RawSize)

		decoded = append(decoded, de)
		offset = de.payloadOffset + de.payloadLen
	}

	return header, decoded, nil
}

func (d *Decoder) decodeEntry(data []byte, index int, offset int) (decodedEntry, error) {
	de := decodedEntry{index: index, offset: offset}

	if offset+section.EntryHeaderSize > len(data) {
		return de, &errs.MalformedContainerError{
			Index:  index,
			Offset: offset,
			Reason: fmt.Sprintf("entry header needs %d bytes, %d left", section.EntryHeaderSize, max(len(data)-offset, 0)),
			Err:    errs.ErrInvalidEntrySize,
		}
	}

	header, err := section.ParseEntryHeader(data[offset:])
	if err != nil {
		return de, &errs.MalformedContainerError{Index: index, Offset: offset, Reason: "unreadable entry header", Err: err}
	}
	de.header = header

	malformed := func(at int, reason string, args ...any) error {
		return &errs.MalformedContainerError{
			Index:  index,
			Name:   header.Name,
			Offset: at,
			Reason: fmt.Sprintf(reason, args...),
		}
	}

	sizeOffset := offset + section.EntryNameSize + section.EntryMarginSize
	payloadLen, err := header.PayloadLen()
	if err != nil {
		return de, malformed(sizeOffset, "%v", err)
	}
	if header.RawSize > d.maxRawSize {
		return de, malformed(sizeOffset+16, "raw size %d exceeds the limit of %d", header.RawSize, d.maxRawSize)
	}

	// The stored size carries a per-variant bias but only SizeFieldAdjust is taken off, so the
	// read can run a few bytes past the end of the data.
	start := offset + section.EntryHeaderSize
	end := start + payloadLen
	if end > len(data) {
		if end-len(data) > section.MaxSizeOverhang {
			return de, malformed(start, "payload of %d bytes runs %d bytes past the end of the data", payloadLen, end-len(data))
		}
		end = len(data)
	}
	de.payloadOffset = start
	de.payloadLen = end - start

	payload, err := d.invert(data[start:end], &header)
	if err != nil {
		return de, &errs.DecompressError{Index: index, Name: header.Name, Err: err}
	}

	if len(payload) != int(header.RawSize) {
		return de, &errs.ChecksumError{
			Index:    index,
			Name:     header.Name,
			Expected: header.RawSize,
			Actual:   len(payload),
		}
	}
	de.data = payload

	return de, nil
}

func (d *Decoder) invert(payload []byte, header *section.EntryHeader) ([]byte, error) {
	codec := d.deflate
	if header.IsStored() {
		codec = d.stored
	}

	var (
		out []byte
		err error
	)
	if limited, ok := codec.(compress.LimitedDecompressor); ok {
		out, err = limited.DecompressLimit(payload, int(header.RawSize))
	} else {
		out, err = codec.Decompress(payload)
	}
	if err != nil {
		return nil, err
	}

	if header.IsStored() {
		// Stored payloads alias the container; hand the caller its own copy.
		out = bytes.Clone(out)
	}

	return out, nil
}

