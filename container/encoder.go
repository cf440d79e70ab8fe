package container

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/drpkit/drp/compress"
	"github.com/drpkit/drp/errs"
	"github.com/drpkit/drp/format"
	"github.com/drpkit/drp/internal/pool"
	"github.com/drpkit/drp/section"
	"github.com/drpkit/drp/variant"
	"github.com/hashicorp/go-hclog"
)

// Encoder builds single-entry DRP containers.
//
// An Encoder is immutable after construction and safe for concurrent use.
type Encoder struct {
	codec  compress.Codec
	logger hclog.Logger
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: WithCompressionLevel, WithLogger
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Invalid option
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(format.CompressionZlib, cfg.level, "payload")
	if err != nil {
		return nil, err
	}

	return &Encoder{codec: codec, logger: cfg.logger}, nil
}

// Encode compresses raw and wraps it in a container of variant v.
//
// The result is deterministic for identical raw bytes, variant and compression level,
// and its length is always a multiple of 16.
//
// Returns:
//   - []byte: Container bytes, owned by the caller
//   - error: *errs.UnresolvedVariantError for an unknown variant, or a compression error
func (e *Encoder) Encode(raw []byte, v variant.Variant) ([]byte, error) {
	bb := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(bb)

	if err := e.build(bb, raw, v); err != nil {
		return nil, err
	}

	return bytes.Clone(bb.Bytes()), nil
}

// EncodeTo encodes raw as a container of variant v and writes it to w in a single Write.
//
// Nothing is written when encoding fails. Errors from w are returned unchanged.
func (e *Encoder) EncodeTo(w io.Writer, raw []byte, v variant.Variant) error {
	bb := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(bb)

	if err := e.build(bb, raw, v); err != nil {
		return err
	}

	_, err := bb.WriteTo(w)

	return err
}

func (e *Encoder) build(bb *pool.ByteBuffer, raw []byte, v variant.Variant) error {
	spec, ok := v.Spec()
	if !ok {
		return &errs.UnresolvedVariantError{Name: v.String()}
	}

	if uint64(len(raw)) > math.MaxUint32 {
		return fmt.Errorf("%w: raw payload of %d bytes does not fit the raw size field", errs.ErrInvalidEntrySize, len(raw))
	}

	// Size fields at or below the stored threshold would make decoders skip decompression.
	minLen := section.StoredThreshold + 1 - int(spec.SizeFieldBias)
	compressed, err := e.compress(raw, minLen)
	if err != nil {
		return err
	}

	sizeField := uint64(len(compressed)) + uint64(spec.SizeFieldBias)
	if sizeField > math.MaxUint32 {
		return fmt.Errorf("%w: compressed payload of %d bytes does not fit the size field", errs.ErrInvalidEntrySize, len(compressed))
	}

	entry, err := section.NewEntryHeader(spec.EmbeddedName, spec.MarginWords, uint32(sizeField), uint32(len(raw)))
	if err != nil {
		return err
	}

	bb.Grow(section.EntryOffset + section.EntryHeaderSize + len(compressed) + section.Alignment)
	bb.MustWrite(section.NewHeader().Bytes())
	bb.MustWrite(entry.Bytes())
	bb.MustWrite(compressed)
	bb.PadTo(section.Alignment)

	e.logger.Debug("encoded container",
		"variant", v.String(),
		"raw_size", len(raw),
		"compressed_size", len(compressed),
		"size_field", sizeField,
		"container_size", bb.Len())

	return nil
}

func (e *Encoder) compress(raw []byte, minLen int) ([]byte, error) {
	if padder, ok := e.codec.(compress.Padder); ok {
		return padder.CompressMin(raw, minLen)
	}

	compressed, err := e.codec.Compress(raw)
	if err != nil {
		return nil, err
	}
	if len(compressed) < minLen {
		return nil, fmt.Errorf("%w: %d bytes, need %d", errs.ErrPayloadTooSmall, len(compressed), minLen)
	}

	return compressed, nil
}
