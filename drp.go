// Package drp encodes and decodes DRP containers, the fixed-layout binary wrapper around
// the zlib-compressed XML databases of musicInfo.drp and katsu_theme.drp.
//
// # Core Features
//
//   - Bit-exact container layout for both known variants (musicinfo, katsu_theme)
//   - Raw size verification on decode, reported as *errs.ChecksumError
//   - Typed structural errors naming the entry index, entry name and offset
//   - Best-effort decoding of multi-entry containers
//   - Structured logging through hclog, silent by default
//
// # Basic Usage
//
// Encoding an XML database:
//
//	import "github.com/drpkit/drp"
//
//	data, err := drp.Encode(xml, drp.MusicInfo)
//
//	// Or let the output file name select the variant
//	f, _ := os.Create("katsu_theme.drp")
//	defer f.Close()
//	err = drp.EncodeNamed(f, xml, f.Name())
//
// Decoding:
//
//	xml, err := drp.Decode(data)
//	if errors.Is(err, errs.ErrChecksumMismatch) {
//	    // payload does not match its raw size field
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the container package.
// Functions called without options share one Encoder and one Decoder. For repeated use
// with custom options, build a container.Encoder or container.Decoder directly.
package drp

import (
	"fmt"
	"io"
	"sync"

	"github.com/drpkit/drp/container"
	"github.com/drpkit/drp/errs"
	"github.com/drpkit/drp/variant"
)

// Variant selects the container constants. It is an alias of variant.Variant.
type Variant = variant.Variant

const (
	MusicInfo  = variant.MusicInfo
	KatsuTheme = variant.KatsuTheme
)

var (
	defaultEncoder = sync.OnceValues(func() (*container.Encoder, error) { return container.NewEncoder() })
	defaultDecoder = sync.OnceValues(func() (*container.Decoder, error) { return container.NewDecoder() })
)

func encoder(opts []container.Option) (*container.Encoder, error) {
	if len(opts) == 0 {
		return defaultEncoder()
	}

	return container.NewEncoder(opts...)
}

func decoder(opts []container.Option) (*container.Decoder, error) {
	if len(opts) == 0 {
		return defaultDecoder()
	}

	return container.NewDecoder(opts...)
}

// Encode wraps raw in a container of variant v.
//
// Parameters:
//   - raw: Uncompressed payload, usually an XML document
//   - v: Container variant
//   - opts: container.WithCompressionLevel, container.WithLogger
//
// Returns:
//   - []byte: Container bytes
//   - error: *errs.UnresolvedVariantError for an unknown variant, or an option error
func Encode(raw []byte, v Variant, opts ...container.Option) ([]byte, error) {
	enc, err := encoder(opts)
	if err != nil {
		return nil, err
	}

	return enc.Encode(raw, v)
}

// EncodeTo wraps raw in a container of variant v and writes it to w.
func EncodeTo(w io.Writer, raw []byte, v Variant, opts ...container.Option) error {
	enc, err := encoder(opts)
	if err != nil {
		return err
	}

	return enc.EncodeTo(w, raw, v)
}

// EncodeNamed encodes raw with the variant whose conventional file name matches the base
// name of outputName, and writes the container to w.
//
// An outputName that is neither musicInfo.drp nor katsu_theme.drp fails with
// *errs.UnresolvedVariantError before w is touched.
func EncodeNamed(w io.Writer, raw []byte, outputName string, opts ...container.Option) error {
	v, err := variant.Resolve(outputName)
	if err != nil {
		return err
	}

	return EncodeTo(w, raw, v, opts...)
}

// Decode returns the payload of a single-entry container.
//
// Containers holding several entries fail with errs.ErrMultipleEntries; use DecodeAll or
// DecodeTo for those.
func Decode(data []byte, opts ...container.Option) ([]byte, error) {
	entries, err := DecodeAll(data, opts...)
	if err != nil {
		return nil, err
	}

	if len(entries) != 1 {
		return nil, fmt.Errorf("%w: found %d", errs.ErrMultipleEntries, len(entries))
	}

	return entries[0].Data, nil
}

// DecodeAll decodes every entry of the container.
func DecodeAll(data []byte, opts ...container.Option) ([]container.Entry, error) {
	dec, err := decoder(opts)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// DecodeTo decodes the container and writes a single payload to w, or each entry of a
// multi-entry container to a sink obtained from open. See container.Decoder.DecodeTo.
func DecodeTo(data []byte, w io.Writer, open container.SinkOpener, opts ...container.Option) error {
	dec, err := decoder(opts)
	if err != nil {
		return err
	}

	return dec.DecodeTo(data, w, open)
}

// Inspect reports the layout of a container. It validates the same way Decode does.
func Inspect(data []byte, opts ...container.Option) (container.ContainerInfo, error) {
	dec, err := decoder(opts)
	if err != nil {
		return container.ContainerInfo{}, err
	}

	return dec.Inspect(data)
}
