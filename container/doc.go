// Package container implements the DRP container codec.
//
// A DRP container wraps one XML payload in a fixed, big-endian header:
//
//	0x00-0x5F  zero-filled, except a (flag, file count) pair of uint16 at 0x14
//	0x60-0x9F  embedded entry name, NUL-padded
//	0xA0-0xAF  four margin words (constants of the variant)
//	0xB0-0xBF  compressed size, written four times
//	0xC0-0xC3  raw (uncompressed) size
//	0xC4-      zlib payload, then zero padding to a 16-byte boundary
//
// The compressed size field is len(payload) plus a per-variant bias (12 for musicinfo,
// 8 for katsu_theme). Decoders subtract 4 from it to find how many payload bytes to read,
// so reads can run past the payload into the padding, and treat fields of 80 or less as
// stored (uncompressed) payloads. Encoder never emits such a field: short zlib streams are
// lengthened until the field exceeds 80.
//
// # Encoding
//
//	enc, err := container.NewEncoder()
//	data, err := enc.Encode(xml, variant.MusicInfo)
//
// # Decoding
//
//	dec, err := container.NewDecoder(container.WithLogger(logger))
//	entries, err := dec.Decode(data)
//
// The raw size field works as a checksum: a payload that does not decompress to exactly
// that many bytes fails with *errs.ChecksumError, and nothing is returned or written.
//
// Containers with a file count other than one are decoded best-effort. Entries are read
// back to back and each is named after its embedded name with an ".xml" suffix.
package container
