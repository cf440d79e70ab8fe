// Package compress provides the compression transform applied to DRP container payloads.
//
// A DRP payload is a zlib (RFC 1950) stream. The decoder also recognizes stored payloads,
// which bypass compression entirely; those are handled by the no-op codec.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// and two optional capabilities that the container codec probes for:
//
//   - Padder: produce a stream of at least N bytes (zlib pads with empty sync-flush blocks)
//   - LimitedDecompressor: stop inflating once the output exceeds the expected raw size
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	original, _ := codec.Decompress(stored)  // Returns data unchanged
//
// **Zlib** (format.CompressionZlib)
//
//	codec, err := compress.NewZlibCompressor(compress.DefaultZlibLevel)
//	compressed, err := codec.Compress(xml)
//	original, err := codec.Decompress(compressed)
//
// The zlib implementation is github.com/klauspost/compress/zlib, a drop-in replacement
// for compress/zlib with faster deflate. Streams are interchangeable with any RFC 1950
// implementation, including the one the game runtime uses.
//
// # Thread Safety
//
// All codecs are safe for concurrent use. Zlib writers are pooled per ZlibCompressor.
package compress
