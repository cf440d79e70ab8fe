package compress

import (
	"fmt"

	"github.com/drpkit/drp/format"
)

// Compressor compresses a whole in-memory payload.
//
// Memory management:
//   - Returned slice is owned by the caller unless the implementation documents otherwise
//   - Input slice is not modified
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	Compress(data []byte) ([]byte, error)
}

// Decompressor inverts a Compressor.
//
// Example:
//
//	codec, _ := compress.GetCodec(format.CompressionZlib)
//	original, err := codec.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Padder is implemented by codecs whose stream format can be lengthened without changing
// what it decompresses to.
//
// DRP decoders treat a small size field as a stored (uncompressed) payload, so a container
// encoder needs compressed streams of at least a minimum length.
type Padder interface {
	// CompressMin compresses data into a stream that is at least minLen bytes long.
	//
	// Returns errs.ErrPayloadTooSmall if the stream cannot be lengthened enough.
	CompressMin(data []byte, minLen int) ([]byte, error)
}

// LimitedDecompressor is implemented by codecs that can stop inflating once the output
// exceeds a known bound.
type LimitedDecompressor interface {
	// DecompressLimit decompresses at most limit+1 bytes. A result longer than limit means
	// the stream holds more data than expected; the remainder is not inflated.
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None or Zlib)
//   - level: zlib compression level, ignored for None
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type or level error
func CreateCodec(compressionType format.CompressionType, level int, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZlib:
		codec, err := NewZlibCompressor(level)
		if err != nil {
			return nil, fmt.Errorf("invalid %s compression level %d: %w", target, level, err)
		}

		return codec, nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZlib: mustZlib(DefaultZlibLevel),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// The zlib codec uses DefaultZlibLevel.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
