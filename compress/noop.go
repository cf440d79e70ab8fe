package compress

// NoOpCompressor passes data through untouched.
//
// DRP decoders use it for stored payloads, whose size field is too small for the
// payload to have been compressed.
type NoOpCompressor struct{}

var (
	_ Codec               = (*NoOpCompressor)(nil)
	_ LimitedDecompressor = (*NoOpCompressor)(nil)
)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressLimit returns the input data directly without copying.
//
// A stored payload is already fully materialized, so the limit is not applied.
func (c NoOpCompressor) DecompressLimit(data []byte, _ int) ([]byte, error) {
	return data, nil
}
