package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/drpkit/drp/errs"
	"github.com/klauspost/compress/zlib"
)

// DefaultZlibLevel is the compression level used by GetCodec and by container encoders
// that are not configured otherwise.
const DefaultZlibLevel = zlib.DefaultCompression

// maxPadFlushes bounds CompressMin. Each sync flush on an idle stream emits an empty stored
// block of five bytes, so 64 flushes lengthen a stream by 320 bytes.
const maxPadFlushes = 64

// ZlibCompressor produces and consumes zlib (RFC 1950) streams, the payload format of
// DRP containers.
//
// Writers are pooled per compressor; ZlibCompressor values are safe for concurrent use.
type ZlibCompressor struct {
	level  int
	writer *sync.Pool
}

var (
	_ Codec               = (*ZlibCompressor)(nil)
	_ Padder              = (*ZlibCompressor)(nil)
	_ LimitedDecompressor = (*ZlibCompressor)(nil)
)

// NewZlibCompressor creates a zlib compressor for the given level.
//
// Valid levels are zlib.HuffmanOnly through zlib.BestCompression, plus
// zlib.DefaultCompression.
//
// Returns:
//   - ZlibCompressor: New zlib compressor instance
//   - error: Invalid compression level
func NewZlibCompressor(level int) (ZlibCompressor, error) {
	if _, err := zlib.NewWriterLevel(io.Discard, level); err != nil {
		return ZlibCompressor{}, err
	}

	return ZlibCompressor{
		level: level,
		writer: &sync.Pool{
			New: func() any {
				zw, err := zlib.NewWriterLevel(nil, level)
				if err != nil {
					return nil
				}

				return zw
			},
		},
	}, nil
}

func mustZlib(level int) ZlibCompressor {
	c, err := NewZlibCompressor(level)
	if err != nil {
		panic(fmt.Sprintf("failed to create zlib compressor: %v", err))
	}

	return c
}

// Level returns the configured compression level.
func (c ZlibCompressor) Level() int {
	return c.level
}

// Compress compresses the input data into a complete zlib stream.
//
// Empty input still yields a valid (non-empty) stream.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	return c.compress(data, 0)
}

// CompressMin compresses data into a zlib stream of at least minLen bytes.
//
// Short streams are lengthened with empty sync-flush blocks, which every inflater skips,
// so the stream still decompresses to exactly data. The output is deterministic for a
// given input, level and minLen.
func (c ZlibCompressor) CompressMin(data []byte, minLen int) ([]byte, error) {
	for flushes := 0; flushes <= maxPadFlushes; flushes++ {
		out, err := c.compress(data, flushes)
		if err != nil {
			return nil, err
		}
		if len(out) >= minLen {
			return out, nil
		}
	}

	return nil, fmt.Errorf("%w: need %d bytes", errs.ErrPayloadTooSmall, minLen)
}

func (c ZlibCompressor) compress(data []byte, flushes int) ([]byte, error) {
	var buf bytes.Buffer

	zw, err := c.acquire(&buf)
	if err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	defer c.release(zw)

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	for range flushes {
		if err := zw.Flush(); err != nil {
			return nil, fmt.Errorf("zlib flush: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a complete zlib stream.
//
// Bytes following the end of the stream are ignored.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	return c.inflate(data, -1)
}

// DecompressLimit inflates at most limit+1 bytes of a zlib stream.
func (c ZlibCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if limit < 0 {
		limit = 0
	}

	return c.inflate(data, limit)
}

func (c ZlibCompressor) inflate(data []byte, limit int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	defer zr.Close()

	var r io.Reader = zr
	if limit >= 0 {
		r = io.LimitReader(zr, int64(limit)+1)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}

	return out, nil
}

func (c ZlibCompressor) acquire(w io.Writer) (*zlib.Writer, error) {
	if c.writer != nil {
		if zw, ok := c.writer.Get().(*zlib.Writer); ok {
			zw.Reset(w)
			return zw, nil
		}
	}

	return zlib.NewWriterLevel(w, c.level)
}

func (c ZlibCompressor) release(zw *zlib.Writer) {
	if c.writer != nil {
		c.writer.Put(zw)
	}
}
