package container

import (
	"fmt"

	"github.com/drpkit/drp/compress"
	"github.com/drpkit/drp/internal/options"
	"github.com/hashicorp/go-hclog"
)

// DefaultMaxRawSize is the largest raw size field a Decoder accepts unless configured otherwise.
const DefaultMaxRawSize = 256 * 1024 * 1024

// Config holds the settings shared by Encoder and Decoder.
//
// Options that only concern one side are ignored by the other.
type Config struct {
	level      int
	maxRawSize uint32
	logger     hclog.Logger
}

// Option is a functional option for configuring an Encoder or Decoder.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		level:      compress.DefaultZlibLevel,
		maxRawSize: DefaultMaxRawSize,
		logger:     hclog.NewNullLogger(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompressionLevel sets the zlib level used by Encoder.
// Valid values are -2 (Huffman only) through 9; -1 selects the default level.
func WithCompressionLevel(level int) Option {
	return options.New(func(cfg *Config) error {
		if _, err := compress.NewZlibCompressor(level); err != nil {
			return fmt.Errorf("invalid compression level %d: %w", level, err)
		}
		cfg.level = level

		return nil
	})
}

// WithMaxRawSize caps the raw size field a Decoder accepts. Larger fields are reported as
// malformed before any decompression happens.
func WithMaxRawSize(size uint32) Option {
	return options.New(func(cfg *Config) error {
		if size == 0 {
			return fmt.Errorf("max raw size must be positive")
		}
		cfg.maxRawSize = size

		return nil
	})
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		cfg.logger = logger
	})
}
