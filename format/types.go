package format

import (
	"fmt"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a payload stored as-is.
	CompressionZlib CompressionType = 0x2 // CompressionZlib represents a zlib (RFC 1950) stream.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a compression type from its case-insensitive name.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "none":
		return CompressionNone, nil
	case "zlib":
		return CompressionZlib, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}
