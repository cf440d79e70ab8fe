// Package errs defines the errors reported by the drp codec.
//
// Every failure kind has a sentinel that callers can match with errors.Is. The structural
// kinds also have a typed error carrying the entry index, the embedded entry name and the
// offending values; match those with errors.As.
package errs

import (
	"errors"
	"fmt"
)

var (
	// Variant errors
	ErrUnresolvedVariant = errors.New("unresolved container variant")

	// Container structure errors
	ErrMalformedContainer  = errors.New("malformed container")
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidEntrySize    = errors.New("invalid entry header size")
	ErrEmbeddedNameTooLong = errors.New("embedded name too long")

	// Payload errors
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrDecompress      = errors.New("payload decompression failed")
	ErrPayloadTooSmall = errors.New("compressed payload too small for the stored-payload threshold")
	ErrMultipleEntries = errors.New("container holds more than one entry")
)

// UnresolvedVariantError reports an output identity that matches no known variant.
type UnresolvedVariantError struct {
	Name string
}

func (e *UnresolvedVariantError) Error() string {
	return fmt.Sprintf("unresolved container variant %q: expected musicInfo.drp or katsu_theme.drp", e.Name)
}

func (e *UnresolvedVariantError) Is(target error) bool {
	return target == ErrUnresolvedVariant
}

// ChecksumError reports a decoded payload whose length differs from the stored raw size.
type ChecksumError struct {
	Index    int
	Name     string
	Expected uint32
	Actual   int
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("entry %d (%q): checksum failed, raw size field %d but payload has %d bytes",
		e.Index, e.Name, e.Expected, e.Actual)
}

func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// MalformedContainerError reports a structural problem: truncated data, reads past the end
// of the buffer, or implausible size fields.
//
// Index is -1 when the problem is in the container header rather than an entry.
type MalformedContainerError struct {
	Index  int
	Name   string
	Offset int
	Reason string
	Err    error
}

func (e *MalformedContainerError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed container at offset 0x%X: %s", e.Offset, e.Reason)
	}

	return fmt.Sprintf("malformed container, entry %d (%q) at offset 0x%X: %s", e.Index, e.Name, e.Offset, e.Reason)
}

func (e *MalformedContainerError) Is(target error) bool {
	return target == ErrMalformedContainer
}

func (e *MalformedContainerError) Unwrap() error {
	return e.Err
}

// DecompressError reports a payload the compression transform could not invert.
type DecompressError struct {
	Index int
	Name  string
	Err   error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("entry %d (%q): %v: %v", e.Index, e.Name, ErrDecompress, e.Err)
}

func (e *DecompressError) Is(target error) bool {
	return target == ErrDecompress
}

func (e *DecompressError) Unwrap() error {
	return e.Err
}
