// Package section describes the fixed binary layout of a DRP container.
//
// A single-entry container looks like this (all integers big-endian):
//
//	0x00-0x13  zero
//	0x14-0x15  flag (uint16, always 2)
//	0x16-0x17  file count (uint16)
//	0x18-0x5F  zero
//	0x60-0x9F  entry name, NUL-padded to 0x40 bytes
//	0xA0-0xAF  four margin words
//	0xB0-0xBF  compressed size + bias, written four times
//	0xC0-0xC3  raw (uncompressed) size
//	0xC4-      payload, then zero padding to a 16-byte boundary
//
// Header covers everything before 0x60; EntryHeader covers one 0x64-byte entry header.
// Multi-entry containers repeat entry header + payload back to back starting at 0x60.
package section
