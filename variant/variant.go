// Package variant holds the static table of DRP container variants.
//
// A variant fixes the header constants a container is written with: the entry name embedded
// at offset 0x60, the four margin words that open the size block at 0xA0, and the bias added
// to the compressed length before it is stored. Two variants are known, one per game file.
//
//	v, err := variant.Resolve("out/musicInfo.drp") // variant.MusicInfo
//	spec, _ := v.Spec()
//	fmt.Println(spec.EmbeddedName) // musicinfo_db
package variant

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/drpkit/drp/errs"
)

// Variant identifies one of the known container kinds.
//
// The zero value is not a valid variant.
type Variant uint8

const (
	MusicInfo  Variant = 0x1 // MusicInfo is the song database container, musicInfo.drp.
	KatsuTheme Variant = 0x2 // KatsuTheme is the theme database container, katsu_theme.drp.
)

// Spec is the immutable set of header constants for a variant.
type Spec struct {
	// FileName is the conventional output file name that selects this variant.
	FileName string
	// EmbeddedName is the ASCII entry name written at offset 0x60.
	EmbeddedName string
	// MarginWords are the four words written at offset 0xA0, ahead of the size fields.
	MarginWords [4]uint32
	// SizeFieldBias is added to the compressed payload length in each size field.
	SizeFieldBias uint32
}

var table = map[Variant]Spec{
	MusicInfo: {
		FileName:      "musicInfo.drp",
		EmbeddedName:  "musicinfo_db",
		MarginWords:   [4]uint32{0x20000001, 0x0310, 0x00010001, 0},
		SizeFieldBias: 12,
	},
	KatsuTheme: {
		FileName:      "katsu_theme.drp",
		EmbeddedName:  "katsu_theme_db",
		MarginWords:   [4]uint32{0x20000001, 0x01B0, 0x00010001, 0},
		SizeFieldBias: 8,
	},
}

// All returns the known variants in tag order.
func All() []Variant {
	return []Variant{MusicInfo, KatsuTheme}
}

// Spec returns the header constants for v.
func (v Variant) Spec() (Spec, bool) {
	spec, ok := table[v]
	return spec, ok
}

// IsValid reports whether v is a known variant.
func (v Variant) IsValid() bool {
	_, ok := table[v]
	return ok
}

func (v Variant) String() string {
	switch v {
	case MusicInfo:
		return "musicinfo"
	case KatsuTheme:
		return "katsu_theme"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(v))
	}
}

// Resolve maps an output file name to its variant.
//
// Only the base name is compared, and the comparison is exact: musicInfo.drp and
// katsu_theme.drp. Any other name yields an *errs.UnresolvedVariantError.
func Resolve(name string) (Variant, error) {
	base := filepath.Base(name)
	for _, v := range All() {
		if table[v].FileName == base {
			return v, nil
		}
	}

	return 0, &errs.UnresolvedVariantError{Name: name}
}

// Parse parses a variant from its tag name (musicinfo, katsu_theme), case-insensitively.
// Conventional file names are accepted as well.
func Parse(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "musicinfo", "music_info":
		return MusicInfo, nil
	case "katsu_theme", "katsutheme":
		return KatsuTheme, nil
	}

	return Resolve(s)
}

// ByEmbeddedName finds the variant whose embedded entry name is name.
func ByEmbeddedName(name string) (Variant, bool) {
	for _, v := range All() {
		if table[v].EmbeddedName == name {
			return v, true
		}
	}

	return 0, false
}
