package variant

import (
	"errors"
	"testing"

	"github.com/drpkit/drp/errs"
	"github.com/drpkit/drp/section"
	"github.com/stretchr/testify/require"
)

func TestSpec(t *testing.T) {
	tests := []struct {
		variant  Variant
		fileName string
		embedded string
		margin   [4]uint32
		bias     uint32
	}{
		{MusicInfo, "musicInfo.drp", "musicinfo_db", [4]uint32{0x20000001, 0x0310, 0x00010001, 0}, 12},
		{KatsuTheme, "katsu_theme.drp", "katsu_theme_db", [4]uint32{0x20000001, 0x01B0, 0x00010001, 0}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			spec, ok := tt.variant.Spec()
			require.True(t, ok)
			require.True(t, tt.variant.IsValid())
			require.Equal(t, tt.fileName, spec.FileName)
			require.Equal(t, tt.embedded, spec.EmbeddedName)
			require.Equal(t, tt.margin, spec.MarginWords)
			require.Equal(t, tt.bias, spec.SizeFieldBias)
			require.LessOrEqual(t, len(spec.EmbeddedName), section.MaxNameLen)
		})
	}
}

func TestSpec_Unknown(t *testing.T) {
	_, ok := Variant(0).Spec()
	require.False(t, ok)
	require.False(t, Variant(9).IsValid())
	require.Equal(t, "unknown(9)", Variant(9).String())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Variant
		wantErr bool
	}{
		{"music info", "musicInfo.drp", MusicInfo, false},
		{"katsu theme", "katsu_theme.drp", KatsuTheme, false},
		{"with directory", "out/data/musicInfo.drp", MusicInfo, false},
		{"case differs", "musicinfo.drp", 0, true},
		{"unknown name", "unknown.drp", 0, true},
		{"xml name", "musicInfo.xml", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)

				return
			}

			require.ErrorIs(t, err, errs.ErrUnresolvedVariant)
			var unresolved *errs.UnresolvedVariantError
			require.True(t, errors.As(err, &unresolved))
			require.Equal(t, tt.input, unresolved.Name)
		})
	}
}

func TestParse(t *testing.T) {
	for input, want := range map[string]Variant{
		"musicinfo":       MusicInfo,
		"MusicInfo":       MusicInfo,
		"katsu_theme":     KatsuTheme,
		"KatsuTheme":      KatsuTheme,
		"musicInfo.drp":   MusicInfo,
		"katsu_theme.drp": KatsuTheme,
	} {
		got, err := Parse(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := Parse("taiko")
	require.ErrorIs(t, err, errs.ErrUnresolvedVariant)
}

func TestByEmbeddedName(t *testing.T) {
	v, ok := ByEmbeddedName("musicinfo_db")
	require.True(t, ok)
	require.Equal(t, MusicInfo, v)

	v, ok = ByEmbeddedName("katsu_theme_db")
	require.True(t, ok)
	require.Equal(t, KatsuTheme, v)

	_, ok = ByEmbeddedName("musicInfo.drp")
	require.False(t, ok)
}
