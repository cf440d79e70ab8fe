package drp

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/drpkit/drp/container"
	"github.com/drpkit/drp/errs"
	"github.com/drpkit/drp/section"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	writes int
	bytes.Buffer
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

// TestEncodeDecode verifies the default round trip for both variants
func TestEncodeDecode(t *testing.T) {
	raw := []byte(`<?xml version="1.0"?><musicinfo><song id="1"/></musicinfo>`)

	for _, v := range []Variant{MusicInfo, KatsuTheme} {
		data, err := Encode(raw, v)
		require.NoError(t, err)
		require.Zero(t, len(data)%16)

		decoded, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, raw, decoded)
	}
}

// TestXMLScenario checks the documented minimal container byte for byte
func TestXMLScenario(t *testing.T) {
	data, err := Encode([]byte("<xml/>"), MusicInfo)
	require.NoError(t, err)

	require.Equal(t, []byte{0x00, 0x02, 0x00, 0x01}, data[0x14:0x18])
	require.Equal(t, append([]byte("musicinfo_db"), make([]byte, 0x40-12)...), data[0x60:0xA0])
	require.Zero(t, len(data)%16)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, "<xml/>", string(decoded))
}

func TestEncodeNamed(t *testing.T) {
	raw := []byte("<theme/>")

	t.Run("resolves variant from output name", func(t *testing.T) {
		for name, v := range map[string]Variant{
			"musicInfo.drp":             MusicInfo,
			"/srv/data/katsu_theme.drp": KatsuTheme,
		} {
			var named bytes.Buffer
			require.NoError(t, EncodeNamed(&named, raw, name))

			expected, err := Encode(raw, v)
			require.NoError(t, err)
			require.Equal(t, expected, named.Bytes(), name)
		}
	})

	t.Run("unknown name leaves the sink untouched", func(t *testing.T) {
		for _, name := range []string{"unknown.drp", "musicinfo.drp", "katsu_theme.bin", ""} {
			w := &recordingWriter{}
			err := EncodeNamed(w, raw, name)
			require.ErrorIs(t, err, errs.ErrUnresolvedVariant)

			var unresolved *errs.UnresolvedVariantError
			require.True(t, errors.As(err, &unresolved))
			require.Equal(t, name, unresolved.Name)
			require.Zero(t, w.writes)
		}
	})
}

func TestEncodeTo_WithOptions(t *testing.T) {
	raw := bytes.Repeat([]byte("<song/>"), 200)

	var fast, best bytes.Buffer
	require.NoError(t, EncodeTo(&fast, raw, MusicInfo, container.WithCompressionLevel(1)))
	require.NoError(t, EncodeTo(&best, raw, MusicInfo, container.WithCompressionLevel(9)))

	for _, data := range [][]byte{fast.Bytes(), best.Bytes()} {
		decoded, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, raw, decoded)
	}

	_, err := Encode(raw, MusicInfo, container.WithCompressionLevel(100))
	require.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	data, err := Encode([]byte("<xml>payload</xml>"), KatsuTheme)
	require.NoError(t, err)

	t.Run("checksum", func(t *testing.T) {
		corrupt := bytes.Clone(data)
		corrupt[section.FirstPayloadOffset-1]++

		var out bytes.Buffer
		err := DecodeTo(corrupt, &out, nil)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
		require.Zero(t, out.Len())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode(data[:0x20])
		require.ErrorIs(t, err, errs.ErrMalformedContainer)
	})

	t.Run("option error", func(t *testing.T) {
		_, err := Decode(data, container.WithMaxRawSize(0))
		require.Error(t, err)
	})
}

func multiEntry(t *testing.T) []byte {
	t.Helper()

	b := section.Header{Flag: section.DefaultFlag, FileCount: 2}.Bytes()
	for _, payload := range []string{"<a/>", "<b/>"} {
		h := &section.EntryHeader{
			Name:            payload[1:2] + "_db",
			CompressedSizes: [4]uint32{uint32(len(payload)) + section.SizeFieldAdjust},
			RawSize:         uint32(len(payload)),
		}
		b = append(b, h.Bytes()...)
		b = append(b, payload...)
	}

	return b
}

func TestDecode_MultiEntry(t *testing.T) {
	data := multiEntry(t)

	_, err := Decode(data)
	require.ErrorIs(t, err, errs.ErrMultipleEntries)

	entries, err := DecodeAll(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a_db", entries[0].Name)
	require.Equal(t, []byte("<b/>"), entries[1].Data)

	written := map[string]*bytes.Buffer{}
	open := func(name string) (io.WriteCloser, error) {
		buf := &bytes.Buffer{}
		written[name] = buf

		return nopCloser{buf}, nil
	}
	require.NoError(t, DecodeTo(data, io.Discard, open))
	require.Equal(t, "<a/>", written["a_db.xml"].String())
	require.Equal(t, "<b/>", written["b_db.xml"].String())
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func TestInspect(t *testing.T) {
	raw := []byte("<xml/>")
	data, err := Encode(raw, MusicInfo)
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)
	require.Equal(t, uint16(1), info.FileCount)
	require.Len(t, info.Entries, 1)
	require.Equal(t, MusicInfo, info.Entries[0].Variant)
	require.Equal(t, uint32(len(raw)), info.Entries[0].RawSize)
	require.Greater(t, info.Entries[0].CompressedSizes[0], uint32(section.StoredThreshold))
}
