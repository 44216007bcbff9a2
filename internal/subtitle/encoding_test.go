package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecodeTextUTF8Passthrough(t *testing.T) {
	text, err := DecodeText([]byte("WEBVTT\n\nПривет\n"), "plain.vtt")
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n\nПривет\n", text)
}

func TestDecodeTextStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("WEBVTT\n")...)
	text, err := DecodeText(data, "bom.vtt")
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT\n", text)
}

func TestDecodeTextDetectsWindows1251(t *testing.T) {
	source := "WEBVTT\n\nПривет, как дела? Хорошо, спасибо большое.\n"
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(source))
	require.NoError(t, err)

	text, err := DecodeText(encoded, "cp1251.vtt")
	require.NoError(t, err)
	assert.Equal(t, source, text)
}

func TestDecodeErrorNamesPath(t *testing.T) {
	err := &DecodeError{Path: "broken.vtt", Charset: "windows-1251", Confidence: 12, Cause: errDetectionConfidence}
	assert.Contains(t, err.Error(), "broken.vtt")
	assert.Contains(t, err.Error(), "windows-1251")
}

func TestResolveEncoding(t *testing.T) {
	enc, err := resolveEncoding("windows-1251")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	// chardet spelling that htmlindex does not know directly
	enc, err = resolveEncoding("GB-18030")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = resolveEncoding("no-such-charset")
	assert.Error(t, err)
}
