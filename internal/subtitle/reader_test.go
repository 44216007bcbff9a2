package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVTTBytes(t *testing.T) {
	data := []byte("WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.000\nHello\n\n2\n00:00:03.000 --> 00:00:04.000\nWorld\n")

	file, err := ReadVTTBytes(data, "embedded://sample")
	require.NoError(t, err)
	require.Len(t, file.Cues, 2)
	assert.Equal(t, []string{"Hello"}, file.Cues[0].Lines)
	assert.Equal(t, []string{"World"}, file.Cues[1].Lines)
	assert.Equal(t, "VTT", file.Format)
	assert.Equal(t, "embedded://sample", file.Path)
}

func TestReaderRejectsNonVTT(t *testing.T) {
	_, err := NewReader("movie.srt").Read()
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "movie.srt")
}

func TestReaderMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.vtt")
	_, err := NewReader(missing).Read()
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}

func TestReaderReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.vtt")
	require.NoError(t, os.WriteFile(path, []byte(sampleVTT), 0o644))

	file, err := NewReader(path).Read()
	require.NoError(t, err)
	require.Len(t, file.Cues, 2)
	assert.Equal(t, path, file.Path)
}
