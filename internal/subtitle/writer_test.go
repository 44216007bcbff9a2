package subtitle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWritesSerializedFile(t *testing.T) {
	file, err := Parse(sampleVTT, "sample.vtt")
	require.NoError(t, err)

	dir := t.TempDir()
	out := filepath.Join(dir, "sample.kk.vtt")
	require.NoError(t, NewWriter().Write(out, file))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, sampleVTT, string(content))

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sample.kk.vtt", entries[0].Name())
}

func TestWriterNilFile(t *testing.T) {
	err := NewWriter().Write(filepath.Join(t.TempDir(), "out.vtt"), nil)
	assert.Error(t, err)
}
