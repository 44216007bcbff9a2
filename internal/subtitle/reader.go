package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// DefaultReader is the default subtitle file reader
type DefaultReader struct {
	path string
}

// NewReader creates a new subtitle file reader
func NewReader(
	path string,
) Reader {
	return &DefaultReader{
		path: path,
	}
}

// Read loads the subtitle file, auto-detecting its character encoding,
// and parses it into cues.
func (r *DefaultReader) Read() (*File, error) {
	if !strings.HasSuffix(strings.ToLower(r.path), ".vtt") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, r.path)
	}

	if _, err := os.Stat(r.path); err != nil {
		return nil, fmt.Errorf("cannot read subtitle file: %w", err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return ReadVTTBytes(data, r.path)
}

// ReadVTTBytes decodes and parses raw VTT content. The path is used only
// for error reporting and the resulting File's Path field.
func ReadVTTBytes(data []byte, path string) (*File, error) {
	text, err := DecodeText(data, path)
	if err != nil {
		return nil, err
	}

	return Parse(text, path)
}
