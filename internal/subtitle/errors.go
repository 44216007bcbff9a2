package subtitle

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat reports a subtitle file extension the reader does
// not handle.
var ErrUnsupportedFormat = errors.New("only VTT subtitle files are supported")

// DecodeError reports that the byte content of a subtitle file could not
// be decoded to text with any supported encoding.
type DecodeError struct {
	Path       string
	Charset    string // detected charset, empty when detection failed
	Confidence int
	Cause      error
}

func (e *DecodeError) Error() string {
	if e.Charset == "" {
		return fmt.Sprintf("failed to decode subtitle file %s: no encoding detected", e.Path)
	}
	return fmt.Sprintf("failed to decode subtitle file %s as %s (confidence %d%%): %v",
		e.Path, e.Charset, e.Confidence, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// ParseError reports malformed cue structure at a specific line of the
// subtitle file. Line numbers are 1-based.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse subtitle file %s at line %d: %s", e.Path, e.Line, e.Message)
}
