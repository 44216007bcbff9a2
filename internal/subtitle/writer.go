package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultWriter is the default subtitle file writer
type DefaultWriter struct{}

// NewWriter creates a new subtitle file writer
func NewWriter() Writer {
	return &DefaultWriter{}
}

// Write serializes the subtitle file and writes it UTF-8 encoded to path.
// The content is written to a temporary file in the same directory and
// renamed into place, so an interrupted run never leaves a partial file.
func (w *DefaultWriter) Write(path string, subtitle *File) error {
	if subtitle == nil {
		return fmt.Errorf("subtitle data is empty")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vttrans-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(Serialize(subtitle)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}

// Serialize reassembles a subtitle file: header verbatim, then each cue in
// original order with its index line, unchanged timing line and text lines,
// cues separated by their original blank-line runs. Serialize(Parse(x))
// reproduces x byte-for-byte for UTF-8 input.
func Serialize(subtitle *File) string {
	var b strings.Builder

	for _, line := range subtitle.Header {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	for i, cue := range subtitle.Cues {
		if i > 0 {
			blanks := subtitle.Cues[i-1].sepBlanks
			if blanks < 1 {
				blanks = 1
			}
			for ; blanks > 0; blanks-- {
				b.WriteByte('\n')
			}
		}
		b.WriteString(strconv.Itoa(cue.Index))
		b.WriteByte('\n')
		b.WriteString(cue.TimingLine)
		b.WriteByte('\n')
		for _, line := range cue.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	for i := 0; i < subtitle.trailingBlanks; i++ {
		b.WriteByte('\n')
	}

	out := b.String()
	if subtitle.noFinalNewline {
		out = strings.TrimSuffix(out, "\n")
	}

	return out
}
