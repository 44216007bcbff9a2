package subtitle

import (
	"time"

	"golang.org/x/text/language"
)

// Reader is the interface for reading subtitle files
type Reader interface {
	Read() (*File, error)
}

// Writer is the interface for writing subtitle files
type Writer interface {
	Write(path string, subtitle *File) error
}

// Cue represents a single timed subtitle entry
type Cue struct {
	Index      int           // cue index, 1-based and monotonically increasing
	StartTime  time.Duration // start time
	EndTime    time.Duration // end time
	TimingLine string        // verbatim timing line, re-emitted unchanged
	Lines      []string      // subtitle text lines

	// sepBlanks is the number of blank lines separating this cue from the
	// next one in the source. Zero (a constructed cue) serializes as the
	// conventional single blank line.
	sepBlanks int
}

// File represents a parsed subtitle file
type File struct {
	Path     string
	Header   []string // verbatim lines preceding the first cue (signature, NOTE blocks)
	Cues     []Cue
	Language language.Tag
	Format   string // e.g. VTT

	// noFinalNewline and trailingBlanks record how the source file ended,
	// so serialization can reproduce it byte-for-byte.
	noFinalNewline bool
	trailingBlanks int
}

// CharCount returns the total number of characters of cue text
func (f *File) CharCount() int {
	total := 0
	for _, cue := range f.Cues {
		for _, line := range cue.Lines {
			total += len([]rune(line))
		}
	}
	return total
}

// Description describes one subtitle stream embedded in a media container
type Description struct {
	Language    string
	SubLanguage string
	LangTag     language.Tag
}

type Descriptions []Description

// HasLanguage reports whether any described stream matches the given tag
func (ds Descriptions) HasLanguage(tag language.Tag) bool {
	for _, d := range ds {
		if d.LangTag == tag {
			return true
		}
	}
	return false
}
