package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// VTT timing line: 00:02:16.612 --> 00:02:19.376, optionally followed by
// cue settings after whitespace.
var timingRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{3}) --> (\d{2}):(\d{2}):(\d{2})\.(\d{3})(?:[ \t].*)?$`)

// Parse splits decoded subtitle text into a verbatim header and an ordered
// sequence of cues. The header is everything preceding the first cue block
// and is preserved unchanged. Malformed cue structure fails with a
// *ParseError carrying the offending 1-based line number.
func Parse(text string, path string) (*File, error) {
	noFinalNewline := text != "" && !strings.HasSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	if !noFinalNewline && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	file := &File{
		Path:           path,
		Format:         "VTT",
		noFinalNewline: noFinalNewline,
	}

	inHeader := true
	lastIndex := 0
	i := 0
	n := len(lines)

	for i < n {
		trimmed := strings.TrimSpace(lines[i])

		if index, err := strconv.Atoi(trimmed); err == nil && trimmed != "" &&
			i+1 < n && timingRe.MatchString(strings.TrimSpace(lines[i+1])) {
			inHeader = false

			if index <= lastIndex {
				return nil, &ParseError{
					Path:    path,
					Line:    i + 1,
					Message: "cue index " + strconv.Itoa(index) + " does not increase monotonically (previous " + strconv.Itoa(lastIndex) + ")",
				}
			}

			timingLine := lines[i+1]
			start, end := parseTiming(strings.TrimSpace(timingLine))
			if start > end {
				return nil, &ParseError{
					Path:    path,
					Line:    i + 2,
					Message: "cue start time is after end time: " + strings.TrimSpace(timingLine),
				}
			}

			var text []string
			j := i + 2
			for j < n && strings.TrimSpace(lines[j]) != "" {
				text = append(text, lines[j])
				j++
			}

			file.Cues = append(file.Cues, Cue{
				Index:      index,
				StartTime:  start,
				EndTime:    end,
				TimingLine: timingLine,
				Lines:      text,
			})
			lastIndex = index

			// consume the blank separator run; its length is remembered
			// per cue (and at EOF) so serialization stays byte-exact
			blanks := 0
			for j < n && strings.TrimSpace(lines[j]) == "" {
				blanks++
				j++
			}
			if j == n {
				file.trailingBlanks = blanks
			} else {
				file.Cues[len(file.Cues)-1].sepBlanks = blanks
			}
			i = j
			continue
		}

		if timingRe.MatchString(trimmed) {
			return nil, &ParseError{
				Path:    path,
				Line:    i + 1,
				Message: "timing line without preceding cue index: " + trimmed,
			}
		}

		if inHeader {
			file.Header = append(file.Header, lines[i])
			i++
			continue
		}

		if trimmed == "" {
			i++
			continue
		}

		return nil, &ParseError{
			Path:    path,
			Line:    i + 1,
			Message: "unexpected content outside cue block: " + trimmed,
		}
	}

	file.Language = DetectLanguage(file.Cues)

	return file, nil
}

// parseTiming converts a matched timing line into start and end durations.
// The caller guarantees the line matches timingRe.
func parseTiming(timingLine string) (time.Duration, time.Duration) {
	matches := timingRe.FindStringSubmatch(timingLine)

	parse := func(hours, minutes, seconds, milliseconds string) time.Duration {
		h, _ := strconv.Atoi(hours)
		m, _ := strconv.Atoi(minutes)
		s, _ := strconv.Atoi(seconds)
		ms, _ := strconv.Atoi(milliseconds)

		return time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second +
			time.Duration(ms)*time.Millisecond
	}

	return parse(matches[1], matches[2], matches[3], matches[4]),
		parse(matches[5], matches[6], matches[7], matches[8])
}

// DetectLanguage detects the dominant language of the cue text
func DetectLanguage(cues []Cue) language.Tag {
	if len(cues) == 0 {
		return language.Und
	}

	langMap := make(map[string]int)

	for _, cue := range cues {
		text := strings.Join(cue.Lines, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lang := whatlanggo.DetectLang(text).Iso6391()
		langMap[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range langMap {
		if count > topCount {
			topLang = lang
			topCount = count
		}
	}

	if topLang == "" {
		return language.Und
	}

	return language.All.Make(topLang)
}
