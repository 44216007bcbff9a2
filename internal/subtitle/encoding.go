package subtitle

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// minDetectConfidence is the lowest chardet confidence we accept before
// giving up instead of returning possibly corrupted text.
const minDetectConfidence = 30

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charsetAliases maps chardet names that htmlindex does not know to their
// canonical counterparts.
var charsetAliases = map[string]string{
	"GB-18030":    "gb18030",
	"ISO-2022-JP": "iso-2022-jp",
	"ISO-2022-KR": "euc-kr",
	"UTF-16LE":    "utf-16le",
	"UTF-16BE":    "utf-16be",
}

// DecodeText decodes raw subtitle bytes to a UTF-8 string. UTF-8 input is
// passed through unchanged (minus a BOM); anything else goes through
// statistical charset detection. A *DecodeError is returned when no
// encoding can decode the content, never silently substituted text.
func DecodeText(data []byte, path string) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", &DecodeError{Path: path, Cause: err}
	}
	if result.Confidence < minDetectConfidence {
		return "", &DecodeError{
			Path:       path,
			Charset:    result.Charset,
			Confidence: result.Confidence,
			Cause:      errDetectionConfidence,
		}
	}

	enc, err := resolveEncoding(result.Charset)
	if err != nil {
		return "", &DecodeError{
			Path:       path,
			Charset:    result.Charset,
			Confidence: result.Confidence,
			Cause:      err,
		}
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(decoded) {
		return "", &DecodeError{
			Path:       path,
			Charset:    result.Charset,
			Confidence: result.Confidence,
			Cause:      err,
		}
	}

	decoded = bytes.TrimPrefix(decoded, utf8BOM)
	return string(decoded), nil
}

// resolveEncoding maps a detected charset name to a decoder
func resolveEncoding(name string) (encoding.Encoding, error) {
	if alias, ok := charsetAliases[strings.ToUpper(name)]; ok {
		name = alias
	}
	return htmlindex.Get(name)
}

var errDetectionConfidence = &confidenceError{}

type confidenceError struct{}

func (*confidenceError) Error() string {
	return "encoding detection confidence too low"
}
