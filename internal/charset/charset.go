// Package charset guesses the text encoding of a file from a bounded prefix
// and opens decoding readers for the guessed encoding.
package charset

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

const (
	// Default is returned whenever detection cannot produce an answer.
	Default = "utf-8"

	// SampleSize is the maximum number of bytes inspected by Detect.
	SampleSize = 10000
)

// Detect returns the best-guess encoding of the file at path. It reads at
// most SampleSize bytes and never fails: empty files, unreadable files and
// inconclusive detection all yield Default.
func Detect(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return Default
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Default
	}
	return DetectBytes(buf[:n])
}

// DetectBytes runs detection over an in-memory sample.
func DetectBytes(data []byte) string {
	if len(data) == 0 {
		return Default
	}
	if isAllASCII(data) {
		return "ascii"
	}
	// The sample may end in the middle of a multi-byte sequence.
	if utf8.Valid(data[:len(data)-incompleteTrailingBytes(data)]) {
		return Default
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return Default
	}
	return strings.ToLower(result.Charset)
}

// NewReader decodes r from the named encoding into UTF-8. Malformed input is
// replaced with U+FFFD rather than reported, and a leading byte order mark is
// consumed. Unknown names decode as UTF-8.
func NewReader(r io.Reader, name string) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(Lookup(name).NewDecoder()))
}

// aliases covers names chardet reports that neither the WHATWG nor the IANA
// index spells the same way.
var aliases = map[string]encoding.Encoding{
	"gb-18030": simplifiedchinese.GB18030,
	"utf-32be": utf32.UTF32(utf32.BigEndian, utf32.UseBOM),
	"utf-32le": utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
}

// Unsupported lists detector results that have no decoder. Text in these
// encodings is read as UTF-8, with invalid bytes replaced.
var Unsupported = map[string]bool{
	"iso-2022-kr": true,
	"iso-2022-cn": true,
	"ibm424_rtl":  true,
	"ibm424_ltr":  true,
	"ibm420_rtl":  true,
	"ibm420_ltr":  true,
}

// Lookup resolves an encoding name, falling back to UTF-8.
func Lookup(name string) encoding.Encoding {
	name = strings.ToLower(strings.TrimSpace(name))
	if enc, ok := aliases[name]; ok {
		return enc
	}
	if Unsupported[name] {
		return unicode.UTF8
	}
	// The WHATWG index maps some legacy names to the replacement decoder,
	// which would turn the whole file into a single U+FFFD.
	if enc, err := htmlindex.Get(name); err == nil && enc != nil && enc != encoding.Replacement {
		return enc
	}
	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc
	}
	return unicode.UTF8
}

func isAllASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// incompleteTrailingBytes returns how many bytes at the end of data start a
// multi-byte sequence that was cut off.
func incompleteTrailingBytes(data []byte) int {
	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b >= 0xC0 {
			if i < runeLen(b) {
				return i
			}
			return 0
		}
		if b&0xC0 != 0x80 {
			return 0
		}
	}
	return 0
}

func runeLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}
