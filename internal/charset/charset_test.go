package charset_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/garagon/datascout/internal/charset"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDetectEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)
	require.Equal(t, charset.Default, charset.Detect(path))
}

func TestDetectMissingFile(t *testing.T) {
	require.Equal(t, charset.Default, charset.Detect(filepath.Join(t.TempDir(), "nope.csv")))
}

func TestDetectDirectory(t *testing.T) {
	require.Equal(t, charset.Default, charset.Detect(t.TempDir()))
}

func TestDetectASCII(t *testing.T) {
	path := writeFile(t, "plain.csv", []byte("id,name\n1,alice\n"))
	require.Equal(t, "ascii", charset.Detect(path))
}

func TestDetectUTF8(t *testing.T) {
	path := writeFile(t, "utf8.txt", []byte("名前,都市\n山田,東京\nnaïve,café\n"))
	require.Equal(t, "utf-8", charset.Detect(path))
}

func TestDetectUTF8CutAtSampleBoundary(t *testing.T) {
	// 9999 ASCII bytes followed by a 3-byte rune: the sample ends mid-rune.
	data := []byte(strings.Repeat("a", charset.SampleSize-1) + "東京")
	path := writeFile(t, "boundary.txt", data)
	require.Equal(t, "utf-8", charset.Detect(path))
}

func TestDetectOnlyReadsPrefix(t *testing.T) {
	// Non-ASCII content beyond the sample window is never seen.
	data := []byte(strings.Repeat("x", charset.SampleSize) + "\xe9\xe9\xe9")
	path := writeFile(t, "prefix.txt", data)
	require.Equal(t, "ascii", charset.Detect(path))
}

func TestDetectLatin1(t *testing.T) {
	line := "caf\xe9 cr\xe8me br\xfbl\xe9e, na\xefve r\xe9sum\xe9, \xe0 la fa\xe7on de la maison\n"
	path := writeFile(t, "latin1.txt", []byte(strings.Repeat(line, 20)))

	name := charset.Detect(path)
	require.NotEqual(t, "utf-8", name)
	require.NotEqual(t, "ascii", name)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := io.ReadAll(charset.NewReader(f, name))
	require.NoError(t, err)
	require.Contains(t, string(decoded), "café crème")
}

func TestNewReaderReplacesInvalidBytes(t *testing.T) {
	r := charset.NewReader(strings.NewReader("ok\xffok"), "utf-8")
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "ok\uFFFDok", string(out))
}

func TestNewReaderStripsBOM(t *testing.T) {
	r := charset.NewReader(strings.NewReader("\xef\xbb\xbfid,name"), "utf-8")
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "id,name", string(out))
}

func TestLookupUnknownFallsBackToUTF8(t *testing.T) {
	r := charset.NewReader(strings.NewReader("héllo"), "no-such-charset")
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "héllo", string(out))
}

// detectorCharsets is every charset name the detector can report.
var detectorCharsets = []string{
	"UTF-8", "UTF-16BE", "UTF-16LE", "UTF-32BE", "UTF-32LE",
	"ISO-8859-1", "ISO-8859-2", "ISO-8859-5", "ISO-8859-6", "ISO-8859-7",
	"ISO-8859-8", "ISO-8859-8-I", "ISO-8859-9",
	"windows-1250", "windows-1251", "windows-1252", "windows-1253",
	"windows-1254", "windows-1255", "windows-1256", "KOI8-R",
	"Shift_JIS", "GB-18030", "EUC-JP", "EUC-KR", "Big5",
	"ISO-2022-JP", "ISO-2022-KR", "ISO-2022-CN",
	"IBM424_rtl", "IBM424_ltr", "IBM420_rtl", "IBM420_ltr",
}

func TestLookupResolvesEveryDetectorCharset(t *testing.T) {
	for _, name := range detectorCharsets {
		t.Run(name, func(t *testing.T) {
			enc := charset.Lookup(name)
			require.NotNil(t, enc)
			require.NotEqual(t, encoding.Replacement, enc)

			lower := strings.ToLower(name)
			if charset.Unsupported[lower] {
				require.Equal(t, unicode.UTF8, enc, "%s is read as UTF-8", name)
				return
			}
			if lower != "utf-8" {
				require.NotEqual(t, unicode.UTF8, enc, "%s fell back to UTF-8", name)
			}
			// Detect reports lowercase names; both spellings must agree.
			require.Equal(t, enc, charset.Lookup(lower))
		})
	}
}

func TestNewReaderDecodesGB18030(t *testing.T) {
	r := charset.NewReader(strings.NewReader("\xd6\xd0\xce\xc4,id"), "gb-18030")
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "中文,id", string(out))
}

func TestNewReaderDecodesUTF32LE(t *testing.T) {
	r := charset.NewReader(strings.NewReader("h\x00\x00\x00i\x00\x00\x00"), "utf-32le")
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "hi", string(out))
}
