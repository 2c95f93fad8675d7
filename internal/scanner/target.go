package scanner

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/garagon/datascout/internal/charset"
	"github.com/garagon/datascout/internal/types"
)

// Target represents a regular file selected for classification.
type Target struct {
	Path string
	Name string
	Size int64
}

// NewRecord starts a record for this target.
func (t *Target) NewRecord(kind Kind) Record {
	return types.NewRecord(t.Path, kind, t.Size)
}

// Open opens the file decoded from the given encoding into UTF-8.
// Invalid byte sequences are replaced, never reported.
func (t *Target) Open(encoding string) (io.ReadCloser, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, err
	}
	return &decodedFile{Reader: charset.NewReader(f, encoding), file: f}, nil
}

type decodedFile struct {
	io.Reader
	file *os.File
}

func (d *decodedFile) Close() error {
	return d.file.Close()
}

// MaxLineBytes bounds a single line read by HeadLines. A longer line is
// reported as an error instead of being buffered whole.
const MaxLineBytes = 1 << 20

// HeadLines returns at most n lines from the start of the file, decoded and
// trimmed of surrounding whitespace. "\n", "\r\n" and a lone "\r" all end a
// line. Reading stops once n lines are collected.
func (t *Target) HeadLines(encoding string, n int) ([]string, error) {
	rc, err := t.Open(encoding)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return readLines(rc, n)
}

func readLines(r io.Reader, n int) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	sc.Split(ScanLines)

	var lines []string
	for len(lines) < n && sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return lines, err
	}
	return lines, nil
}

// ScanLines is a bufio.SplitFunc like bufio.ScanLines that also accepts a
// lone carriage return as a line terminator.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// Need the next byte to tell "\r" from "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// CountLines counts the lines read from r using the same terminators as
// HeadLines. A final line without a terminator still counts. Memory use is
// constant regardless of line length.
func CountLines(r io.Reader) (int, error) {
	buf := make([]byte, 32*1024)
	count := 0
	prevCR := false
	unterminated := false
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case '\n':
				if !prevCR {
					count++
				}
			case '\r':
				count++
			}
			prevCR = b == '\r'
		}
		if n > 0 {
			last := buf[n-1]
			unterminated = last != '\n' && last != '\r'
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, err
		}
	}
	if unterminated {
		count++
	}
	return count, nil
}
