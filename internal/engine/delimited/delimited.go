// Package delimited infers the header, sample rows and approximate record
// count of comma-separated files from a short prefix plus one counting pass.
package delimited

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/garagon/datascout/internal/charset"
	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

const (
	headLines  = 10
	sampleRows = 5

	// fieldLimit is the longest field the reader accepts, in characters.
	fieldLimit = 131072
)

// Classifier implements the scanner.Classifier interface for CSV files.
type Classifier struct{}

// New creates a new delimited-text Classifier.
func New() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Kind() types.Kind { return types.KindDelimited }

func (c *Classifier) Extensions() []string { return []string{".csv"} }

// Classify reads the first lines of the target to recover the header and a
// handful of rows, then counts every line to estimate the record count.
func (c *Classifier) Classify(_ context.Context, target *scanner.Target) types.Record {
	rec := target.NewRecord(types.KindDelimited)
	rec.Encoding = charset.Detect(target.Path)
	rec.RecordCount = types.IntPtr(0)

	lines, err := target.HeadLines(rec.Encoding, headLines)
	if err != nil {
		rec.AddIssue("File reading error", err)
		return rec
	}
	if len(lines) == 0 {
		return rec
	}

	header, rows, err := parse(lines)
	rec.SampleRows = rows
	if err != nil {
		rec.AddIssue("CSV parsing error", err)
		rec.Fields = strings.Split(lines[0], ",")
	} else {
		rec.Fields = header
	}

	total, err := countLines(target, rec.Encoding)
	if err != nil {
		rec.AddIssue("File reading error", err)
		return rec
	}
	rec.RecordCount = types.IntPtr(max(total-1, 0))
	return rec
}

// parse splits the header and up to sampleRows rows out of lines. Quotes
// are read leniently, so a stray '"' inside an unquoted field is kept as
// text. Rows that parsed before an error are still returned.
func parse(lines []string) ([]string, [][]string, error) {
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows := [][]string{}
	header, err := readRecord(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []string{}, rows, nil
		}
		return nil, rows, err
	}

	for len(rows) < sampleRows {
		row, err := readRecord(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return header, rows, err
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// readRecord reads one record and enforces fieldLimit.
func readRecord(r *csv.Reader) ([]string, error) {
	record, err := r.Read()
	if err != nil {
		return nil, err
	}
	for _, field := range record {
		if utf8.RuneCountInString(field) > fieldLimit {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("record on line %d: field larger than field limit (%d)", line, fieldLimit)
		}
	}
	return record, nil
}

// countLines counts lines in a single forward pass over the decoded file.
func countLines(target *scanner.Target, encoding string) (int, error) {
	rc, err := target.Open(encoding)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()
	return scanner.CountLines(rc)
}
