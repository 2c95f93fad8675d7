// Package plaintext samples free-form text files and guesses whether their
// first line is delimited. The guess is a heuristic: logs, prose and
// credential lists all pass through here and some of them will be
// misread as delimited data.
package plaintext

import (
	"context"
	"fmt"
	"strings"

	"github.com/garagon/datascout/internal/charset"
	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

const (
	headLines   = 20
	sampleLines = 5
)

// candidates are tried in priority order against the first line.
var candidates = []string{",", "\t", "|", ";", " "}

// Classifier implements the scanner.Classifier interface for text files.
type Classifier struct{}

// New creates a new unstructured-text Classifier.
func New() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Kind() types.Kind { return types.KindUnstructured }

func (c *Classifier) Extensions() []string { return []string{".txt"} }

// Classify samples the first lines of the target and guesses a delimiter.
func (c *Classifier) Classify(_ context.Context, target *scanner.Target) types.Record {
	rec := target.NewRecord(types.KindUnstructured)
	rec.Encoding = charset.Detect(target.Path)
	rec.LineCount = types.IntPtr(0)

	lines, err := target.HeadLines(rec.Encoding, headLines)
	if err != nil {
		rec.AddIssue("TXT file reading error", err)
		return rec
	}

	rec.LineCount = types.IntPtr(len(lines))
	rec.SampleLines = lines[:min(len(lines), sampleLines)]
	if len(lines) > 0 {
		rec.Delimiter, rec.PotentialFields = GuessDelimiter(lines[0])
	}
	return rec
}

// GuessDelimiter returns the first candidate that splits line into more than
// one part, with a synthetic field name per part. It returns "" and nil when
// no candidate applies.
func GuessDelimiter(line string) (string, []string) {
	for _, d := range candidates {
		parts := strings.Split(line, d)
		if len(parts) < 2 {
			continue
		}
		fields := make([]string, len(parts))
		for i := range parts {
			fields[i] = fmt.Sprintf("field_%d", i+1)
		}
		return d, fields
	}
	return "", nil
}
