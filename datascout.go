// Package datascout provides a public API for profiling the data files in a
// workspace: delimited files, SQL dumps, plain text and spreadsheets.
//
// This is the library entry point. For the CLI tool, see cmd/datascout/.
package datascout

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/garagon/datascout/internal/engine/delimited"
	"github.com/garagon/datascout/internal/engine/plaintext"
	"github.com/garagon/datascout/internal/engine/spreadsheet"
	"github.com/garagon/datascout/internal/engine/sqldump"
	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	Kind    = types.Kind
	Record  = types.Record
	Summary = types.Summary
)

const (
	KindDelimited    = types.KindDelimited
	KindSQL          = types.KindSQL
	KindUnstructured = types.KindUnstructured
	KindSpreadsheet  = types.KindSpreadsheet
)

// ErrUnsupported is returned by AnalyzeFile for files no classifier claims.
var ErrUnsupported = errors.New("unsupported file type")

// Analyze classifies the data files directly inside dir. Subdirectories are
// not visited. If dir names a file, only that file is analyzed.
func Analyze(ctx context.Context, dir string, opts ...Option) (*Summary, error) {
	s := buildScanner(applyOpts(opts))
	return s.Scan(ctx, dir)
}

// AnalyzeFile classifies a single file. Read problems are reported in the
// record's Issues; an error means the file was not analyzed at all.
func AnalyzeFile(ctx context.Context, path string, opts ...Option) (Record, error) {
	s := buildScanner(applyOpts(opts))
	if _, ok := s.ClassifierFor(path); !ok {
		return Record{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Record{}, err
	}
	if !info.Mode().IsRegular() {
		return Record{}, fmt.Errorf("%s: not a regular file", path)
	}
	rec, ok := s.Dispatch(ctx, path, types.NewSummary(path))
	if !ok {
		return Record{}, fmt.Errorf("%s: skipped", path)
	}
	return rec, nil
}

// SupportedExtensions returns every extension a classifier is registered
// for, lowercased and sorted.
func SupportedExtensions() []string {
	var exts []string
	for _, c := range classifiers() {
		exts = append(exts, c.Extensions()...)
	}
	sort.Strings(exts)
	return exts
}

// --- internal helpers ---

func applyOpts(opts []Option) *analyzeConfig {
	cfg := &analyzeConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

func classifiers() []scanner.Classifier {
	return []scanner.Classifier{
		delimited.New(),
		sqldump.New(),
		plaintext.New(),
		spreadsheet.New(),
	}
}

// buildScanner creates a fully wired Scanner with all standard classifiers.
func buildScanner(cfg *analyzeConfig) *scanner.Scanner {
	s := scanner.New(cfg.logger)
	if len(cfg.ignorePatterns) > 0 {
		s.SetIgnorePatterns(cfg.ignorePatterns)
	}
	if cfg.progress != nil {
		s.SetProgress(cfg.progress)
	}
	for _, c := range classifiers() {
		s.RegisterClassifier(c)
	}
	return s
}
