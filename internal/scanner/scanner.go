package scanner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/garagon/datascout/internal/types"
)

// Scanner walks one directory level and classifies each recognized file.
// Files are processed strictly one at a time, in directory order.
type Scanner struct {
	classifiers    map[string]Classifier
	ignorePatterns []string
	logger         *zap.Logger
	progress       io.Writer
}

// New creates a Scanner. A nil logger discards all log output.
func New(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		classifiers: make(map[string]Classifier),
		logger:      logger,
	}
}

// RegisterClassifier routes every extension the classifier claims to it.
// A later registration for the same extension replaces the earlier one.
func (s *Scanner) RegisterClassifier(c Classifier) {
	for _, ext := range c.Extensions() {
		s.classifiers[strings.ToLower(ext)] = c
	}
}

// SetIgnorePatterns sets glob patterns matched against file base names.
func (s *Scanner) SetIgnorePatterns(patterns []string) {
	s.ignorePatterns = patterns
}

// SetProgress makes the scanner print one line per analyzed file to w.
func (s *Scanner) SetProgress(w io.Writer) {
	s.progress = w
}

// Scan classifies the direct children of root. Subdirectories are not
// descended into. If root is itself a file, only that file is classified.
//
// The context is checked between files; a file that has started is always
// finished.
func (s *Scanner) Scan(ctx context.Context, root string) (*Summary, error) {
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	summary := types.NewSummary(root)
	if !info.IsDir() {
		s.Dispatch(ctx, root, summary)
		summary.Duration = time.Since(start)
		return summary, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			s.logger.Debug("skipping directory", zap.String("path", path))
			continue
		}
		s.Dispatch(ctx, path, summary)
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// Dispatch classifies a single file and adds the record to summary.
// Unrecognized extensions, ignored names and anything that is not a regular
// file are skipped silently; ok reports whether a record was produced.
func (s *Scanner) Dispatch(ctx context.Context, path string, summary *Summary) (rec Record, ok bool) {
	c, found := s.ClassifierFor(path)
	if !found {
		s.logger.Debug("skipping unrecognized file", zap.String("path", path))
		return Record{}, false
	}

	name := filepath.Base(path)
	if s.isIgnored(name) {
		s.logger.Debug("skipping ignored file", zap.String("path", path))
		return Record{}, false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		s.logger.Debug("skipping non-regular file", zap.String("path", path))
		return Record{}, false
	}

	if s.progress != nil {
		fmt.Fprintf(s.progress, "Analyzing: %s\n", name)
	}
	s.logger.Debug("analyzing file",
		zap.String("path", path),
		zap.Stringer("kind", c.Kind()),
		zap.Int64("size", info.Size()))

	target := &Target{Path: path, Name: name, Size: info.Size()}
	rec = c.Classify(ctx, target)
	rec.Kind = c.Kind()

	if len(rec.Issues) > 0 {
		s.logger.Warn("file analyzed with issues",
			zap.String("path", path),
			zap.Strings("issues", rec.Issues))
	}

	summary.Add(rec)
	return rec, true
}

// ClassifierFor returns the classifier registered for the file's extension.
func (s *Scanner) ClassifierFor(path string) (Classifier, bool) {
	c, ok := s.classifiers[strings.ToLower(filepath.Ext(path))]
	return c, ok
}

func (s *Scanner) isIgnored(name string) bool {
	for _, pattern := range s.ignorePatterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
