// Package artifact persists the analysis summary to disk: the JSON results
// document, the Markdown report and, optionally, an HTML rendering of it.
package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/garagon/datascout/internal/output"
	"github.com/garagon/datascout/internal/types"
)

// Default artifact file names, written inside the output directory.
const (
	ResultsFile = "data_analysis_results.json"
	ReportFile  = "data_analysis_summary.md"
	HTMLFile    = "data_analysis_summary.html"
)

// Writer writes the artifacts for one run.
type Writer struct {
	// Dir is created if missing. Empty means the working directory.
	Dir string
	// HTML also writes HTMLFile.
	HTML bool
	// LargeFileMB is passed through to the report formatters.
	LargeFileMB float64
}

// Write renders every artifact and returns the paths written, in order.
// Both documents are produced from the same summary.
func (w *Writer) Write(summary *types.Summary) ([]string, error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	md := output.MarkdownFormatter{LargeFileMB: w.LargeFileMB}
	outputs := []struct {
		name string
		f    output.Formatter
	}{
		{ResultsFile, &output.JSONFormatter{}},
		{ReportFile, &md},
	}
	if w.HTML {
		outputs = append(outputs, struct {
			name string
			f    output.Formatter
		}{HTMLFile, &output.HTMLFormatter{Markdown: md}})
	}

	var written []string
	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		var buf bytes.Buffer
		if err := o.f.Format(&buf, summary); err != nil {
			return written, fmt.Errorf("rendering %s: %w", o.name, err)
		}
		if err := writeFile(path, buf.Bytes()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Load reads a results document written by Write. Symlinks are rejected.
func Load(path string) (*types.Summary, error) {
	if err := rejectSymlink(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var summary types.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if summary.Counts == nil {
		summary.Counts = make(map[types.Kind]int)
	}
	return &summary, nil
}

func writeFile(path string, data []byte) error {
	if err := rejectSymlink(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func rejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("artifact is a symlink (rejected for security): %s", path)
	}
	return nil
}
