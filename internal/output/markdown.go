package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

// DefaultLargeFileMB is the size above which a file is listed as large.
const DefaultLargeFileMB = 10.0

// ReportTitle heads the Markdown report.
const ReportTitle = "Data Analysis Summary Report"

// MarkdownFormatter outputs the summary report. Sections always appear in
// the same order; the large-file and issue sections are left out when empty.
type MarkdownFormatter struct {
	// LargeFileMB overrides DefaultLargeFileMB when positive.
	LargeFileMB float64
}

func (f *MarkdownFormatter) Format(w io.Writer, summary *scanner.Summary) error {
	ew := &errWriter{w: w}

	fmt.Fprintf(ew, "# %s\n", ReportTitle)
	f.printDistribution(ew, summary)
	f.printLargeFiles(ew, summary.Files)
	f.printIssues(ew, summary.Files)
	return ew.err
}

func (f *MarkdownFormatter) threshold() float64 {
	if f.LargeFileMB > 0 {
		return f.LargeFileMB
	}
	return DefaultLargeFileMB
}

func (f *MarkdownFormatter) printDistribution(w io.Writer, summary *scanner.Summary) {
	fmt.Fprintf(w, "\n## File Type Distribution\n")
	for _, kind := range types.Kinds {
		fmt.Fprintf(w, "- %s: %d\n", kind.Label(), summary.Counts[kind])
	}
}

func (f *MarkdownFormatter) printLargeFiles(w io.Writer, files []scanner.Record) {
	limit := f.threshold()
	large := filterRecords(files, func(r scanner.Record) bool { return r.SizeMB > limit })
	if len(large) == 0 {
		return
	}
	fmt.Fprintf(w, "\n## Large Files (>%sMB)\n", strconv.FormatFloat(limit, 'f', -1, 64))
	for _, r := range large {
		fmt.Fprintf(w, "- %s: %.1fMB\n", filepath.Base(r.Path), r.SizeMB)
	}
}

func (f *MarkdownFormatter) printIssues(w io.Writer, files []scanner.Record) {
	withIssues := filterRecords(files, func(r scanner.Record) bool { return len(r.Issues) > 0 })
	if len(withIssues) == 0 {
		return
	}
	fmt.Fprintf(w, "\n## Files with Issues\n")
	for _, r := range withIssues {
		fmt.Fprintf(w, "- %s: %s\n", filepath.Base(r.Path), strings.Join(r.Issues, ", "))
	}
}

func filterRecords(files []scanner.Record, keep func(scanner.Record) bool) []scanner.Record {
	var result []scanner.Record
	for _, r := range files {
		if keep(r) {
			result = append(result, r)
		}
	}
	return result
}

// errWriter remembers the first write error so the report can be written
// with plain Fprintf calls.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
