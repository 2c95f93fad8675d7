package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	green  = "\033[32m"
	cyan   = "\033[36m"
)

const (
	barWidth    = 40
	lineWidth   = 72
	nameWidth   = 32
	detailWidth = 60
)

// TerminalFormatter prints a compact per-file overview for humans.
type TerminalFormatter struct {
	NoColor bool
	// LargeFileMB overrides DefaultLargeFileMB when positive.
	LargeFileMB float64
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, summary *scanner.Summary) error {
	if os.Getenv("NO_COLOR") != "" {
		f.NoColor = true
	}

	f.printHeader(w, summary)
	if summary.Total == 0 {
		fmt.Fprintf(w, "\n  %s No data files found.\n", f.color(cyan, "✔"))
	} else {
		f.printDashboard(w, summary.Counts)
		f.printFiles(w, summary.Files)
	}
	f.printFooter(w, summary)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	remaining := max(lineWidth-utf8.RuneCountInString(prefix), 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, summary *scanner.Summary) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "DATASCOUT RESULTS"))
	if summary.Root != "" {
		fmt.Fprintf(w, "  Target: %s\n", summary.Root)
	}
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printDashboard(w io.Writer, counts map[scanner.Kind]int) {
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}

	fmt.Fprintln(w)
	for _, kind := range types.Kinds {
		c := counts[kind]
		label := fmt.Sprintf("  %-13s", kind.String())
		fmt.Fprintf(w, "%s %s %4d\n", f.color(bold, label), f.renderBar(c, peak, barWidth, kind), c)
	}
}

func (f *TerminalFormatter) printFiles(w io.Writer, files []scanner.Record) {
	limit := f.LargeFileMB
	if limit <= 0 {
		limit = DefaultLargeFileMB
	}

	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, f.sectionHeader("FILES")))
	for _, r := range files {
		name := truncate(filepath.Base(r.Path), nameWidth)
		size := humanize.IBytes(uint64(r.SizeMB * 1024 * 1024))
		if r.SizeMB > limit {
			size = f.color(yellow, size)
		}
		fmt.Fprintf(w, "  %s %-*s %s  %s\n",
			f.kindIcon(r.Kind), nameWidth, name, size, f.color(dim, truncate(describe(r), detailWidth)))
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "      %s %s\n", f.color(dim, "│"), f.color(red, truncate(issue, detailWidth)))
		}
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, summary *scanner.Summary) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))

	withIssues := 0
	for _, r := range summary.Files {
		if len(r.Issues) > 0 {
			withIssues++
		}
	}
	parts := []string{
		fmt.Sprintf("%d data files", summary.Total),
		fmt.Sprintf("%d with issues", withIssues),
	}
	if summary.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.2fs", summary.Duration.Seconds()))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(parts, " · "))
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

// describe summarizes the schema details that matter for each kind.
func describe(r scanner.Record) string {
	switch r.Kind {
	case types.KindDelimited:
		rows := 0
		if r.RecordCount != nil {
			rows = *r.RecordCount
		}
		return fmt.Sprintf("%d fields, ~%s rows, %s", len(r.Fields), humanize.Comma(int64(rows)), r.Encoding)
	case types.KindSQL:
		return fmt.Sprintf("%d tables, %d sample queries", len(r.Tables), len(r.SampleQueries))
	case types.KindUnstructured:
		if r.Delimiter != "" {
			return fmt.Sprintf("delimiter %q, %d fields", r.Delimiter, len(r.PotentialFields))
		}
		return "no delimiter detected"
	case types.KindSpreadsheet:
		return fmt.Sprintf("%d sheets", len(r.Sheets))
	default:
		return ""
	}
}

func (f *TerminalFormatter) kindIcon(kind scanner.Kind) string {
	switch kind {
	case types.KindDelimited:
		return f.color(green, "▦")
	case types.KindSQL:
		return f.color(blue, "◆")
	case types.KindUnstructured:
		return f.color(cyan, "▤")
	case types.KindSpreadsheet:
		return f.color(yellow, "▣")
	default:
		return "?"
	}
}

func (f *TerminalFormatter) kindColor(kind scanner.Kind) string {
	switch kind {
	case types.KindDelimited:
		return green
	case types.KindSQL:
		return blue
	case types.KindUnstructured:
		return cyan
	case types.KindSpreadsheet:
		return yellow
	default:
		return ""
	}
}

func (f *TerminalFormatter) renderBar(count, peak, width int, kind scanner.Kind) string {
	if peak == 0 {
		return f.color(dim, strings.Repeat("░", width))
	}
	filled := count * width / peak
	if filled == 0 && count > 0 {
		filled = 1
	}
	// Always keep at least 1 empty block so bar boundary is visible
	if filled >= width {
		filled = width - 1
	}
	empty := width - filled

	return f.color(f.kindColor(kind), strings.Repeat("█", filled)) + f.color(dim, strings.Repeat("░", empty))
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
