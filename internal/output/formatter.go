// Package output renders workspace summaries as JSON, Markdown, HTML and
// ANSI terminal text.
package output

import (
	"io"

	"github.com/garagon/datascout/internal/scanner"
)

// ToolVersion is the datascout version stamped into rendered reports.
var ToolVersion = "dev"

// Formatter is the interface for outputting scan summaries.
type Formatter interface {
	Format(w io.Writer, summary *scanner.Summary) error
}
