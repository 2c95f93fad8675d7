package output

import (
	"encoding/json"
	"io"

	"github.com/garagon/datascout/internal/scanner"
)

// JSONFormatter outputs the full summary as indented JSON. Non-ASCII text
// and HTML-significant characters are written as-is.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, summary *scanner.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(summary)
}
