package output

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/garagon/datascout/internal/scanner"
)

// HTMLFormatter renders the Markdown report as a standalone HTML page.
type HTMLFormatter struct {
	Markdown MarkdownFormatter
}

func (f *HTMLFormatter) Format(w io.Writer, summary *scanner.Summary) error {
	var src bytes.Buffer
	if err := f.Markdown.Format(&src, summary); err != nil {
		return err
	}

	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	_, err := fmt.Fprintf(w, htmlPage, html.EscapeString(ReportTitle), body.String(), html.EscapeString(ToolVersion))
	return err
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s<footer><small>datascout %s</small></footer>
</body>
</html>
`
