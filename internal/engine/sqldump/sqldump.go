// Package sqldump extracts table names and sample statements from SQL
// scripts by pattern matching over a bounded prefix. No SQL is parsed or
// executed; dialect differences and broken syntax simply fail to match.
package sqldump

import (
	"context"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/garagon/datascout/internal/charset"
	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

const (
	prefixBytes   = 10000
	sampleQueries = 5
)

var (
	// Table names may use any Unicode letter or digit, not just ASCII.
	tablePattern = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[`\"]?([\\p{L}\\p{N}_]+)[`\"]?\\s*\\(")
	queryPattern = regexp.MustCompile(`(?is)(SELECT\s+.*?;|INSERT\s+.*?;|UPDATE\s+.*?;|DELETE\s+.*?;)`)
)

// Classifier implements the scanner.Classifier interface for SQL files.
type Classifier struct{}

// New creates a new SQL-dump Classifier.
func New() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Kind() types.Kind { return types.KindSQL }

func (c *Classifier) Extensions() []string { return []string{".sql"} }

// Classify reads the first prefixBytes of the target and collects the
// tables it creates and the first few DML statements.
func (c *Classifier) Classify(_ context.Context, target *scanner.Target) types.Record {
	rec := target.NewRecord(types.KindSQL)
	rec.Encoding = charset.Detect(target.Path)
	rec.Tables = []string{}
	rec.SampleQueries = []string{}

	content, err := readPrefix(target, rec.Encoding)
	if err != nil {
		rec.AddIssue("SQL file reading error", err)
		return rec
	}

	rec.Tables = TableNames(content)
	rec.SampleQueries = Statements(content, sampleQueries)
	return rec
}

// TableNames returns the distinct names of tables created in content,
// sorted so output is stable.
func TableNames(content string) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, m := range tablePattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Statements returns up to limit SELECT/INSERT/UPDATE/DELETE statements,
// each running to the next semicolon, verbatim.
func Statements(content string, limit int) []string {
	matches := queryPattern.FindAllString(content, limit)
	if matches == nil {
		return []string{}
	}
	return matches
}

// readPrefix decodes at most prefixBytes raw bytes from the start of the file.
func readPrefix(target *scanner.Target, encoding string) (string, error) {
	f, err := os.Open(target.Path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(charset.NewReader(io.LimitReader(f, prefixBytes), encoding))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
