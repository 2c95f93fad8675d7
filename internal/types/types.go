// Package types defines shared data structures (Kind, Record, Summary)
// used across scanner, engine, and output packages to prevent import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies which classifier produced a record.
type Kind int

const (
	KindDelimited Kind = iota
	KindSQL
	KindUnstructured
	KindSpreadsheet
)

// Kinds lists every kind in report order.
var Kinds = []Kind{KindDelimited, KindSQL, KindUnstructured, KindSpreadsheet}

func (k Kind) String() string {
	switch k {
	case KindDelimited:
		return "delimited"
	case KindSQL:
		return "sql"
	case KindUnstructured:
		return "unstructured"
	case KindSpreadsheet:
		return "spreadsheet"
	default:
		return "unknown"
	}
}

// Label is the human-readable name used in reports.
func (k Kind) Label() string {
	switch k {
	case KindDelimited:
		return "Delimited Files"
	case KindSQL:
		return "SQL Files"
	case KindUnstructured:
		return "Unstructured Text Files"
	case KindSpreadsheet:
		return "Spreadsheet Files"
	default:
		return "Unknown Files"
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "delimited":
		return KindDelimited, nil
	case "sql":
		return KindSQL, nil
	case "unstructured":
		return KindUnstructured, nil
	case "spreadsheet":
		return KindSpreadsheet, nil
	default:
		return 0, fmt.Errorf("unknown kind: %q", s)
	}
}

// MarshalText lets Kind serialize as a string, including as a map key.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Record is the analysis of a single file. Classifiers never fail: anything
// that goes wrong while reading is appended to Issues instead.
type Record struct {
	Path        string     `json:"path"`
	Kind        Kind       `json:"kind"`
	SizeMB      float64    `json:"size_mb"`
	Encoding    string     `json:"encoding,omitempty"`
	Fields      []string   `json:"fields"`
	SampleRows  [][]string `json:"sample_rows"`
	RecordCount *int       `json:"record_count,omitempty"`
	Issues      []string   `json:"issues"`

	// SQL dumps.
	Tables        []string `json:"tables,omitempty"`
	SampleQueries []string `json:"sample_queries,omitempty"`

	// Unstructured text.
	LineCount       *int     `json:"line_count,omitempty"`
	SampleLines     []string `json:"sample_lines,omitempty"`
	Delimiter       string   `json:"delimiter,omitempty"`
	PotentialFields []string `json:"potential_fields,omitempty"`

	// Spreadsheets.
	Sheets []string `json:"sheets,omitempty"`
}

// NewRecord returns a record with the slices every kind reports initialized,
// so they serialize as [] rather than null.
func NewRecord(path string, kind Kind, size int64) Record {
	return Record{
		Path:       path,
		Kind:       kind,
		SizeMB:     float64(size) / (1024 * 1024),
		Fields:     []string{},
		SampleRows: [][]string{},
		Issues:     []string{},
	}
}

// AddIssue records a diagnostic prefixed with a short context label.
func (r *Record) AddIssue(prefix string, err error) {
	r.Issues = append(r.Issues, fmt.Sprintf("%s: %v", prefix, err))
}

// Summary holds the complete results of a workspace scan.
type Summary struct {
	RunID       string        `json:"run_id"`
	Root        string        `json:"root"`
	GeneratedAt time.Time     `json:"generated_at"`
	Total       int           `json:"total_files"`
	Counts      map[Kind]int  `json:"counts"`
	Files       []Record      `json:"files"`
	Duration    time.Duration `json:"-"`
}

// NewSummary returns an empty summary with every kind counter at zero.
func NewSummary(root string) *Summary {
	counts := make(map[Kind]int, len(Kinds))
	for _, k := range Kinds {
		counts[k] = 0
	}
	return &Summary{
		RunID:       uuid.NewString(),
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Counts:      counts,
		Files:       []Record{},
	}
}

// Add appends a record and bumps its kind counter and the total together.
func (s *Summary) Add(r Record) {
	s.Files = append(s.Files, r)
	s.Counts[r.Kind]++
	s.Total++
}

// MarshalJSON implements custom JSON marshaling so Duration serializes as milliseconds.
func (s Summary) MarshalJSON() ([]byte, error) {
	type Alias Summary
	return json.Marshal(struct {
		Alias
		DurationMS int64 `json:"duration_ms"`
	}{
		Alias:      Alias(s),
		DurationMS: s.Duration.Milliseconds(),
	})
}

// UnmarshalJSON restores Duration from duration_ms.
func (s *Summary) UnmarshalJSON(data []byte) error {
	type Alias Summary
	aux := struct {
		*Alias
		DurationMS int64 `json:"duration_ms"`
	}{Alias: (*Alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Duration = time.Duration(aux.DurationMS) * time.Millisecond
	return nil
}

// IntPtr is a small helper for the optional integer fields on Record.
func IntPtr(n int) *int {
	return &n
}
