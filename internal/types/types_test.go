package types_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/garagon/datascout/internal/types"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind types.Kind
		want string
	}{
		{types.KindDelimited, "delimited"},
		{types.KindSQL, "sql"},
		{types.KindUnstructured, "unstructured"},
		{types.KindSpreadsheet, "spreadsheet"},
		{types.Kind(42), "unknown"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.kind.String())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  types.Kind
		err   bool
	}{
		{"delimited", types.KindDelimited, false},
		{"SQL", types.KindSQL, false},
		{"  Unstructured ", types.KindUnstructured, false},
		{"spreadsheet", types.KindSpreadsheet, false},
		{"csv", 0, true},
	}
	for _, tt := range tests {
		got, err := types.ParseKind(tt.input)
		if tt.err {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		}
	}
}

func TestNewRecordInitializesSlices(t *testing.T) {
	r := types.NewRecord("a.csv", types.KindDelimited, 3*1024*1024)
	require.InDelta(t, 3.0, r.SizeMB, 1e-9)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"fields":[]`)
	require.Contains(t, out, `"sample_rows":[]`)
	require.Contains(t, out, `"issues":[]`)
	require.Contains(t, out, `"kind":"delimited"`)
	require.NotContains(t, out, "record_count")
	require.NotContains(t, out, "encoding")
}

func TestRecordAddIssue(t *testing.T) {
	r := types.NewRecord("a.sql", types.KindSQL, 0)
	r.AddIssue("SQL file reading error", errors.New("permission denied"))
	require.Equal(t, []string{"SQL file reading error: permission denied"}, r.Issues)
}

func TestSummaryAdd(t *testing.T) {
	s := types.NewSummary("/data")
	require.NotEmpty(t, s.RunID)
	require.Len(t, s.Counts, len(types.Kinds))

	s.Add(types.NewRecord("a.csv", types.KindDelimited, 0))
	s.Add(types.NewRecord("b.csv", types.KindDelimited, 0))
	s.Add(types.NewRecord("c.xlsx", types.KindSpreadsheet, 0))

	require.Equal(t, 3, s.Total)
	require.Equal(t, 2, s.Counts[types.KindDelimited])
	require.Equal(t, 1, s.Counts[types.KindSpreadsheet])
	require.Equal(t, 0, s.Counts[types.KindSQL])
	require.Len(t, s.Files, 3)
}

func TestSummaryJSONRoundTrip(t *testing.T) {
	s := types.NewSummary("/data")
	rec := types.NewRecord("/data/people.csv", types.KindDelimited, 2048)
	rec.Fields = []string{"id", "名前"}
	rec.RecordCount = types.IntPtr(5)
	s.Add(rec)
	s.Add(types.NewRecord("/data/dump.sql", types.KindSQL, 10))
	s.Duration = 1500 * time.Millisecond

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(data), `"duration_ms":1500`)
	require.Contains(t, string(data), `"delimited":1`)

	var parsed types.Summary
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Equal(t, s.Total, parsed.Total)
	require.Equal(t, s.Counts, parsed.Counts)
	require.Equal(t, s.RunID, parsed.RunID)
	require.True(t, s.GeneratedAt.Equal(parsed.GeneratedAt))
	require.Len(t, parsed.Files, 2)
	for i := range s.Files {
		require.Equal(t, s.Files[i].Path, parsed.Files[i].Path)
		require.Equal(t, s.Files[i].Kind, parsed.Files[i].Kind)
		require.Equal(t, s.Files[i].Fields, parsed.Files[i].Fields)
	}
	require.Equal(t, 5, *parsed.Files[0].RecordCount)
	require.Equal(t, 1500*time.Millisecond, parsed.Duration)
}
