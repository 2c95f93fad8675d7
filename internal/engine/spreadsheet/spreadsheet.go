// Package spreadsheet lists the sheets of a workbook and samples the first
// rows of its first sheet.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/garagon/datascout/internal/scanner"
	"github.com/garagon/datascout/internal/types"
)

const sampleRows = 5

// issuePrefix labels every failure reported for a workbook.
const issuePrefix = "XLSX file reading error"

// Classifier implements the scanner.Classifier interface for workbooks.
type Classifier struct{}

// New creates a new spreadsheet Classifier.
func New() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Kind() types.Kind { return types.KindSpreadsheet }

// Extensions includes the legacy .xls format so those files are reported;
// the zip-based reader cannot open them and records an issue instead.
func (c *Classifier) Extensions() []string { return []string{".xlsx", ".xls"} }

// Classify opens the workbook without evaluating formulas and streams at
// most sampleRows rows of raw cell values from the first sheet.
func (c *Classifier) Classify(_ context.Context, target *scanner.Target) (rec types.Record) {
	rec = target.NewRecord(types.KindSpreadsheet)
	rec.Sheets = []string{}

	// excelize can panic on some malformed archives.
	defer func() {
		if r := recover(); r != nil {
			rec.Sheets = []string{}
			rec.SampleRows = [][]string{}
			rec.AddIssue(issuePrefix, fmt.Errorf("%v", r))
		}
	}()

	sheets, rows, err := readWorkbook(target.Path, sampleRows)
	if err != nil {
		rec.AddIssue(issuePrefix, err)
		return rec
	}
	rec.Sheets = sheets
	rec.SampleRows = rows
	return rec
}

func readWorkbook(path string, limit int) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	sample := [][]string{}
	if len(sheets) == 0 {
		return sheets, sample, nil
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	for len(sample) < limit && rows.Next() {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, nil, err
		}
		sample = append(sample, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, nil, err
	}
	return sheets, sample, nil
}
