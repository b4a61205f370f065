package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cognicore/maude/pkg/maude/internalerr"
	"github.com/cognicore/maude/pkg/maude/report"
)

const outputSheet = "Sheet1"

// readXLSX reads the first sheet of a workbook.
func readXLSX(path string) ([]report.Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, internalerr.ErrEmptyInput
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}
	return rowsToReports(rows)
}

// writeXLSX writes records to a new workbook. Score is numeric and
// comparison_result boolean; the other cells are text.
func writeXLSX(path string, records []report.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(outputSheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(OutputColumns))
	for i, c := range OutputColumns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, rec := range records {
		var score interface{}
		if rec.Scored {
			score = rec.Score
		}
		row := []interface{}{
			rec.Manufacturer,
			rec.ProductCode,
			rec.BrandName,
			rec.EventText,
			score,
			FormatCauses(rec.Causes),
			rec.RootCause,
			rec.DictionaryHit,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
