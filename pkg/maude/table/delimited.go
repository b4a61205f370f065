package table

import (
	"encoding/csv"
	"os"

	"github.com/cognicore/maude/pkg/maude/report"
)

func readDelimited(path string, comma rune) ([]report.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return rowsToReports(rows)
}

func writeDelimited(path string, comma rune, records []report.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.Write(OutputColumns); err != nil {
		f.Close()
		return err
	}
	for _, rec := range records {
		if err := w.Write(textRow(rec)); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
