// Package table reads MAUDE report exports and writes annotated results as
// tabular files.
package table

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cognicore/maude/pkg/maude/internalerr"
	"github.com/cognicore/maude/pkg/maude/report"
)

// Input column names.
const (
	ColManufacturer = "Manufacturer"
	ColProductCode  = "Product Code"
	ColBrandName    = "Brand Name"
	ColEventText    = "Event Text"
)

// Output-only column names.
const (
	ColScore      = "Score"
	ColCauses     = "Analytes listed in Event"
	ColRootCause  = "root cause"
	ColComparison = "comparison_result"
)

// OutputColumns is the header written by every writer.
var OutputColumns = []string{
	ColManufacturer, ColProductCode, ColBrandName, ColEventText,
	ColScore, ColCauses, ColRootCause, ColComparison,
}

var inputColumns = []string{ColManufacturer, ColProductCode, ColBrandName, ColEventText}

// ReadReports loads reports from the first sheet or table of the file at
// path. The format is chosen by extension: .xlsx/.xlsm, .csv, .tsv, .jsonl,
// .html/.htm. Reports come back normalized, in file order.
func ReadReports(path string) ([]report.Report, error) {
	var (
		reports []report.Report
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		reports, err = readXLSX(path)
	case ".csv":
		reports, err = readDelimited(path, ',')
	case ".tsv":
		reports, err = readDelimited(path, '\t')
	case ".jsonl":
		reports, err = readJSONL(path)
	case ".html", ".htm":
		reports, err = readHTML(path)
	default:
		return nil, fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return reports, nil
}

// WriteRecords writes annotated records to path in insertion order. The
// format is chosen by extension: .xlsx, .csv, .tsv, .jsonl.
func WriteRecords(path string, records []report.Record) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		err = writeXLSX(path, records)
	case ".csv":
		err = writeDelimited(path, ',', records)
	case ".tsv":
		err = writeDelimited(path, '\t', records)
	case ".jsonl":
		err = writeJSONL(path, records)
	default:
		return fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// columnIndex maps each input column to its position in a header row.
type columnIndex [4]int

// resolveColumns locates the input columns in header, ignoring case and
// surrounding whitespace (MAUDE exports spell one of them " Brand Name").
func resolveColumns(header []string) (columnIndex, error) {
	var idx columnIndex
	for c, want := range inputColumns {
		idx[c] = -1
		for i, cell := range header {
			if strings.EqualFold(cleanCell(cell), want) {
				idx[c] = i
				break
			}
		}
		if idx[c] < 0 {
			return idx, fmt.Errorf("%w: %q", internalerr.ErrMissingColumn, want)
		}
	}
	return idx, nil
}

// reportFromRow builds a normalized Report. Cells past the end of a short
// row read as empty.
func reportFromRow(row []string, idx columnIndex) report.Report {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return report.Normalize(report.Report{
		Manufacturer: cell(idx[0]),
		ProductCode:  cell(idx[1]),
		BrandName:    cell(idx[2]),
		EventText:    cell(idx[3]),
	})
}

// rowsToReports treats rows[0] as the header.
func rowsToReports(rows [][]string) ([]report.Report, error) {
	if len(rows) == 0 {
		return nil, internalerr.ErrEmptyInput
	}
	idx, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}
	reports := make([]report.Report, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		reports = append(reports, reportFromRow(row, idx))
	}
	return reports, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

// FormatCauses renders cause labels as a JSON array; no labels is "[]".
func FormatCauses(causes []string) string {
	if len(causes) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(causes)
	return string(data)
}

// FormatScore renders a similarity score, or "" for an unscored record.
func FormatScore(rec report.Record) string {
	if !rec.Scored {
		return ""
	}
	return strconv.FormatFloat(rec.Score, 'f', -1, 64)
}

// textRow renders a record as strings in OutputColumns order.
func textRow(rec report.Record) []string {
	return []string{
		rec.Manufacturer,
		rec.ProductCode,
		rec.BrandName,
		rec.EventText,
		FormatScore(rec),
		FormatCauses(rec.Causes),
		rec.RootCause,
		strconv.FormatBool(rec.DictionaryHit),
	}
}
