package table

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/cognicore/maude/pkg/maude/internalerr"
	"github.com/cognicore/maude/pkg/maude/report"
)

// readJSONL loads one report per JSON object line. Keys are matched like
// header cells; values of any JSON type are coerced to strings and null
// reads as empty. Keys are resolved in sorted order, so when two keys clean
// to the same column the one sorting first wins. A malformed line or an
// object missing a column fails the whole read.
func readJSONL(path string) ([]report.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reports []report.Report
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, internalerr.ErrInvalidInput, err)
		}

		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = cast.ToString(obj[k])
		}
		idx, err := resolveColumns(keys)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		reports = append(reports, reportFromRow(values, idx))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if line == 0 {
		return nil, internalerr.ErrEmptyInput
	}
	return reports, nil
}

// jsonRecord is the JSONL output shape.
type jsonRecord struct {
	Manufacturer     string   `json:"Manufacturer"`
	ProductCode      string   `json:"Product Code"`
	BrandName        string   `json:"Brand Name"`
	EventText        string   `json:"Event Text"`
	Score            *float64 `json:"Score"`
	Causes           []string `json:"Analytes listed in Event"`
	RootCause        string   `json:"root cause"`
	ComparisonResult bool     `json:"comparison_result"`
}

func writeJSONL(path string, records []report.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		out := jsonRecord{
			Manufacturer:     rec.Manufacturer,
			ProductCode:      rec.ProductCode,
			BrandName:        rec.BrandName,
			EventText:        rec.EventText,
			Causes:           rec.Causes,
			RootCause:        rec.RootCause,
			ComparisonResult: rec.DictionaryHit,
		}
		if out.Causes == nil {
			out.Causes = []string{}
		}
		if rec.Scored {
			score := rec.Score
			out.Score = &score
		}
		if err := enc.Encode(out); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
