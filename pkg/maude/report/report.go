package report

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Report is one ingested adverse-event row.
type Report struct {
	Manufacturer string
	ProductCode  string
	BrandName    string
	EventText    string
}

// Normalize applies NFKC normalization and trims surrounding whitespace on
// every field. Ingestion calls it once per row so matching code never has to
// coerce or clean fields again.
func Normalize(r Report) Report {
	return Report{
		Manufacturer: normalizeField(r.Manufacturer),
		ProductCode:  normalizeField(r.ProductCode),
		BrandName:    normalizeField(r.BrandName),
		EventText:    normalizeField(r.EventText),
	}
}

func normalizeField(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// Record is a Report together with its tokens and the fields derived during
// selection and analysis.
type Record struct {
	Report

	// Tokens is the tokenizer output for EventText. Order matters for
	// phrase matching.
	Tokens []string

	// Score is the instrument similarity ratio; only meaningful when Scored.
	Score  float64
	Scored bool

	// Causes holds lowercase cause labels in first-discovery order.
	Causes []string

	// DictionaryHit reports whether any contiguous token span equals a
	// dictionary phrase.
	DictionaryHit bool

	RootCause string
}

// JoinedText returns the tokens joined by single spaces.
func (r Record) JoinedText() string {
	return strings.Join(r.Tokens, " ")
}

// Clone returns a copy whose slices do not alias the receiver's.
func (r Record) Clone() Record {
	out := r
	if r.Tokens != nil {
		out.Tokens = append([]string(nil), r.Tokens...)
	}
	if r.Causes != nil {
		out.Causes = append([]string(nil), r.Causes...)
	}
	return out
}
