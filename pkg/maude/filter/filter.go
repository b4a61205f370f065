package filter

import (
	"strings"

	"github.com/cognicore/maude/pkg/maude/ingest"
	"github.com/cognicore/maude/pkg/maude/match"
	"github.com/cognicore/maude/pkg/maude/report"
)

// Selection identifies a record that passed every filter step.
type Selection struct {
	Index      int // position in the input slice
	Instrument string
	Score      float64
}

// Filter selects the records relevant to one manufacturer configuration.
type Filter struct {
	taxonomy *ingest.Taxonomy
	matcher  *match.Matcher
}

// New creates a filter using taxonomy for the keyword pre-check and matcher
// for instrument names.
func New(taxonomy *ingest.Taxonomy, matcher *match.Matcher) *Filter {
	return &Filter{taxonomy: taxonomy, matcher: matcher}
}

// Select returns the records, in input order, that
//  1. mention a dictionary keyword anywhere in their joined tokens,
//  2. have a manufacturer field containing manufacturer (case-insensitive),
//  3. carry a product code equal to one of productCodes (case-insensitive),
//  4. have a brand name matching one of instruments.
//
// Records are not modified.
func (f *Filter) Select(manufacturer string, instruments, productCodes []string, records []report.Record) []Selection {
	wantMfr := strings.ToLower(manufacturer)
	codes := make(map[string]struct{}, len(productCodes))
	for _, pc := range productCodes {
		codes[strings.ToLower(pc)] = struct{}{}
	}

	var out []Selection
	for i, rec := range records {
		if !f.taxonomy.MentionedIn(rec.JoinedText()) {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Manufacturer), wantMfr) {
			continue
		}
		if _, ok := codes[strings.ToLower(rec.ProductCode)]; !ok {
			continue
		}
		res, ok := f.matcher.First(instruments, rec.BrandName)
		if !ok {
			continue
		}
		out = append(out, Selection{Index: i, Instrument: res.Instrument, Score: res.Score})
	}
	return out
}
