package analytics

import (
	"sort"

	"github.com/cognicore/maude/pkg/maude/ingest"
	"github.com/cognicore/maude/pkg/maude/report"
)

// Count is one labeled tally in a Summary.
type Count struct {
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
	Count    int    `json:"count"`
}

// Summary describes one analysis run.
type Summary struct {
	RunID          string  `json:"run_id,omitempty"`
	TotalReports   int     `json:"total_reports"`
	Selected       int     `json:"selected"`
	DictionaryHits int     `json:"dictionary_hits"`
	Unclassified   int     `json:"unclassified"`
	ByManufacturer []Count `json:"by_manufacturer"`
	ByCause        []Count `json:"by_cause"`
	ByRootCause    []Count `json:"by_root_cause"`
}

// Analyzer aggregates annotated records into a Summary.
type Analyzer struct {
	taxonomy       *ingest.Taxonomy
	totalReports   int
	selected       int
	dictionaryHits int
	unclassified   int
	mfrOrder       []string
	mfrCounts      map[string]int
	causeCounts    map[string]int
	rootCounts     map[string]int
}

// NewAnalyzer creates an empty analyzer. The taxonomy, when non-nil, is used
// to attach a category to each cause label.
func NewAnalyzer(taxonomy *ingest.Taxonomy) *Analyzer {
	return &Analyzer{
		taxonomy:    taxonomy,
		mfrCounts:   make(map[string]int),
		causeCounts: make(map[string]int),
		rootCounts:  make(map[string]int),
	}
}

// SetTotal records how many reports were ingested before selection.
func (a *Analyzer) SetTotal(n int) {
	a.totalReports = n
}

// Process consumes one selected, annotated record.
func (a *Analyzer) Process(rec report.Record) {
	a.selected++
	if rec.DictionaryHit {
		a.dictionaryHits++
	}
	if _, ok := a.mfrCounts[rec.Manufacturer]; !ok {
		a.mfrOrder = append(a.mfrOrder, rec.Manufacturer)
	}
	a.mfrCounts[rec.Manufacturer]++

	for _, c := range rec.Causes {
		a.causeCounts[c]++
	}
	if rec.RootCause == "" {
		a.unclassified++
	} else {
		a.rootCounts[rec.RootCause]++
	}
}

// Snapshot returns the current summary. Manufacturers keep first-seen order;
// causes and root causes are sorted by descending count, then label.
func (a *Analyzer) Snapshot() Summary {
	s := Summary{
		TotalReports:   a.totalReports,
		Selected:       a.selected,
		DictionaryHits: a.dictionaryHits,
		Unclassified:   a.unclassified,
		ByManufacturer: make([]Count, 0, len(a.mfrOrder)),
	}
	for _, m := range a.mfrOrder {
		s.ByManufacturer = append(s.ByManufacturer, Count{Label: m, Count: a.mfrCounts[m]})
	}

	s.ByCause = sortedCounts(a.causeCounts)
	if a.taxonomy != nil {
		for i := range s.ByCause {
			s.ByCause[i].Category, _ = a.taxonomy.Lookup(s.ByCause[i].Label)
		}
	}
	s.ByRootCause = sortedCounts(a.rootCounts)
	return s
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
