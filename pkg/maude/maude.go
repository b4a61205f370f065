package maude

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/maude/pkg/maude/config"
	"github.com/cognicore/maude/pkg/maude/extract"
	"github.com/cognicore/maude/pkg/maude/filter"
	"github.com/cognicore/maude/pkg/maude/report"
	"github.com/cognicore/maude/pkg/maude/rootcause"
)

// Tokenizer splits event text into tokens. It must be deterministic.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Pipeline selects the reports that concern the configured instruments and
// annotates them with cause labels and a root cause.
type Pipeline struct {
	manufacturers []config.Manufacturer
	productCodes  map[string]struct{}
	codeList      []string
	tokenizer     Tokenizer
	filter        *filter.Filter
	extractor     *extract.Extractor
	classifier    *rootcause.Classifier
	log           *zap.Logger
}

// Options configures a Pipeline
type Options struct {
	Manufacturers []config.Manufacturer
	ProductCodes  []string
	Tokenizer     Tokenizer
	Filter        *filter.Filter
	Extractor     *extract.Extractor
	Classifier    *rootcause.Classifier
	Logger        *zap.Logger // optional
}

// New creates a Pipeline with the given dependencies
func New(opts Options) *Pipeline {
	codes := make(map[string]struct{}, len(opts.ProductCodes))
	for _, pc := range opts.ProductCodes {
		codes[pc] = struct{}{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		manufacturers: opts.Manufacturers,
		productCodes:  codes,
		codeList:      opts.ProductCodes,
		tokenizer:     opts.Tokenizer,
		filter:        opts.Filter,
		extractor:     opts.Extractor,
		classifier:    opts.Classifier,
		log:           log,
	}
}

// FromComponents creates a Pipeline from loaded configuration components.
func FromComponents(c *config.Components, log *zap.Logger) *Pipeline {
	return New(Options{
		Manufacturers: c.Config.Manufacturers,
		ProductCodes:  c.Config.ProductCodes,
		Tokenizer:     c.Tokenizer,
		Filter:        c.Filter,
		Extractor:     c.Extractor,
		Classifier:    c.Classifier,
		Logger:        log,
	})
}

// Tokenize wraps each report in a Record carrying its event-text tokens.
func (p *Pipeline) Tokenize(reports []report.Report) []report.Record {
	records := make([]report.Record, len(reports))
	for i, r := range reports {
		records[i] = report.Record{Report: r, Tokens: p.tokenizer.Tokenize(r.EventText)}
	}
	return records
}

// Select runs the record filter once per manufacturer, in catalog order, and
// concatenates the matches. Each match is a copy carrying its similarity
// score and relabeled with the catalog manufacturer name. Matches whose
// product code is not exactly (case included) a configured code are dropped.
// A record matching several manufacturers appears once per manufacturer.
func (p *Pipeline) Select(records []report.Record) []report.Record {
	var selected []report.Record
	for _, mfr := range p.manufacturers {
		matches := p.filter.Select(mfr.Name, mfr.Instruments, p.codeList, records)

		kept := 0
		for _, m := range matches {
			rec := records[m.Index].Clone()
			if _, ok := p.productCodes[rec.ProductCode]; !ok {
				continue
			}
			rec.Score, rec.Scored = m.Score, true
			rec.Manufacturer = mfr.Name
			selected = append(selected, rec)
			kept++
		}

		p.log.Debug("manufacturer selection",
			zap.String("manufacturer", mfr.Name),
			zap.Int("matched", len(matches)),
			zap.Int("kept", kept))
	}
	return selected
}

// Annotate returns copies of records with DictionaryHit, Causes and
// RootCause filled in. It fails if cause extraction fails for any record.
func (p *Pipeline) Annotate(records []report.Record) ([]report.Record, error) {
	out := make([]report.Record, len(records))
	for i, rec := range records {
		annotated := rec.Clone()

		ext, err := p.extractor.Extract(annotated.Tokens)
		if err != nil {
			return nil, fmt.Errorf("annotate record %d: %w", i, err)
		}
		annotated.Causes = ext.Causes
		annotated.DictionaryHit = ext.DictionaryHit
		annotated.RootCause = p.classifier.Classify(annotated.EventText)

		out[i] = annotated
	}
	return out, nil
}

// Run tokenizes, selects and annotates a batch of reports.
func (p *Pipeline) Run(reports []report.Report) ([]report.Record, error) {
	records := p.Tokenize(reports)
	selected := p.Select(records)
	p.log.Info("selected reports",
		zap.Int("total", len(records)),
		zap.Int("selected", len(selected)))

	return p.Annotate(selected)
}
