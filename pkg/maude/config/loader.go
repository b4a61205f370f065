package config

import (
	"fmt"
	"path/filepath"

	"github.com/cognicore/maude/pkg/maude/extract"
	"github.com/cognicore/maude/pkg/maude/filter"
	"github.com/cognicore/maude/pkg/maude/ingest"
	"github.com/cognicore/maude/pkg/maude/match"
	"github.com/cognicore/maude/pkg/maude/rootcause"
	"github.com/cognicore/maude/pkg/maude/sentiment"
)

// Loader loads the configuration and constructs components
type Loader struct {
	ConfigPath  string // empty selects Default()
	LexiconPath string // overrides sentiment.lexicon when set
}

// Components holds all loaded configuration components
type Components struct {
	Config     *Config
	Tokenizer  *ingest.Tokenizer
	Taxonomy   *ingest.Taxonomy
	Matcher    *match.Matcher
	Filter     *filter.Filter
	Scorer     sentiment.Scorer
	Extractor  *extract.Extractor
	Classifier *rootcause.Classifier
}

// Load reads the configuration and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	lexPath := l.LexiconPath
	if lexPath == "" && cfg.Sentiment.Lexicon != "" {
		lexPath = cfg.Sentiment.Lexicon
		if !filepath.IsAbs(lexPath) && l.ConfigPath != "" {
			lexPath = filepath.Join(filepath.Dir(l.ConfigPath), lexPath)
		}
	}
	lex := sentiment.Default()
	if lexPath != "" {
		loaded, err := sentiment.LoadFromYAML(lexPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}

	return Build(cfg, sentiment.NewAnalyzer(lex)), nil
}

// Build wires components from an already validated configuration.
func Build(cfg *Config, scorer sentiment.Scorer) *Components {
	taxonomy := ingest.NewTaxonomy()
	for _, cat := range cfg.Causes {
		taxonomy.AddCategory(cat.Category, cat.Keywords)
	}

	matcher := match.NewMatcher(cfg.Matching.Threshold)

	return &Components{
		Config:    cfg,
		Tokenizer: ingest.NewTokenizer(),
		Taxonomy:  taxonomy,
		Matcher:   matcher,
		Filter:    filter.New(taxonomy, matcher),
		Scorer:    scorer,
		Extractor: extract.New(taxonomy, scorer, extract.Options{
			Window:           cfg.Extraction.Window,
			MaxPhraseTokens:  cfg.Extraction.MaxPhraseTokens,
			InjuryExclusions: cfg.Extraction.InjuryExclusions,
			DeathExclusions:  cfg.Extraction.DeathExclusions,
		}),
		Classifier: rootcause.New(cfg.RootCause.Unknown, cfg.RootCause.Known),
	}
}
