package extract

import (
	"fmt"
	"strings"

	"github.com/cognicore/maude/pkg/maude/ingest"
	"github.com/cognicore/maude/pkg/maude/sentiment"
)

// DefaultWindow is the number of tokens on each side of "injury" passed to
// the sentiment scorer.
const DefaultWindow = 5

// Default exclusion phrases. Reports containing them mention injury or death
// only to deny it.
var (
	DefaultInjuryExclusions = []string{
		"no reports of serious injury or death",
		"no reports of death or serious injury",
	}
	DefaultDeathExclusions = []string{
		"no reports of serious injury or death",
		"no reports of death or serious injury",
		"the death was not related",
	}
)

// Options tunes the extraction rules. Zero values select the defaults.
type Options struct {
	// Window is the sentiment context radius around "injury".
	Window int
	// MaxPhraseTokens caps dictionary span length; 0 checks every span.
	MaxPhraseTokens int
	// InjuryExclusions suppress the injury label when present in the text.
	InjuryExclusions []string
	// DeathExclusions suppress death/deceased labels when present in the text.
	DeathExclusions []string
}

// Extraction is the result of analysing one token sequence.
type Extraction struct {
	Causes        []string
	DictionaryHit bool
}

// Extractor finds cause labels in tokenized report text.
type Extractor struct {
	taxonomy *ingest.Taxonomy
	phrases  *ingest.PhraseIndex
	scorer   sentiment.Scorer
	opts     Options
}

// New creates an extractor for the given causes dictionary and sentiment
// scorer.
func New(taxonomy *ingest.Taxonomy, scorer sentiment.Scorer, opts Options) *Extractor {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.InjuryExclusions == nil {
		opts.InjuryExclusions = DefaultInjuryExclusions
	}
	if opts.DeathExclusions == nil {
		opts.DeathExclusions = DefaultDeathExclusions
	}
	opts.InjuryExclusions = lowerAll(opts.InjuryExclusions)
	opts.DeathExclusions = lowerAll(opts.DeathExclusions)

	return &Extractor{
		taxonomy: taxonomy,
		phrases:  ingest.NewPhraseIndex(taxonomy, opts.MaxPhraseTokens),
		scorer:   scorer,
		opts:     opts,
	}
}

// Extract runs both the dictionary span check and the token rules.
func (e *Extractor) Extract(tokens []string) (Extraction, error) {
	causes, err := e.Causes(tokens)
	if err != nil {
		return Extraction{}, err
	}
	return Extraction{
		Causes:        causes,
		DictionaryHit: e.HasDictionaryHit(tokens),
	}, nil
}

// HasDictionaryHit reports whether any contiguous token span equals a
// dictionary phrase.
func (e *Extractor) HasDictionaryHit(tokens []string) bool {
	return e.phrases.Contains(tokens)
}

// Causes walks the tokens and returns lowercase cause labels in
// first-discovery order. For each token the first applicable rule wins:
//
//   - "na" before "measurement(s)" is the sodium analyte
//   - "na" before "." means not applicable and yields nothing
//   - "injury" is labeled unless preceded by "of", denied by an exclusion
//     phrase, or surrounded by positive sentiment
//   - "death"/"deceased" are labeled unless denied by an exclusion phrase
//   - a token pair equal to a dictionary phrase is labeled as the pair
//   - a token equal to a dictionary keyword is labeled as the token
//
// The sentiment gate is approximate: a genuine injury described in upbeat
// surrounding words is missed.
func (e *Extractor) Causes(tokens []string) ([]string, error) {
	lower := lowerAll(tokens)
	joined := strings.Join(lower, " ")
	var causes labelSet

	for i, tok := range lower {
		next := ""
		if i+1 < len(lower) {
			next = lower[i+1]
		}

		switch {
		case tok == "na" && (next == "measurements" || next == "measurement"):
			causes.add("na")

		case tok == "na" && next == ".":
			// not applicable

		case tok == "injury":
			if i > 0 && lower[i-1] == "of" {
				continue
			}
			if containsAny(joined, e.opts.InjuryExclusions) {
				continue
			}
			polarity, err := e.scorer.Polarity(e.window(tokens, i))
			if err != nil {
				return nil, fmt.Errorf("score injury context: %w", err)
			}
			if polarity <= 0 {
				causes.add("injury")
			}

		case tok == "death" || tok == "deceased":
			if !containsAny(joined, e.opts.DeathExclusions) {
				causes.add(tok)
			}

		default:
			if next != "" {
				pair := tok + " " + next
				if _, ok := e.taxonomy.Lookup(pair); ok {
					causes.add(pair)
					continue
				}
			}
			if _, ok := e.taxonomy.Lookup(tok); ok {
				causes.add(tok)
			}
		}
	}

	return causes.list, nil
}

// window joins up to opts.Window tokens on each side of i, inclusive.
func (e *Extractor) window(tokens []string, i int) string {
	lo := max(0, i-e.opts.Window)
	hi := min(len(tokens), i+e.opts.Window+1)
	return strings.Join(tokens[lo:hi], " ")
}

// labelSet is an insertion-ordered set of strings.
type labelSet struct {
	list []string
	seen map[string]struct{}
}

func (s *labelSet) add(label string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[label]; ok {
		return
	}
	s.seen[label] = struct{}{}
	s.list = append(s.list, label)
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
