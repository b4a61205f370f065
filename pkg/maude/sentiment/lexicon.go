package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon stores word polarities plus the modifiers that change them:
//   - polarity: word → score in [-1, 1]
//   - negations: words that flip and dampen the next scored word ("not", "no")
//   - intensifiers: words that scale the next scored word ("very" → 1.3)
type Lexicon struct {
	polarity     map[string]float64
	negations    map[string]struct{}
	intensifiers map[string]float64
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		polarity:     make(map[string]float64),
		negations:    make(map[string]struct{}),
		intensifiers: make(map[string]float64),
	}
}

// Default returns the built-in English lexicon.
func Default() *Lexicon {
	lex, err := Parse(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return lex
}

// LoadFromYAML loads a lexicon file.
//
// Expected format:
//
//	words:
//	  good: 0.7
//	  harm: -0.6
//	negations: [not, no, never]
//	intensifiers:
//	  very: 1.3
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML lexicon document.
func Parse(data []byte) (*Lexicon, error) {
	var doc struct {
		Words        map[string]float64 `yaml:"words"`
		Negations    []string           `yaml:"negations"`
		Intensifiers map[string]float64 `yaml:"intensifiers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := New()
	for w, p := range doc.Words {
		if p < -1 || p > 1 {
			return nil, fmt.Errorf("parse lexicon: polarity of %q out of range: %v", w, p)
		}
		lex.Add(w, p)
	}
	for _, w := range doc.Negations {
		lex.AddNegation(w)
	}
	for w, f := range doc.Intensifiers {
		lex.AddIntensifier(w, f)
	}
	return lex, nil
}

// Add sets the polarity of a word.
func (l *Lexicon) Add(word string, polarity float64) {
	l.polarity[strings.ToLower(word)] = polarity
}

// AddNegation registers a negation word.
func (l *Lexicon) AddNegation(word string) {
	l.negations[strings.ToLower(word)] = struct{}{}
}

// AddIntensifier registers a word that multiplies the next polarity by factor.
func (l *Lexicon) AddIntensifier(word string, factor float64) {
	l.intensifiers[strings.ToLower(word)] = factor
}

// Polarity returns the polarity of a lowercase word.
func (l *Lexicon) Polarity(word string) (float64, bool) {
	p, ok := l.polarity[word]
	return p, ok
}

func (l *Lexicon) isNegation(word string) bool {
	_, ok := l.negations[word]
	return ok
}

func (l *Lexicon) intensity(word string) (float64, bool) {
	f, ok := l.intensifiers[word]
	return f, ok
}

// Stats returns counts of the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	return LexiconStats{
		Words:        len(l.polarity),
		Negations:    len(l.negations),
		Intensifiers: len(l.intensifiers),
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	Words        int
	Negations    int
	Intensifiers int
}
