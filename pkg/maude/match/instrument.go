package match

import (
	"strings"
	"unicode"
)

// DefaultThreshold is the minimum similarity ratio for an instrument match.
const DefaultThreshold = 0.5

// Matcher scores instrument names against brand-name fields.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher. A non-positive threshold selects
// DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the inclusive match threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns the similarity ratio between the word sequences of
// instrument and brand.
func (m *Matcher) Match(instrument, brand string) float64 {
	return NewSequenceMatcher(Words(instrument), Words(brand)).Ratio()
}

// Result is the outcome of First.
type Result struct {
	Instrument string
	Score      float64
}

// First returns the first instrument, in the given order, whose score against
// brand reaches the threshold. Later instruments are not scored even if they
// would score higher.
func (m *Matcher) First(instruments []string, brand string) (Result, bool) {
	brandWords := Words(brand)
	for _, inst := range instruments {
		score := NewSequenceMatcher(Words(inst), brandWords).Ratio()
		if score >= m.threshold {
			return Result{Instrument: inst, Score: score}, true
		}
	}
	return Result{}, false
}

// Words lowercases s, drops every rune that is not a letter, digit,
// underscore or whitespace, and splits the rest on whitespace.
func Words(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
	return strings.Fields(cleaned)
}
