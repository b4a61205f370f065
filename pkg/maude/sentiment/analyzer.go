package sentiment

import (
	"strings"
	"unicode"
)

// Scorer returns the polarity of a short text: negative below zero, positive
// above, zero when neutral.
type Scorer interface {
	Polarity(text string) (float64, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(text string) (float64, error)

// Polarity calls f(text).
func (f ScorerFunc) Polarity(text string) (float64, error) {
	return f(text)
}

// negationDamping is applied together with the sign flip: "not good" is
// mildly negative rather than as negative as "bad".
const negationDamping = -0.5

// DefaultNegationReach is how many words after a negation can still be
// negated by it.
const DefaultNegationReach = 3

// Analyzer is a lexicon-averaging Scorer. Each scored word contributes its
// polarity, scaled by a directly preceding intensifier and flipped by a
// negation within reach; the result is the mean over scored words.
type Analyzer struct {
	lex   *Lexicon
	reach int
}

// NewAnalyzer creates an analyzer over lex. A nil lexicon selects Default().
func NewAnalyzer(lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = Default()
	}
	return &Analyzer{lex: lex, reach: DefaultNegationReach}
}

// Polarity implements Scorer. It never fails.
func (a *Analyzer) Polarity(text string) (float64, error) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	var (
		sum       float64
		scored    int
		multiply  = 1.0
		negatedAt = -1
	)
	for i, w := range words {
		if a.lex.isNegation(w) || strings.HasSuffix(w, "n't") {
			negatedAt = i
			continue
		}
		if f, ok := a.lex.intensity(w); ok {
			multiply *= f
			continue
		}
		p, ok := a.lex.Polarity(w)
		if !ok {
			multiply = 1.0
			continue
		}
		p *= multiply
		if negatedAt >= 0 && i-negatedAt <= a.reach {
			p *= negationDamping
			negatedAt = -1
		}
		sum += p
		scored++
		multiply = 1.0
	}

	if scored == 0 {
		return 0, nil
	}
	return clamp(sum / float64(scored)), nil
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
