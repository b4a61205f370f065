package ingest

import "strings"

// PhraseIndex answers whether a token sequence contains a dictionary phrase
// as a contiguous span.
type PhraseIndex struct {
	taxonomy *Taxonomy
	maxSpan  int // 0 = unlimited
}

// NewPhraseIndex creates an index over the taxonomy keywords. maxSpan caps
// the number of tokens in a candidate span; 0 enumerates every span.
func NewPhraseIndex(taxonomy *Taxonomy, maxSpan int) *PhraseIndex {
	if maxSpan < 0 {
		maxSpan = 0
	}
	return &PhraseIndex{taxonomy: taxonomy, maxSpan: maxSpan}
}

// Contains enumerates every contiguous span tokens[i..j], joins it lowercase
// with single spaces and checks it against the dictionary. It stops at the
// first hit. Without a span cap this is quadratic in len(tokens).
func (p *PhraseIndex) Contains(tokens []string) bool {
	lower := make([]string, len(tokens))
	for i, tok := range tokens {
		lower[i] = strings.ToLower(tok)
	}

	var span strings.Builder
	for i := range lower {
		span.Reset()
		for j := i; j < len(lower); j++ {
			if p.maxSpan > 0 && j-i >= p.maxSpan {
				break
			}
			if j > i {
				span.WriteByte(' ')
			}
			span.WriteString(lower[j])
			if _, ok := p.taxonomy.Lookup(span.String()); ok {
				return true
			}
		}
	}
	return false
}
