package rootcause

import "strings"

// Unknown is the label returned when the text only points at a vague or
// pending cause.
const Unknown = "unknown"

// Classifier assigns a single root-cause label to raw report text.
type Classifier struct {
	unknown []string
	known   []string
}

// New creates a classifier. Both phrase lists are in priority order; the
// comparison ignores case.
func New(unknownPhrases, knownPhrases []string) *Classifier {
	c := &Classifier{
		unknown: make([]string, len(unknownPhrases)),
		known:   make([]string, len(knownPhrases)),
	}
	for i, p := range unknownPhrases {
		c.unknown[i] = strings.ToLower(p)
	}
	for i, p := range knownPhrases {
		c.known[i] = strings.ToLower(p)
	}
	return c
}

// Classify returns Unknown if any unknown-cause phrase occurs in text,
// otherwise the first known-cause phrase that occurs, otherwise "".
// Unknown phrases dominate: pending-investigation language is not reported
// as a concrete cause just because a known phrase also appears.
func (c *Classifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, p := range c.unknown {
		if strings.Contains(lower, p) {
			return Unknown
		}
	}
	for _, p := range c.known {
		if strings.Contains(lower, p) {
			return p
		}
	}
	return ""
}
