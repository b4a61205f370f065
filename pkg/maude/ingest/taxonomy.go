package ingest

import "strings"

// Category is a named, ordered list of cause keywords or phrases.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy holds the causes dictionary: categories in configuration order,
// each with lowercase keywords.
type Taxonomy struct {
	categories []Category
	index      map[string]string // keyword → first category that lists it
}

// NewTaxonomy creates an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{index: make(map[string]string)}
}

// AddCategory appends a category. Keywords are lowercased; a keyword listed
// by an earlier category keeps that category in lookups.
func (t *Taxonomy) AddCategory(name string, keywords []string) {
	normalized := make([]string, len(keywords))
	for i, kw := range keywords {
		normalized[i] = strings.ToLower(kw)
		if _, ok := t.index[normalized[i]]; !ok {
			t.index[normalized[i]] = name
		}
	}
	t.categories = append(t.categories, Category{Name: name, Keywords: normalized})
}

// Categories returns the categories in the order they were added.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// Lookup reports whether phrase exactly equals a keyword of any category,
// ignoring case, and returns the first category that lists it.
func (t *Taxonomy) Lookup(phrase string) (string, bool) {
	cat, ok := t.index[strings.ToLower(phrase)]
	return cat, ok
}

// Size returns the number of distinct keywords.
func (t *Taxonomy) Size() int {
	return len(t.index)
}

// MentionedIn reports whether any keyword of any category occurs as a
// substring of text, ignoring case. This is a coarse relevance check: "k"
// matches inside almost any word.
func (t *Taxonomy) MentionedIn(text string) bool {
	lowerText := strings.ToLower(text)
	for _, cat := range t.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lowerText, kw) {
				return true
			}
		}
	}
	return false
}
