package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/maude/pkg/maude/ingest"
	"github.com/cognicore/maude/pkg/maude/sentiment"
)

func newTaxonomy() *ingest.Taxonomy {
	tax := ingest.NewTaxonomy()
	tax.AddCategory("analyte", []string{"Na", "K", "K+", "ionized calcium", "glucose"})
	tax.AddCategory("non-analyte", []string{"power supply", "injury", "death", "deceased", "smoke", "hot"})
	return tax
}

// fixedScorer returns the same polarity for every window and records them.
type fixedScorer struct {
	polarity float64
	windows  []string
}

func (s *fixedScorer) Polarity(text string) (float64, error) {
	s.windows = append(s.windows, text)
	return s.polarity, nil
}

func tokens(text string) []string {
	return ingest.NewTokenizer().Tokenize(text)
}

func TestCausesDictionaryTokensAndPairs(t *testing.T) {
	e := New(newTaxonomy(), &fixedScorer{}, Options{})

	got, err := e.Causes([]string{"Power", "supply", "failure", "caused", "SMOKE", "and", "high", "K+"})
	require.NoError(t, err)
	assert.Equal(t, []string{"power supply", "smoke", "k+"}, got)
}

func TestCausesPairTakesPrecedence(t *testing.T) {
	tax := ingest.NewTaxonomy()
	tax.AddCategory("analyte", []string{"ionized", "ionized calcium"})
	e := New(tax, &fixedScorer{}, Options{})

	got, err := e.Causes([]string{"low", "ionized", "calcium"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ionized calcium"}, got)
}

func TestCausesSodiumRules(t *testing.T) {
	e := New(newTaxonomy(), &fixedScorer{}, Options{})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"measurement", "Erroneous Na measurements were obtained", []string{"na"}},
		{"singular at start", "NA measurement high", []string{"na"}},
		{"not applicable", "Lot number : NA .", nil},
		{"plain keyword", "Na and K were low", []string{"na", "k"}},
		{"last token", "results for K and Na", []string{"k", "na"}},
		{"duplicates collapse", "Na high , Na measurement repeated", []string{"na"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Causes(strings.Fields(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCausesInjurySentimentGate(t *testing.T) {
	tax := newTaxonomy()

	negative := &fixedScorer{polarity: -0.4}
	got, err := New(tax, negative, Options{}).Causes(tokens("The patient suffered an injury from the hot device."))
	require.NoError(t, err)
	assert.Equal(t, []string{"injury", "hot"}, got)
	require.Len(t, negative.windows, 1)
	assert.Equal(t, "The patient suffered an injury from the hot device .", negative.windows[0])

	neutral := &fixedScorer{polarity: 0}
	got, err = New(tax, neutral, Options{}).Causes(tokens("injury reported"))
	require.NoError(t, err)
	assert.Equal(t, []string{"injury"}, got, "zero polarity counts as an injury mention")

	positive := &fixedScorer{polarity: 0.3}
	got, err = New(tax, positive, Options{}).Causes(tokens("No injury occurred, patient recovered well."))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCausesInjuryWindow(t *testing.T) {
	scorer := &fixedScorer{polarity: -1}
	e := New(newTaxonomy(), scorer, Options{Window: 2})

	_, err := e.Causes(strings.Fields("a b c d injury e f g h"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c d injury e f"}, scorer.windows)
}

func TestCausesInjuryExclusions(t *testing.T) {
	scorer := &fixedScorer{polarity: -1}
	e := New(newTaxonomy(), scorer, Options{})

	got, err := e.Causes(tokens("There were no reports of serious injury or death. Patient injury unknown."))
	require.NoError(t, err)
	assert.NotContains(t, got, "injury")
	assert.NotContains(t, got, "death")
	assert.Empty(t, scorer.windows, "scorer is not consulted when an exclusion applies")

	got, err = e.Causes(tokens("risk of injury to the patient"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCausesDeathMentions(t *testing.T) {
	e := New(newTaxonomy(), &fixedScorer{}, Options{})

	got, err := e.Causes(tokens("The patient was deceased; death followed the event."))
	require.NoError(t, err)
	assert.Equal(t, []string{"deceased", "death"}, got)

	got, err = e.Causes(tokens("The patient is deceased. The death was not related to the device."))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCausesScorerErrorPropagates(t *testing.T) {
	boom := errors.New("scorer unavailable")
	e := New(newTaxonomy(), sentiment.ScorerFunc(func(string) (float64, error) { return 0, boom }), Options{})

	_, err := e.Causes([]string{"injury"})
	assert.ErrorIs(t, err, boom)
}

func TestExtractIdempotent(t *testing.T) {
	e := New(newTaxonomy(), sentiment.NewAnalyzer(nil), Options{})
	toks := tokens("Patient had a serious injury. Na measurements and glucose were wrong; power supply failed.")

	first, err := e.Extract(toks)
	require.NoError(t, err)
	second, err := e.Extract(toks)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"injury", "na", "glucose", "power supply"}, first.Causes)
	assert.True(t, first.DictionaryHit)
}

func TestExtractDictionaryHitIndependentOfCauses(t *testing.T) {
	e := New(newTaxonomy(), &fixedScorer{polarity: 1}, Options{})

	// "injury" is suppressed by positive sentiment but still is a dictionary phrase.
	got, err := e.Extract([]string{"no", "injury"})
	require.NoError(t, err)
	assert.Empty(t, got.Causes)
	assert.True(t, got.DictionaryHit)

	got, err = e.Extract([]string{"display", "froze"})
	require.NoError(t, err)
	assert.False(t, got.DictionaryHit)
}

func TestExtractHyphenatedAnalyteCompound(t *testing.T) {
	tax := ingest.NewTaxonomy()
	tax.AddCategory("analyte", []string{"sodium", "potassium", "glucose", "lactate"})
	e := New(tax, &fixedScorer{}, Options{})

	tests := []struct {
		text string
		want []string
	}{
		{"Falsely elevated sodium-potassium values.", []string{"sodium", "potassium"}},
		{"The glucose-lactate cartridge failed.", []string{"glucose", "lactate"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := e.Extract(tokens(tt.text))
			require.NoError(t, err)
			assert.True(t, got.DictionaryHit)
			assert.Equal(t, tt.want, got.Causes)
		})
	}
}
