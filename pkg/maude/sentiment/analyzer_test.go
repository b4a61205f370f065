package sentiment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexiconLoads(t *testing.T) {
	stats := Default().Stats()
	assert.Greater(t, stats.Words, 40)
	assert.Greater(t, stats.Negations, 0)
	assert.Greater(t, stats.Intensifiers, 0)
}

func TestAnalyzerPolarity(t *testing.T) {
	a := NewAnalyzer(nil)

	tests := []struct {
		name string
		text string
		sign int
	}{
		{"positive recovery", "no injury occurred , patient recovered well", 1},
		{"negative harm", "the patient suffered a serious injury requiring surgery", -1},
		{"neutral", "the analyzer was returned for injury evaluation", 0},
		{"negated positive", "the result was not accurate", -1},
		{"contraction negation", "it didn't work well", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Polarity(tt.text)
			require.NoError(t, err)
			switch tt.sign {
			case 1:
				assert.Greater(t, got, 0.0)
			case -1:
				assert.Less(t, got, 0.0)
			default:
				assert.Equal(t, 0.0, got)
			}
		})
	}
}

func TestAnalyzerIntensifierAndDamping(t *testing.T) {
	lex := New()
	lex.Add("good", 0.5)
	lex.AddIntensifier("very", 1.5)
	lex.AddNegation("not")
	a := NewAnalyzer(lex)

	got, _ := a.Polarity("very good")
	assert.InDelta(t, 0.75, got, 1e-12)

	got, _ = a.Polarity("not good")
	assert.InDelta(t, -0.25, got, 1e-12)

	// negation out of reach
	got, _ = a.Polarity("not a b c d good")
	assert.InDelta(t, 0.5, got, 1e-12)

	lex.Add("great", 1.0)
	got, _ = a.Polarity("extremely great very very great")
	assert.Equal(t, 1.0, got, "polarity is clamped to [-1, 1]")
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("words:\n  calm: 0.3\nnegations: [never]\n"), 0o644))

	lex, err := LoadFromYAML(path)
	require.NoError(t, err)
	p, ok := lex.Polarity("calm")
	assert.True(t, ok)
	assert.Equal(t, 0.3, p)

	require.NoError(t, os.WriteFile(path, []byte("words:\n  calm: 3\n"), 0o644))
	_, err = LoadFromYAML(path)
	assert.Error(t, err)

	_, err = LoadFromYAML(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestScorerFunc(t *testing.T) {
	boom := errors.New("boom")
	var s Scorer = ScorerFunc(func(string) (float64, error) { return 0, boom })
	_, err := s.Polarity("x")
	assert.ErrorIs(t, err, boom)
}
