package match

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func chars(s string) []string {
	return strings.Split(s, "")
}

func TestMatchingBlocks(t *testing.T) {
	m := NewSequenceMatcher(chars("qabxcd"), chars("abycdf"))

	assert.Equal(t, []Block{{A: 1, B: 0, Size: 2}, {A: 4, B: 3, Size: 2}}, m.MatchingBlocks())
	assert.InDelta(t, 8.0/12.0, m.Ratio(), 1e-12)
}

func TestMatchingBlocksGap(t *testing.T) {
	m := NewSequenceMatcher(chars("abxcd"), chars("abcd"))

	want := []Block{{A: 0, B: 0, Size: 2}, {A: 3, B: 2, Size: 2}}
	assert.Empty(t, cmp.Diff(want, m.MatchingBlocks()), "MatchingBlocks mismatch (-want +got)")
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"shifted", chars("abcd"), chars("bcde"), 0.75},
		{"identical", []string{"abl90", "flex"}, []string{"abl90", "flex"}, 1.0},
		{"disjoint", []string{"omni"}, []string{"cobas"}, 0.0},
		{"both empty", nil, nil, 1.0},
		{"one empty", []string{"omni"}, nil, 0.0},
		{"repeated elements", []string{"a", "a", "b"}, []string{"a", "b", "a"}, 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NewSequenceMatcher(tt.a, tt.b).Ratio(), 1e-12)
		})
	}
}

func TestRatioPopularElementsInLongSequences(t *testing.T) {
	b := make([]string, autojunkMin)
	for i := range b {
		b[i] = "x"
	}
	// "x" is popular in b, so it cannot seed a match, but the block at the
	// start of both ranges still extends over it.
	m := NewSequenceMatcher([]string{"x"}, b)
	assert.InDelta(t, 2.0/201.0, m.Ratio(), 1e-12)
}
