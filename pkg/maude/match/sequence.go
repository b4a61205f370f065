package match

import "sort"

// Block is a run of equal elements: a[A:A+Size] == b[B:B+Size].
type Block struct {
	A, B, Size int
}

// SequenceMatcher compares two string sequences using the greedy
// longest-matching-block algorithm (Ratcliff/Obershelp, as in difflib).
type SequenceMatcher struct {
	a, b    []string
	b2j     map[string][]int
	popular map[string]struct{}
	blocks  []Block
}

// autojunkMin is the sequence length from which elements occurring in more
// than 1% of b are treated as popular and never start a match.
const autojunkMin = 200

// NewSequenceMatcher prepares a matcher for sequences a and b.
func NewSequenceMatcher(a, b []string) *SequenceMatcher {
	m := &SequenceMatcher{a: a, b: b}
	m.indexB()
	return m
}

func (m *SequenceMatcher) indexB() {
	m.b2j = make(map[string][]int)
	for j, elt := range m.b {
		m.b2j[elt] = append(m.b2j[elt], j)
	}

	m.popular = make(map[string]struct{})
	n := len(m.b)
	if n >= autojunkMin {
		ntest := n/100 + 1
		for elt, idxs := range m.b2j {
			if len(idxs) > ntest {
				m.popular[elt] = struct{}{}
			}
		}
		for elt := range m.popular {
			delete(m.b2j, elt)
		}
	}
}

// longestMatch finds the longest block in a[alo:ahi] and b[blo:bhi]. Ties go
// to the block that starts earliest in a, then earliest in b.
func (m *SequenceMatcher) longestMatch(alo, ahi, blo, bhi int) Block {
	besti, bestj, bestsize := alo, blo, 0

	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	// Popular elements cannot start a match but may extend one.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	return Block{A: besti, B: bestj, Size: bestsize}
}

// MatchingBlocks returns the non-overlapping matching blocks in increasing
// order, with adjacent blocks merged.
func (m *SequenceMatcher) MatchingBlocks() []Block {
	if m.blocks != nil {
		return m.blocks
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var found []Block

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		blk := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if blk.Size == 0 {
			continue
		}
		found = append(found, blk)
		if s.alo < blk.A && s.blo < blk.B {
			queue = append(queue, span{s.alo, blk.A, s.blo, blk.B})
		}
		if blk.A+blk.Size < s.ahi && blk.B+blk.Size < s.bhi {
			queue = append(queue, span{blk.A + blk.Size, s.ahi, blk.B + blk.Size, s.bhi})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].A != found[j].A {
			return found[i].A < found[j].A
		}
		return found[i].B < found[j].B
	})

	merged := make([]Block, 0, len(found))
	for _, blk := range found {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.A+last.Size == blk.A && last.B+last.Size == blk.B {
				last.Size += blk.Size
				continue
			}
		}
		merged = append(merged, blk)
	}

	m.blocks = merged
	return m.blocks
}

// Ratio returns 2*M/T where M is the number of matched elements and T the
// combined length of both sequences. Two empty sequences have ratio 1.
func (m *SequenceMatcher) Ratio() float64 {
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1.0
	}
	matches := 0
	for _, blk := range m.MatchingBlocks() {
		matches += blk.Size
	}
	return 2.0 * float64(matches) / float64(total)
}
