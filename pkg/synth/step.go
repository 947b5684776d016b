package synth

import (
	"github.com/matzehuels/pauliflow/pkg/circuit"
	"github.com/matzehuels/pauliflow/pkg/pauli"
	"github.com/matzehuels/pauliflow/pkg/synth/matching"
)

// Score returns how many leading identities chunk c adds on qubits q0 and
// q1 of s, leaving s unchanged.
func Score(s *pauli.Set, c Chunk, q0, q1 int) int {
	before := s.CountLeadingIdentity(q0) + s.CountLeadingIdentity(q1)
	c.Apply(s, q0, q1)
	after := s.CountLeadingIdentity(q0) + s.CountLeadingIdentity(q1)
	c.Undo(s, q0, q1)
	return after - before
}

// BestChunk returns the first chunk with the highest positive score on
// (q0, q1). ok is false when no chunk scores above zero.
func BestChunk(s *pauli.Set, q0, q1 int) (best Chunk, score int, ok bool) {
	for _, c := range chunks {
		if sc := Score(s, c, q0, q1); sc > score {
			best, score, ok = c, sc, true
		}
	}
	return best, score, ok
}

// CountStep commits the best chunk over every qubit pair in the support of
// the front operator of s and returns its gates. Both drivers use this
// restricted pair set, Greedy included; searching all pairs changes the
// circuits it produces. The circuit is empty when
// no chunk improves s, which cannot happen while the front operator has
// support two or more.
func CountStep(s *pauli.Set) *circuit.Circuit {
	out := circuit.New(s.Qubits())
	if s.Len() == 0 {
		return out
	}
	support := s.Support(0)

	var (
		best      Chunk
		bestScore int
		bq0, bq1  int
		found     bool
	)
	for i := 0; i < len(support); i++ {
		for j := i + 1; j < len(support); j++ {
			c, score, ok := BestChunk(s, support[i], support[j])
			if ok && score > bestScore {
				best, bestScore, bq0, bq1, found = c, score, support[i], support[j], true
			}
		}
	}
	if !found {
		return out
	}
	best.Apply(s, bq0, bq1)
	out.Append(best.Bind(bq0, bq1)...)
	return out
}

// DepthStep scores the best chunk of every qubit pair, commits a
// maximum-weight matching of them and returns the matched chunks as one
// layer. Matched pairs are disjoint, so the chunks commute and are emitted
// in ascending order of their lower qubit.
func DepthStep(s *pauli.Set) *circuit.Circuit {
	n := s.Qubits()
	out := circuit.New(n)
	if s.Len() == 0 {
		return out
	}

	var edges []matching.Edge
	moves := make(map[[2]int]Chunk)
	for q0 := 0; q0 < n; q0++ {
		for q1 := q0 + 1; q1 < n; q1++ {
			c, score, ok := BestChunk(s, q0, q1)
			if !ok {
				continue
			}
			edges = append(edges, matching.Edge{U: q0, V: q1, Weight: score})
			moves[[2]int{q0, q1}] = c
		}
	}

	for _, pair := range matching.Pairs(matching.MaxWeight(n, edges)) {
		c := moves[pair]
		c.Apply(s, pair[0], pair[1])
		out.Append(c.Bind(pair[0], pair[1])...)
	}
	return out
}

// Step runs one search step of the given metric on s.
func Step(s *pauli.Set, m Metric) *circuit.Circuit {
	return m.step()(s)
}
