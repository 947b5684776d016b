package pauli

import (
	"fmt"

	"github.com/matzehuels/pauliflow/pkg/circuit"
)

// xorRow sets rows[dst] ^= rows[src] word by word.
func (s *Set) xorRow(src, dst int) {
	from, to := s.rows[src], s.rows[dst]
	for k := range to {
		to[k] ^= from[k]
	}
}

// flipWhere toggles the sign of every operator whose bits are set in all
// of the given rows.
func (s *Set) flipWhere(rows ...int) {
	for k := range s.phases {
		w := ^uint64(0)
		for _, r := range rows {
			w &= s.rows[r][k]
		}
		s.phases[k] ^= w
	}
}

// H conjugates every operator by a Hadamard on qubit q.
func (s *Set) H(q int) {
	s.rows[q], s.rows[q+s.n] = s.rows[q+s.n], s.rows[q]
	s.flipWhere(q, q+s.n)
}

// S conjugates every operator by a phase gate on qubit q.
func (s *Set) S(q int) {
	s.flipWhere(q, q+s.n)
	s.xorRow(q, q+s.n)
}

// Sd conjugates every operator by an inverse phase gate on qubit q.
func (s *Set) Sd(q int) {
	s.xorRow(q, q+s.n)
	s.flipWhere(q, q+s.n)
}

// SqrtX conjugates every operator by a square root of X on qubit q.
func (s *Set) SqrtX(q int) {
	s.xorRow(q+s.n, q)
	s.flipWhere(q, q+s.n)
}

// SqrtXd conjugates every operator by the inverse square root of X on
// qubit q.
func (s *Set) SqrtXd(q int) {
	s.flipWhere(q, q+s.n)
	s.xorRow(q+s.n, q)
}

// CNOT conjugates every operator by a controlled-NOT.
func (s *Set) CNOT(control, target int) {
	if control == target {
		panic(fmt.Sprintf("pauli: CNOT with control == target == %d", control))
	}
	n := s.n
	s.flipWhere(control, target, control+n, target+n)
	s.xorRow(target+n, control+n)
	s.xorRow(control, target)
	s.flipWhere(control, target, control+n, target+n)
}

// CZ conjugates every operator by a controlled-Z.
func (s *Set) CZ(a, b int) {
	s.H(b)
	s.CNOT(a, b)
	s.H(b)
}

// ConjugateGate conjugates every operator by g.
func (s *Set) ConjugateGate(g circuit.Gate) {
	switch g.Kind {
	case circuit.KindCNOT:
		s.CNOT(g.Q0, g.Q1)
	case circuit.KindCZ:
		s.CZ(g.Q0, g.Q1)
	case circuit.KindH:
		s.H(g.Q0)
	case circuit.KindS:
		s.S(g.Q0)
	case circuit.KindSd:
		s.Sd(g.Q0)
	case circuit.KindSqrtX:
		s.SqrtX(g.Q0)
	case circuit.KindSqrtXd:
		s.SqrtXd(g.Q0)
	default:
		panic(fmt.Sprintf("pauli: unknown gate kind %d", g.Kind))
	}
}

// ConjugateCircuit conjugates every operator by each gate of c in order.
func (s *Set) ConjugateCircuit(c *circuit.Circuit) {
	for _, g := range c.Gates {
		s.ConjugateGate(g)
	}
}
