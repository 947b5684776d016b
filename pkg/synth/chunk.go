package synth

import (
	"slices"

	"github.com/matzehuels/pauliflow/pkg/circuit"
	"github.com/matzehuels/pauliflow/pkg/pauli"
)

// Chunk is a gate template over two logical slots, 0 and 1. It holds up to
// two single-qubit basis changes followed by one CNOT between the slots.
type Chunk struct {
	Gates []circuit.Gate
}

// The control slot takes one of {none, H, SqrtX} and the target slot one of
// {none, H, S}, which lets any pair of non-identity letters be rotated to
// X⊗X before the CNOT clears the target. Each of the 9 combinations appears
// twice in adjacent entries: first with CNOT(0, 1), then mirrored with
// CNOT(1, 0).
var chunks = [18]Chunk{
	{[]circuit.Gate{circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.H(1), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.H(0), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.S(1), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.S(0), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.H(0), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.H(1), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.H(0), circuit.H(1), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.H(1), circuit.H(0), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.H(0), circuit.S(1), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.H(1), circuit.S(0), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.SqrtX(0), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.SqrtX(1), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.SqrtX(0), circuit.H(1), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.SqrtX(1), circuit.H(0), circuit.CNOT(1, 0)}},
	{[]circuit.Gate{circuit.SqrtX(0), circuit.S(1), circuit.CNOT(0, 1)}},
	{[]circuit.Gate{circuit.SqrtX(1), circuit.S(0), circuit.CNOT(1, 0)}},
}

// Chunks returns the move library in search order.
func Chunks() []Chunk {
	out := make([]Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = Chunk{Gates: slices.Clone(c.Gates)}
	}
	return out
}

// Bind returns the chunk's gates with slot 0 mapped to q0 and slot 1 to q1.
func (c Chunk) Bind(q0, q1 int) []circuit.Gate {
	slots := []int{q0, q1}
	out := make([]circuit.Gate, len(c.Gates))
	for i, g := range c.Gates {
		out[i] = g.Relabel(slots)
	}
	return out
}

// Apply conjugates every operator in s by the chunk bound to (q0, q1).
func (c Chunk) Apply(s *pauli.Set, q0, q1 int) {
	slots := []int{q0, q1}
	for _, g := range c.Gates {
		s.ConjugateGate(g.Relabel(slots))
	}
}

// Undo reverts [Chunk.Apply].
func (c Chunk) Undo(s *pauli.Set, q0, q1 int) {
	slots := []int{q0, q1}
	for i := len(c.Gates) - 1; i >= 0; i-- {
		s.ConjugateGate(c.Gates[i].Dagger().Relabel(slots))
	}
}

// Entangler returns the chunk's CNOT bound to (q0, q1).
func (c Chunk) Entangler(q0, q1 int) circuit.Gate {
	return c.Gates[len(c.Gates)-1].Relabel([]int{q0, q1})
}
