package circuit

import (
	"fmt"
	"strings"
)

// Circuit is an ordered gate list over a register of Qubits qubits.
// The zero value is an empty circuit on zero qubits.
type Circuit struct {
	Qubits int    `json:"qubits"`
	Gates  []Gate `json:"gates"`
}

// New returns an empty circuit on n qubits.
func New(n int) *Circuit {
	return &Circuit{Qubits: n, Gates: []Gate{}}
}

// Append adds gates to the end of the circuit.
func (c *Circuit) Append(gates ...Gate) {
	c.Gates = append(c.Gates, gates...)
}

// Extend appends every gate of other. It panics if other acts on a
// different number of qubits.
func (c *Circuit) Extend(other *Circuit) {
	if other == nil {
		return
	}
	if other.Qubits != c.Qubits {
		panic(fmt.Sprintf("circuit: extend %d-qubit circuit with %d-qubit circuit", c.Qubits, other.Qubits))
	}
	c.Gates = append(c.Gates, other.Gates...)
}

// Len returns the number of gates.
func (c *Circuit) Len() int { return len(c.Gates) }

// Clone returns a deep copy.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Qubits: c.Qubits, Gates: make([]Gate, len(c.Gates))}
	copy(out.Gates, c.Gates)
	return out
}

// Dagger returns the inverse circuit: gates reversed, each one inverted.
func (c *Circuit) Dagger() *Circuit {
	out := &Circuit{Qubits: c.Qubits, Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		out.Gates[len(c.Gates)-1-i] = g.Dagger()
	}
	return out
}

// Relabel returns a copy with every operand q replaced by perm[q].
// perm must be a permutation of [0, Qubits).
func (c *Circuit) Relabel(perm []int) *Circuit {
	out := &Circuit{Qubits: c.Qubits, Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		out.Gates[i] = g.Relabel(perm)
	}
	return out
}

// EntanglingCount returns the number of CNOT and CZ gates.
func (c *Circuit) EntanglingCount() int {
	return c.count(Gate.IsEntangling)
}

// EntanglingDepth returns the depth of the circuit counting only
// entangling gates.
func (c *Circuit) EntanglingDepth() int {
	return c.depth(Gate.IsEntangling)
}

// CNOTCount returns the number of CNOT gates.
func (c *Circuit) CNOTCount() int {
	return c.count(isCNOT)
}

// CNOTDepth returns the depth of the circuit counting only CNOT gates.
func (c *Circuit) CNOTDepth() int {
	return c.depth(isCNOT)
}

func isCNOT(g Gate) bool { return g.Kind == KindCNOT }

func (c *Circuit) count(keep func(Gate) bool) int {
	n := 0
	for _, g := range c.Gates {
		if keep(g) {
			n++
		}
	}
	return n
}

func (c *Circuit) depth(keep func(Gate) bool) int {
	levels := make([]int, c.register())
	deepest := 0
	for _, g := range c.Gates {
		if !keep(g) {
			continue
		}
		d := max(levels[g.Q0], levels[g.Q1]) + 1
		levels[g.Q0], levels[g.Q1] = d, d
		deepest = max(deepest, d)
	}
	return deepest
}

// register returns a register size large enough for every operand, so
// metrics stay well defined on hand-built circuits with a stale Qubits.
func (c *Circuit) register() int {
	n := c.Qubits
	for _, g := range c.Gates {
		n = max(n, g.Q0+1, g.Q1+1)
	}
	return n
}

// Validate reports the first gate whose operands fall outside the register.
func (c *Circuit) Validate() error {
	for i, g := range c.Gates {
		for _, q := range g.Qubits() {
			if q < 0 || q >= c.Qubits {
				return fmt.Errorf("gate %d (%s): qubit %d out of range [0, %d)", i, g, q, c.Qubits)
			}
		}
		if g.IsEntangling() && g.Q0 == g.Q1 {
			return fmt.Errorf("gate %d (%s): operands must differ", i, g)
		}
	}
	return nil
}

var qasmNames = [...]string{
	KindCNOT:   "cx",
	KindCZ:     "cz",
	KindH:      "h",
	KindS:      "s",
	KindSd:     "sdg",
	KindSqrtX:  "sx",
	KindSqrtXd: "sxdg",
}

// QASM renders the circuit as an OpenQASM 2.0 program.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.Qubits)
	for _, g := range c.Gates {
		if g.IsEntangling() {
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", qasmNames[g.Kind], g.Q0, g.Q1)
		} else {
			fmt.Fprintf(&sb, "%s q[%d];\n", qasmNames[g.Kind], g.Q0)
		}
	}
	return sb.String()
}

// String lists the gates one per line.
func (c *Circuit) String() string {
	var sb strings.Builder
	for _, g := range c.Gates {
		sb.WriteString(g.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
