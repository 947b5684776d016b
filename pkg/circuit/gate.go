package circuit

import (
	"encoding/json"
	"fmt"
)

// Kind identifies one of the supported Clifford gates.
type Kind uint8

const (
	KindCNOT Kind = iota
	KindCZ
	KindH
	KindS
	KindSd
	KindSqrtX
	KindSqrtXd
)

var kindNames = [...]string{
	KindCNOT:   "CNOT",
	KindCZ:     "CZ",
	KindH:      "H",
	KindS:      "S",
	KindSd:     "Sd",
	KindSqrtX:  "SqrtX",
	KindSqrtXd: "SqrtXd",
}

// String returns the canonical gate name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Arity returns the number of qubit operands the gate takes.
func (k Kind) Arity() int {
	if k == KindCNOT || k == KindCZ {
		return 2
	}
	return 1
}

// Gate is a single Clifford gate bound to concrete qubits.
// For CNOT, Q0 is the control and Q1 the target. Single-qubit gates
// ignore Q1.
type Gate struct {
	Kind Kind
	Q0   int
	Q1   int
}

// CNOT returns a controlled-NOT gate.
func CNOT(control, target int) Gate { return Gate{Kind: KindCNOT, Q0: control, Q1: target} }

// CZ returns a controlled-Z gate.
func CZ(a, b int) Gate { return Gate{Kind: KindCZ, Q0: a, Q1: b} }

// H returns a Hadamard gate.
func H(q int) Gate { return Gate{Kind: KindH, Q0: q} }

// S returns a phase gate.
func S(q int) Gate { return Gate{Kind: KindS, Q0: q} }

// Sd returns the inverse phase gate.
func Sd(q int) Gate { return Gate{Kind: KindSd, Q0: q} }

// SqrtX returns a square root of X gate.
func SqrtX(q int) Gate { return Gate{Kind: KindSqrtX, Q0: q} }

// SqrtXd returns the inverse of [SqrtX].
func SqrtXd(q int) Gate { return Gate{Kind: KindSqrtXd, Q0: q} }

// IsEntangling reports whether the gate acts on two qubits.
func (g Gate) IsEntangling() bool { return g.Kind.Arity() == 2 }

// Qubits returns the operands of the gate in order.
func (g Gate) Qubits() []int {
	if g.IsEntangling() {
		return []int{g.Q0, g.Q1}
	}
	return []int{g.Q0}
}

// Dagger returns the inverse gate.
func (g Gate) Dagger() Gate {
	switch g.Kind {
	case KindS:
		g.Kind = KindSd
	case KindSd:
		g.Kind = KindS
	case KindSqrtX:
		g.Kind = KindSqrtXd
	case KindSqrtXd:
		g.Kind = KindSqrtX
	}
	return g
}

// Relabel maps every operand q to perm[q].
func (g Gate) Relabel(perm []int) Gate {
	g.Q0 = perm[g.Q0]
	if g.IsEntangling() {
		g.Q1 = perm[g.Q1]
	}
	return g
}

// String renders the gate as Name(q0) or Name(q0, q1).
func (g Gate) String() string {
	if g.IsEntangling() {
		return fmt.Sprintf("%s(%d, %d)", g.Kind, g.Q0, g.Q1)
	}
	return fmt.Sprintf("%s(%d)", g.Kind, g.Q0)
}

// ParseGate builds a gate from its canonical name and operands.
func ParseGate(name string, qubits []int) (Gate, error) {
	for k, n := range kindNames {
		if n != name {
			continue
		}
		kind := Kind(k)
		if len(qubits) != kind.Arity() {
			return Gate{}, fmt.Errorf("gate %s takes %d qubits, got %d", name, kind.Arity(), len(qubits))
		}
		for _, q := range qubits {
			if q < 0 {
				return Gate{}, fmt.Errorf("gate %s: negative qubit %d", name, q)
			}
		}
		g := Gate{Kind: kind, Q0: qubits[0]}
		if kind.Arity() == 2 {
			if qubits[0] == qubits[1] {
				return Gate{}, fmt.Errorf("gate %s: operands must differ", name)
			}
			g.Q1 = qubits[1]
		}
		return g, nil
	}
	return Gate{}, fmt.Errorf("unknown gate %q", name)
}

// MarshalJSON encodes the gate as a [name, [qubits...]] tuple.
func (g Gate) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{g.Kind.String(), g.Qubits()})
}

// UnmarshalJSON decodes the tuple form written by [Gate.MarshalJSON].
func (g *Gate) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("gate: want [name, qubits], got %d elements", len(raw))
	}
	var name string
	var qubits []int
	if err := json.Unmarshal(raw[0], &name); err != nil {
		return fmt.Errorf("gate name: %w", err)
	}
	if err := json.Unmarshal(raw[1], &qubits); err != nil {
		return fmt.Errorf("gate qubits: %w", err)
	}
	parsed, err := ParseGate(name, qubits)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
