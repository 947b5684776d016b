package pauli

import (
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
)

// FromStrings validates ops and builds a set holding them in order, all
// with a positive sign. An empty slice yields an empty set on zero qubits.
func FromStrings(ops []string) (*Set, error) {
	if len(ops) == 0 {
		return NewSet(0), nil
	}
	if err := perrors.ValidateOperators(ops); err != nil {
		return nil, err
	}
	s := NewSet(len(ops[0]))
	for _, op := range ops {
		s.Insert(op, false)
	}
	return s, nil
}

// MustFromStrings is like [FromStrings] but panics on invalid input.
func MustFromStrings(ops ...string) *Set {
	s, err := FromStrings(ops)
	if err != nil {
		panic(err)
	}
	return s
}
