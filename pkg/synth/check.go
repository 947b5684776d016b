package synth

import (
	"errors"
	"fmt"

	"github.com/matzehuels/pauliflow/pkg/circuit"
	"github.com/matzehuels/pauliflow/pkg/pauli"
)

// ErrCheckFailed is returned by [Check] when some operator never reaches
// single-qubit form.
var ErrCheckFailed = errors.New("circuit does not cover every operator")

// CheckError reports which operators a circuit failed to cover.
type CheckError struct {
	Covered int
	Total   int
	Missing []int
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("covered %d of %d operators, first missing %d", e.Covered, e.Total, e.Missing[0])
}

// Unwrap lets errors.Is match [ErrCheckFailed].
func (e *CheckError) Unwrap() error { return ErrCheckFailed }

// Check replays c on a copy of ops gate by gate and verifies that every
// operator has support at most one before the first gate or after some
// gate. ops is not modified.
func Check(ops *pauli.Set, c *circuit.Circuit) error {
	s := ops.Clone()
	if c.Qubits > s.Qubits() {
		return fmt.Errorf("circuit acts on %d qubits, operators on %d", c.Qubits, s.Qubits())
	}
	if err := c.Validate(); err != nil {
		return err
	}

	hit := make([]bool, s.Len())
	covered := 0
	mark := func() {
		for i := range hit {
			if !hit[i] && s.SupportSize(i) <= 1 {
				hit[i] = true
				covered++
			}
		}
	}
	mark()
	for _, g := range c.Gates {
		if covered == len(hit) {
			break
		}
		s.ConjugateGate(g)
		mark()
	}

	if covered == len(hit) {
		return nil
	}
	var missing []int
	for i, ok := range hit {
		if !ok {
			missing = append(missing, i)
		}
	}
	return &CheckError{Covered: covered, Total: len(hit), Missing: missing}
}
