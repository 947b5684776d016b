package synth

import (
	"github.com/matzehuels/pauliflow/pkg/circuit"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/pauli"
)

// Metric selects what the synthesizer minimizes.
type Metric uint8

const (
	// Count minimizes the number of entangling gates.
	Count Metric = iota
	// Depth minimizes the number of entangling layers.
	Depth
)

// ParseMetric parses "count" or "depth".
func ParseMetric(name string) (Metric, error) {
	if err := perrors.ValidateMetric(name); err != nil {
		return Count, err
	}
	if name == "depth" {
		return Depth, nil
	}
	return Count, nil
}

// String returns the metric name accepted by [ParseMetric].
func (m Metric) String() string {
	if m == Depth {
		return "depth"
	}
	return "count"
}

// Cost evaluates c under the metric.
func (m Metric) Cost(c *circuit.Circuit) int {
	if m == Depth {
		return c.EntanglingDepth()
	}
	return c.EntanglingCount()
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Metric) step() func(*pauli.Set) *circuit.Circuit {
	if m == Depth {
		return DepthStep
	}
	return CountStep
}
