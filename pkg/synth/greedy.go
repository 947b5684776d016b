package synth

import (
	"fmt"

	"github.com/matzehuels/pauliflow/pkg/circuit"
	"github.com/matzehuels/pauliflow/pkg/dag"
	"github.com/matzehuels/pauliflow/pkg/pauli"
)

// Progress receives the number of operators still pending and the number
// of gates emitted so far after every step.
type Progress func(remaining, gates int)

// DriverOptions configures a single run of [Greedy] or [GreedyOrdered].
type DriverOptions struct {
	Metric   Metric
	SkipSort bool
	Progress Progress
}

func (o DriverOptions) report(remaining, gates int) {
	if o.Progress != nil {
		o.Progress(remaining, gates)
	}
}

func mustProgress(fragment *circuit.Circuit, s *pauli.Set) {
	if fragment.Len() == 0 {
		neg, op := s.Get(0)
		panic(fmt.Sprintf("synth: no improving move for operator %v%s", sign(neg), op))
	}
}

func sign(negative bool) string {
	if negative {
		return "-"
	}
	return "+"
}

// Greedy synthesizes s without preserving operator order and empties it.
// Each iteration sorts s by support size, pops trivial operators from the
// front and runs one step of the configured metric.
func Greedy(s *pauli.Set, opts DriverOptions) *circuit.Circuit {
	out := circuit.New(s.Qubits())
	step := opts.Metric.step()
	for {
		if !opts.SkipSort {
			s.SortBySupport()
		}
		for s.Len() > 0 && s.SupportSize(0) <= 1 {
			s.Pop()
		}
		if s.Len() == 0 {
			return out
		}
		fragment := step(s)
		mustProgress(fragment, s)
		out.Extend(fragment)
		opts.report(s.Len(), out.Len())
	}
}

// GreedyOrdered synthesizes s so that no two anticommuting operators are
// brought to single-qubit form out of their input order. Steps run on a
// bucket holding the front layer of the commutation DAG and are mirrored
// onto s. The operators of s are conjugated but never removed.
func GreedyOrdered(s *pauli.Set, opts DriverOptions) *circuit.Circuit {
	out := circuit.New(s.Qubits())
	step := opts.Metric.step()

	graph := dag.Build(s)
	trivial := func(i int) bool { return s.SupportSize(i) <= 1 }
	graph.Prune(trivial)

	bucket := pauli.NewSet(s.Qubits())
	for !graph.Empty() {
		bucket.Clear()
		for _, i := range graph.FrontLayer() {
			neg, x, z := s.GetBits(i)
			bucket.InsertBits(x, z, neg)
		}
		if !opts.SkipSort {
			bucket.SortBySupport()
		}

		fragment := step(bucket)
		mustProgress(fragment, bucket)
		s.ConjugateCircuit(fragment)
		out.Extend(fragment)

		graph.Prune(trivial)
		opts.report(graph.Len(), out.Len())
	}
	return out
}
