package synth

import (
	"math/rand/v2"

	"github.com/matzehuels/pauliflow/pkg/circuit"
	"github.com/matzehuels/pauliflow/pkg/pauli"
)

// Options configures [Synthesize].
type Options struct {
	Metric        Metric
	PreserveOrder bool
	SkipSort      bool

	// Shuffles is the number of extra runs on random qubit relabelings.
	// The cheapest circuit under Metric wins; earlier runs win ties.
	Shuffles int
	// Seed makes the relabelings reproducible.
	Seed uint64

	Progress Progress
}

// Synthesize compiles the operators of ops into a circuit. ops is not
// modified.
func Synthesize(ops *pauli.Set, opts Options) *circuit.Circuit {
	driver := Greedy
	if opts.PreserveOrder {
		driver = GreedyOrdered
	}
	dopts := DriverOptions{Metric: opts.Metric, SkipSort: opts.SkipSort, Progress: opts.Progress}

	best := driver(ops.Clone(), dopts)
	if opts.Shuffles <= 0 || ops.Qubits() < 2 {
		return best
	}

	cost := opts.Metric.Cost(best)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	for range opts.Shuffles {
		shuffled, origin := Shuffle(ops, rng)
		candidate := driver(shuffled, dopts).Relabel(origin)
		if c := opts.Metric.Cost(candidate); c < cost {
			best, cost = candidate, c
		}
	}
	return best
}

// Shuffle returns a copy of ops with its qubits permuted by n*n random
// transpositions. origin[q] is the qubit of ops that qubit q of the copy
// came from, so a circuit for the copy maps back with Relabel(origin).
func Shuffle(ops *pauli.Set, rng *rand.Rand) (*pauli.Set, []int) {
	n := ops.Qubits()
	out := ops.Clone()
	origin := make([]int, n)
	for q := range origin {
		origin[q] = q
	}
	if n < 2 {
		return out, origin
	}
	for range n * n {
		i := rng.IntN(n - 1)
		j := i + 1 + rng.IntN(n-1-i)
		out.SwapQubits(i, j)
		origin[i], origin[j] = origin[j], origin[i]
	}
	return out, origin
}
