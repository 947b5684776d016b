// Package synth compiles sequences of Pauli rotations into Clifford
// circuits with a greedy local search.
//
// # Overview
//
// The synthesizer repeatedly picks a two-qubit move from a fixed library of
// 18 [Chunk] templates, conjugates every pending operator by it, and drops
// operators whose support has collapsed to a single qubit. The emitted
// moves, concatenated, form a circuit that brings every input operator to
// single-qubit form at some point, which is where its rotation is applied.
//
// # Metrics
//
// Two policies pick the next move:
//
//   - [Count] ([CountStep]) commits the single best chunk on a pair of
//     qubits in the support of the front operator
//   - [Depth] ([DepthStep]) scores the best chunk of every qubit pair and
//     commits a maximum-weight matching of them as one parallel layer
//
// A move scores the growth of [pauli.Set.CountLeadingIdentity] on its two
// qubits. Ties resolve by pair order, then by chunk order, so synthesis is
// deterministic.
//
// # Drivers
//
// [Greedy] is free to reorder operators: it sorts by support size, pops
// trivial operators and steps until the set is empty. [GreedyOrdered]
// respects the order of anticommuting operators by only working on the
// front layer of the commutation DAG from package dag.
//
// [Synthesize] wraps both drivers, optionally retrying on random qubit
// relabelings, and never mutates its input. [Check] replays a circuit and
// verifies that every operator was brought to single-qubit form.
package synth
