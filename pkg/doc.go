// Package pkg provides the libraries behind pauliflow, a greedy synthesizer
// of Clifford circuits for sequences of Pauli rotations.
//
// # Overview
//
// Given a list of Pauli strings, pauliflow emits a circuit of CNOT, CZ, H,
// S and sqrt(X) gates such that every operator, at some point of the
// circuit, acts on at most one qubit. Each step picks the two-qubit move
// that most reduces operator support, minimizing either the number or the
// depth of entangling gates.
//
// The typical data flow:
//
//	operator list (text or JSON)
//	         ↓
//	    [pauli] package (bit-packed operator container)
//	         ↓
//	    [dag] package (commutation dependency graph, order-preserving runs)
//	         ↓
//	    [synth] package (greedy drivers, shuffles, check)
//	         ↓
//	    [circuit] JSON, QASM or text
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/pauliflow/pkg/pauli"
//	    "github.com/matzehuels/pauliflow/pkg/synth"
//	)
//
//	ops, _ := pauli.FromStrings([]string{"XXI", "IZZ", "YIY"})
//	c := synth.Synthesize(ops, synth.Options{Metric: synth.Depth})
//	fmt.Println(c.EntanglingCount(), c.EntanglingDepth())
//
// # Main Packages
//
// ## Synthesis
//
// [pauli] - Operator container storing X and Z bits column-wise in 64-bit
// words, with in-place conjugation by every supported gate.
//
// [synth] - Count and depth single steps over the 18 two-qubit chunks,
// the greedy drivers, qubit-relabeling shuffles and the coverage check.
// [synth/matching] holds the maximum-weight matching used by the depth step.
//
// [dag] - Anticommutation graph with front layer extraction and pruning of
// operators that are already single-qubit.
//
// [circuit] - Gates, circuits, entangling count and depth, QASM export.
//
// ## Orchestration
//
// [pipeline] - Validated options, the cached [pipeline.Runner] and result
// statistics shared by the CLI and the HTTP server.
//
// [cache] - Result cache with file, Redis, MongoDB and null backends.
//
// [server] - chi HTTP API for synthesis, checking and graph rendering.
//
// [render/nodelink] - DOT, SVG and PNG drawings of the dependency graph.
//
// ## Support
//
// [io] reads operator lists and circuits. [config] loads the TOML config
// file. [errors] defines coded errors. [observability] exposes hooks for
// synthesis, cache and HTTP events. [buildinfo] carries version data.
package pkg
