// Package circuit models Clifford circuits over a fixed register of qubits.
//
// # Overview
//
// A [Circuit] is an ordered list of [Gate] values plus the number of qubits it
// acts on. Gates are a closed set: two entangling gates ([CNOT], [CZ]) and five
// single-qubit gates ([H], [S], [Sd], [SqrtX], [SqrtXd]). Gate operands are
// qubit indices in the range [0, Qubits).
//
// # Metrics
//
// Synthesis quality is judged on entangling gates only:
//
//   - [Circuit.EntanglingCount] counts CNOT and CZ gates
//   - [Circuit.EntanglingDepth] is the longest chain of entangling gates
//     sharing a qubit
//
// [Circuit.CNOTCount] and [Circuit.CNOTDepth] restrict the same metrics to
// CNOT gates.
//
// # Serialization
//
// Gates serialize to JSON as a two-element tuple of name and operands, for
// example ["CNOT",[0,1]]. [ParseGate] accepts the same names. [Circuit.QASM]
// emits an OpenQASM 2.0 program using the qelib1 gate names.
package circuit
