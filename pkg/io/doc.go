// Package io reads operator lists and reads and writes circuits.
//
// # Operator lists
//
// Operators are Pauli strings over {I, X, Y, Z} that all share one length.
// Two encodings are accepted and detected from the first non-blank byte:
//
// Plain text, one operator per line. Blank lines and lines starting with
// '#' are ignored, surrounding whitespace is trimmed:
//
//	# two-qubit rotations
//	XX
//	ZZ
//
// JSON, either a bare array or an object with an "operators" array:
//
//	["XX", "ZZ"]
//	{"operators": ["XX", "ZZ"]}
//
// # Circuits
//
// Circuits use the JSON form of [circuit.Circuit]: the register width and a
// list of [name, [qubits...]] gate tuples.
//
//	{"qubits": 2, "gates": [["H", [0]], ["CNOT", [0, 1]]]}
//
// Decoded circuits are validated; errors carry codes from
// [github.com/matzehuels/pauliflow/pkg/errors].
package io
