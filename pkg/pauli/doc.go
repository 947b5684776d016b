// Package pauli provides a bit-packed container of signed Pauli operators.
//
// # Overview
//
// A [Set] stores an ordered sequence of Pauli operators over a fixed number
// of qubits n. Each operator is a string over {I, X, Y, Z} plus a sign bit.
// Storage is a bit matrix with 2n rows: row q holds the X component of qubit
// q for every operator, row q+n holds the Z component. Column k of the
// matrix is operator k, packed into 64-bit words.
//
//	letter  x  z
//	I       0  0
//	X       1  0
//	Z       0  1
//	Y       1  1
//
// The layout makes the two queries the synthesis loop performs in its inner
// loop cheap: conjugating every operator by a gate touches one or two rows
// with word-wide XORs, and [Set.CountLeadingIdentity] scans two rows with
// trailing-zero counts.
//
// # Conjugation
//
// [Set.H], [Set.S], [Set.Sd], [Set.SqrtX], [Set.SqrtXd], [Set.CNOT] and
// [Set.CZ] replace every stored operator P with U P U† for the named gate U,
// updating signs so the result is exact. [Set.ConjugateGate] dispatches on a
// [circuit.Gate] and [Set.ConjugateCircuit] applies a whole circuit.
//
// # Queue Semantics
//
// [Set.Pop] removes the front operator in O(n) by zeroing its column and
// advancing a start offset. Popped columns read as identity, so the
// remaining operators keep their storage positions until the next
// [Set.SortBySupport] or [Set.Clear] compacts the container.
//
// # Validation
//
// [Set.Insert] is permissive and treats unknown letters as identity.
// [FromStrings] validates its input and is the entry point for
// user-supplied operators.
package pauli
