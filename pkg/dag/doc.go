// Package dag provides the commutation dependency graph that orders Pauli
// rotations during order-preserving synthesis.
//
// # Overview
//
// A sequence of Pauli rotations can be reordered freely as long as no two
// anticommuting rotations swap places. [Build] captures that constraint:
// node i is the i-th operator of the input, and an edge i → j (j < i) means
// operator i anticommutes with the earlier operator j and must wait until j
// has been synthesized.
//
//	ops := pauli.MustFromStrings("XX", "ZI", "IZ")
//	g := dag.Build(ops)
//	g.FrontLayer() // [0]: ZI and IZ both anticommute with XX
//
// # Front Layer
//
// [DAG.FrontLayer] returns the live nodes with no live outgoing edge. Their
// operators pairwise commute, so they can be synthesized together in any
// order.
//
// # Removal
//
// Nodes are removed with [DAG.Remove] once synthesized. Removal is O(1) plus
// the node's in-degree: the node is tombstoned and the outgoing-edge counters
// of its waiting successors are decremented, so adjacency is filtered lazily
// rather than rebuilt. [DAG.Prune] removes front-layer nodes matching a
// predicate until a fixed point is reached.
//
// # Concurrency
//
// DAG is not safe for concurrent use without external synchronization.
package dag
