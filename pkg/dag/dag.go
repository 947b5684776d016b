package dag

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when a node index is out of range or the
	// node has already been removed.
	ErrUnknownNode = errors.New("unknown node")

	// ErrBlocked is returned by [DAG.Remove] when the node still waits on a
	// live predecessor.
	ErrBlocked = errors.New("node has live predecessors")

	// ErrBackwardEdge is returned by [DAG.AddEdge] when an edge does not
	// point from a later node to an earlier one.
	ErrBackwardEdge = errors.New("edge must point to an earlier node")
)

// Commuter is the operator sequence a DAG is built from. *pauli.Set
// satisfies it.
type Commuter interface {
	Len() int
	Commute(i, j int) bool
}

// Edge says node From must wait for node To. To is always less than From.
type Edge struct {
	From int
	To   int
}

// DAG is a dependency graph over nodes 0..Size()-1 whose edges always point
// from a later node to an earlier one, which makes it acyclic by
// construction.
//
// The zero value is an empty graph.
type DAG struct {
	waitsOn [][]int // waitsOn[i]: earlier nodes i depends on
	blocks  [][]int // blocks[j]: later nodes depending on j
	pending []int   // live out-degree
	removed []bool
	live    int
}

// New returns a graph with n nodes and no edges.
func New(n int) *DAG {
	return &DAG{
		waitsOn: make([][]int, n),
		blocks:  make([][]int, n),
		pending: make([]int, n),
		removed: make([]bool, n),
		live:    n,
	}
}

// Build returns the commutation DAG of ops: an edge i → j for every j < i
// such that operators i and j anticommute.
func Build(ops Commuter) *DAG {
	m := ops.Len()
	d := New(m)
	for i := 0; i < m; i++ {
		for j := 0; j < i; j++ {
			if !ops.Commute(i, j) {
				d.link(i, j)
			}
		}
	}
	return d
}

func (d *DAG) link(from, to int) {
	d.waitsOn[from] = append(d.waitsOn[from], to)
	d.blocks[to] = append(d.blocks[to], from)
	if !d.removed[to] {
		d.pending[from]++
	}
}

// AddEdge records that node from waits for the earlier node to.
func (d *DAG) AddEdge(from, to int) error {
	if !d.Contains(from) || !d.Contains(to) {
		return fmt.Errorf("edge %d → %d: %w", from, to, ErrUnknownNode)
	}
	if to >= from {
		return fmt.Errorf("edge %d → %d: %w", from, to, ErrBackwardEdge)
	}
	d.link(from, to)
	return nil
}

// Size returns the number of nodes ever added, removed ones included.
func (d *DAG) Size() int { return len(d.removed) }

// Len returns the number of live nodes.
func (d *DAG) Len() int { return d.live }

// Empty reports whether every node has been removed.
func (d *DAG) Empty() bool { return d.live == 0 }

// Contains reports whether node i exists and has not been removed.
func (d *DAG) Contains(i int) bool {
	return i >= 0 && i < len(d.removed) && !d.removed[i]
}

// OutDegree returns the number of live nodes that node i waits on.
func (d *DAG) OutDegree(i int) int { return d.pending[i] }

// Predecessors returns the live earlier nodes that node i waits on.
func (d *DAG) Predecessors(i int) []int { return d.alive(d.waitsOn[i]) }

// Successors returns the live later nodes that wait on node i.
func (d *DAG) Successors(i int) []int { return d.alive(d.blocks[i]) }

func (d *DAG) alive(ids []int) []int {
	var out []int
	for _, id := range ids {
		if !d.removed[id] {
			out = append(out, id)
		}
	}
	return out
}

// FrontLayer returns, in ascending order, the live nodes with no live
// outgoing edge.
func (d *DAG) FrontLayer() []int {
	var front []int
	for i := range d.removed {
		if !d.removed[i] && d.pending[i] == 0 {
			front = append(front, i)
		}
	}
	return front
}

// Remove deletes a front-layer node.
func (d *DAG) Remove(i int) error {
	if !d.Contains(i) {
		return fmt.Errorf("remove %d: %w", i, ErrUnknownNode)
	}
	if d.pending[i] > 0 {
		return fmt.Errorf("remove %d: %w", i, ErrBlocked)
	}
	d.remove(i)
	return nil
}

// remove deletes live node i, which must have no pending predecessors.
func (d *DAG) remove(i int) {
	if d.pending[i] > 0 {
		panic(fmt.Sprintf("dag: remove %d with %d pending predecessors", i, d.pending[i]))
	}
	d.removed[i] = true
	d.live--
	for _, s := range d.blocks[i] {
		if !d.removed[s] {
			d.pending[s]--
		}
	}
}

// Prune repeatedly removes front-layer nodes for which done reports true,
// until no such node remains. It returns the removed nodes in removal
// order.
func (d *DAG) Prune(done func(i int) bool) []int {
	var removed []int
	queue := d.FrontLayer()
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if !d.Contains(i) || d.pending[i] > 0 || !done(i) {
			continue
		}
		d.remove(i)
		removed = append(removed, i)
		for _, s := range d.blocks[i] {
			if !d.removed[s] && d.pending[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return removed
}

// Edges returns every edge between live nodes, ordered by From then To.
func (d *DAG) Edges() []Edge {
	var edges []Edge
	for from, tos := range d.waitsOn {
		if d.removed[from] {
			continue
		}
		for _, to := range tos {
			if !d.removed[to] {
				edges = append(edges, Edge{From: from, To: to})
			}
		}
	}
	return edges
}

// Nodes returns the live nodes in ascending order.
func (d *DAG) Nodes() []int {
	var nodes []int
	for i, gone := range d.removed {
		if !gone {
			nodes = append(nodes, i)
		}
	}
	return nodes
}
