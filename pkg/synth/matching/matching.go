// Package matching computes maximum-weight matchings on general graphs.
//
// [MaxWeight] implements Edmonds' blossom algorithm in its primal-dual form
// and runs in O(V^3). Weights are integers; edges with non-positive weight
// never improve a matching and may be omitted by callers.
package matching

// Edge is an undirected weighted edge between vertices U and V.
type Edge struct {
	U, V   int
	Weight int
}

// MaxWeight returns a maximum-weight matching of the graph on n vertices
// with the given edges. The result maps every vertex to its mate, or -1
// when unmatched. Among matchings of equal weight the result is
// deterministic for a given edge order.
func MaxWeight(n int, edges []Edge) []int {
	mate := make([]int, n)
	for i := range mate {
		mate[i] = -1
	}
	if n == 0 || len(edges) == 0 {
		return mate
	}
	m := newMatcher(n, edges)
	m.run()
	for v := 0; v < n; v++ {
		if m.mate[v] >= 0 {
			mate[v] = m.endpoint[m.mate[v]]
		}
	}
	return mate
}

// Pairs returns the matched pairs (u, v) with u < v, ordered by u.
func Pairs(mate []int) [][2]int {
	var pairs [][2]int
	for u, v := range mate {
		if v > u {
			pairs = append(pairs, [2]int{u, v})
		}
	}
	return pairs
}

// Weight sums the weight of the edges whose endpoints are mates.
func Weight(mate []int, edges []Edge) int {
	total := 0
	for _, e := range edges {
		if e.U != e.V && mate[e.U] == e.V {
			total += e.Weight
		}
	}
	return total
}

// Labels of the alternating forest. labelBreadcrumb marks blossoms visited
// by scanBlossom.
const (
	labelFree       = 0
	labelS          = 1
	labelT          = 2
	labelBreadcrumb = 4
)

type matcher struct {
	nvertex int
	edges   []Edge

	// endpoint[p] is the vertex at endpoint p; edge k has endpoints 2k and
	// 2k+1.
	endpoint []int
	// neighbend[v] lists the remote endpoints of edges incident to v.
	neighbend [][]int

	// mate[v] is the remote endpoint of v's matched edge, or -1.
	mate []int

	label            []int
	labelend         []int
	inblossom        []int
	blossomparent    []int
	blossomchilds    [][]int
	blossombase      []int
	blossomendps     [][]int
	bestedge         []int
	blossombestedges [][]int
	unusedblossoms   []int
	dualvar          []int
	allowedge        []bool
	queue            []int
}

func newMatcher(n int, edges []Edge) *matcher {
	m := &matcher{nvertex: n, edges: make([]Edge, len(edges))}
	maxweight := 0
	for k, e := range edges {
		// Doubling keeps every dual update integral.
		m.edges[k] = Edge{U: e.U, V: e.V, Weight: 2 * e.Weight}
		maxweight = max(maxweight, 2*e.Weight)
	}

	m.endpoint = make([]int, 2*len(edges))
	m.neighbend = make([][]int, n)
	for k, e := range m.edges {
		m.endpoint[2*k] = e.U
		m.endpoint[2*k+1] = e.V
		if e.U == e.V {
			continue
		}
		m.neighbend[e.U] = append(m.neighbend[e.U], 2*k+1)
		m.neighbend[e.V] = append(m.neighbend[e.V], 2*k)
	}

	m.mate = filled(n, -1)
	m.label = make([]int, 2*n)
	m.labelend = filled(2*n, -1)
	m.inblossom = make([]int, n)
	for v := range m.inblossom {
		m.inblossom[v] = v
	}
	m.blossomparent = filled(2*n, -1)
	m.blossomchilds = make([][]int, 2*n)
	m.blossombase = filled(2*n, -1)
	for v := 0; v < n; v++ {
		m.blossombase[v] = v
	}
	m.blossomendps = make([][]int, 2*n)
	m.bestedge = filled(2*n, -1)
	m.blossombestedges = make([][]int, 2*n)
	for b := n; b < 2*n; b++ {
		m.unusedblossoms = append(m.unusedblossoms, b)
	}
	m.dualvar = make([]int, 2*n)
	for v := 0; v < n; v++ {
		m.dualvar[v] = maxweight
	}
	m.allowedge = make([]bool, len(edges))
	return m
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func (m *matcher) slack(k int) int {
	e := m.edges[k]
	return m.dualvar[e.U] + m.dualvar[e.V] - 2*e.Weight
}

func (m *matcher) leaves(b int) []int {
	if b < m.nvertex {
		return []int{b}
	}
	var out []int
	for _, t := range m.blossomchilds[b] {
		if t < m.nvertex {
			out = append(out, t)
		} else {
			out = append(out, m.leaves(t)...)
		}
	}
	return out
}

// assignLabel labels vertex w and its top-level blossom with t, reached
// through endpoint p.
func (m *matcher) assignLabel(w, t, p int) {
	b := m.inblossom[w]
	m.label[w], m.label[b] = t, t
	m.labelend[w], m.labelend[b] = p, p
	m.bestedge[w], m.bestedge[b] = -1, -1
	switch t {
	case labelS:
		m.queue = append(m.queue, m.leaves(b)...)
	case labelT:
		base := m.blossombase[b]
		m.assignLabel(m.endpoint[m.mate[base]], labelS, m.mate[base]^1)
	}
}

// scanBlossom traces back from v and w to find a new blossom base, or
// returns -1 when the paths reach distinct roots.
func (m *matcher) scanBlossom(v, w int) int {
	var path []int
	base := -1
	for v != -1 || w != -1 {
		b := m.inblossom[v]
		if m.label[b]&labelBreadcrumb != 0 {
			base = m.blossombase[b]
			break
		}
		path = append(path, b)
		m.label[b] = labelS | labelBreadcrumb
		if m.labelend[b] == -1 {
			v = -1
		} else {
			v = m.endpoint[m.labelend[b]]
			b = m.inblossom[v]
			v = m.endpoint[m.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		m.label[b] = labelS
	}
	return base
}

// addBlossom contracts the odd cycle closed by edge k with the given base.
func (m *matcher) addBlossom(base, k int) {
	v, w := m.edges[k].U, m.edges[k].V
	bb := m.inblossom[base]
	bv := m.inblossom[v]
	bw := m.inblossom[w]

	b := m.unusedblossoms[len(m.unusedblossoms)-1]
	m.unusedblossoms = m.unusedblossoms[:len(m.unusedblossoms)-1]
	m.blossombase[b] = base
	m.blossomparent[b] = -1
	m.blossomparent[bb] = b

	var path, endps []int
	for bv != bb {
		m.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, m.labelend[bv])
		v = m.endpoint[m.labelend[bv]]
		bv = m.inblossom[v]
	}
	path = append(path, bb)
	reverse(path)
	reverse(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		m.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, m.labelend[bw]^1)
		w = m.endpoint[m.labelend[bw]]
		bw = m.inblossom[w]
	}
	m.blossomchilds[b] = path
	m.blossomendps[b] = endps

	m.label[b] = labelS
	m.labelend[b] = m.labelend[bb]
	m.dualvar[b] = 0
	for _, leaf := range m.leaves(b) {
		if m.label[m.inblossom[leaf]] == labelT {
			m.queue = append(m.queue, leaf)
		}
		m.inblossom[leaf] = b
	}

	bestedgeto := filled(2*m.nvertex, -1)
	for _, sub := range path {
		var nblists [][]int
		if m.blossombestedges[sub] == nil {
			for _, leaf := range m.leaves(sub) {
				list := make([]int, len(m.neighbend[leaf]))
				for i, p := range m.neighbend[leaf] {
					list[i] = p / 2
				}
				nblists = append(nblists, list)
			}
		} else {
			nblists = [][]int{m.blossombestedges[sub]}
		}
		for _, list := range nblists {
			for _, ek := range list {
				j := m.edges[ek].V
				if m.inblossom[j] == b {
					j = m.edges[ek].U
				}
				bj := m.inblossom[j]
				if bj != b && m.label[bj] == labelS &&
					(bestedgeto[bj] == -1 || m.slack(ek) < m.slack(bestedgeto[bj])) {
					bestedgeto[bj] = ek
				}
			}
		}
		m.blossombestedges[sub] = nil
		m.bestedge[sub] = -1
	}

	var best []int
	for _, ek := range bestedgeto {
		if ek != -1 {
			best = append(best, ek)
		}
	}
	m.blossombestedges[b] = best
	m.bestedge[b] = -1
	for _, ek := range best {
		if m.bestedge[b] == -1 || m.slack(ek) < m.slack(m.bestedge[b]) {
			m.bestedge[b] = ek
		}
	}
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// at indexes s with Python-style negative offsets.
func at(s []int, i int) int {
	if i < 0 {
		i += len(s)
	}
	return s[i]
}

// expandBlossom dissolves blossom b into its sub-blossoms.
func (m *matcher) expandBlossom(b int, endstage bool) {
	for _, s := range m.blossomchilds[b] {
		m.blossomparent[s] = -1
		switch {
		case s < m.nvertex:
			m.inblossom[s] = s
		case endstage && m.dualvar[s] == 0:
			m.expandBlossom(s, endstage)
		default:
			for _, leaf := range m.leaves(s) {
				m.inblossom[leaf] = s
			}
		}
	}

	if !endstage && m.label[b] == labelT {
		childs := m.blossomchilds[b]
		endps := m.blossomendps[b]
		entrychild := m.inblossom[m.endpoint[m.labelend[b]^1]]
		j := indexOf(childs, entrychild)
		var jstep, endptrick int
		if j&1 != 0 {
			j -= len(childs)
			jstep = 1
		} else {
			jstep = -1
			endptrick = 1
		}

		p := m.labelend[b]
		for j != 0 {
			m.label[m.endpoint[p^1]] = labelFree
			m.label[m.endpoint[at(endps, j-endptrick)^endptrick^1]] = labelFree
			m.assignLabel(m.endpoint[p^1], labelT, p)
			m.allowedge[at(endps, j-endptrick)/2] = true
			j += jstep
			p = at(endps, j-endptrick) ^ endptrick
			m.allowedge[p/2] = true
			j += jstep
		}

		bv := at(childs, j)
		m.label[m.endpoint[p^1]] = labelT
		m.label[bv] = labelT
		m.labelend[m.endpoint[p^1]] = p
		m.labelend[bv] = p
		m.bestedge[bv] = -1
		j += jstep
		for at(childs, j) != entrychild {
			bv = at(childs, j)
			if m.label[bv] == labelS {
				j += jstep
				continue
			}
			leaf := -1
			for _, v := range m.leaves(bv) {
				if m.label[v] != labelFree {
					leaf = v
					break
				}
			}
			if leaf >= 0 {
				m.label[leaf] = labelFree
				m.label[m.endpoint[m.mate[m.blossombase[bv]]]] = labelFree
				m.assignLabel(leaf, labelT, m.labelend[leaf])
			}
			j += jstep
		}
	}

	m.label[b] = -1
	m.labelend[b] = -1
	m.blossomchilds[b] = nil
	m.blossomendps[b] = nil
	m.blossombase[b] = -1
	m.blossombestedges[b] = nil
	m.bestedge[b] = -1
	m.unusedblossoms = append(m.unusedblossoms, b)
}

// augmentBlossom swaps matched and unmatched edges along the even path
// from vertex v to the base of blossom b, making v the new base.
func (m *matcher) augmentBlossom(b, v int) {
	t := v
	for m.blossomparent[t] != b {
		t = m.blossomparent[t]
	}
	if t >= m.nvertex {
		m.augmentBlossom(t, v)
	}

	childs := m.blossomchilds[b]
	endps := m.blossomendps[b]
	i := indexOf(childs, t)
	j := i
	var jstep, endptrick int
	if i&1 != 0 {
		j -= len(childs)
		jstep = 1
	} else {
		jstep = -1
		endptrick = 1
	}

	for j != 0 {
		j += jstep
		t = at(childs, j)
		p := at(endps, j-endptrick) ^ endptrick
		if t >= m.nvertex {
			m.augmentBlossom(t, m.endpoint[p])
		}
		j += jstep
		t = at(childs, j)
		if t >= m.nvertex {
			m.augmentBlossom(t, m.endpoint[p^1])
		}
		m.mate[m.endpoint[p]] = p ^ 1
		m.mate[m.endpoint[p^1]] = p
	}

	m.blossomchilds[b] = append(append([]int{}, childs[i:]...), childs[:i]...)
	m.blossomendps[b] = append(append([]int{}, endps[i:]...), endps[:i]...)
	m.blossombase[b] = m.blossombase[m.blossomchilds[b][0]]
}

// augmentMatching flips the augmenting path through edge k.
func (m *matcher) augmentMatching(k int) {
	v, w := m.edges[k].U, m.edges[k].V
	for _, start := range [2][2]int{{v, 2*k + 1}, {w, 2 * k}} {
		s, p := start[0], start[1]
		for {
			bs := m.inblossom[s]
			if bs >= m.nvertex {
				m.augmentBlossom(bs, s)
			}
			m.mate[s] = p
			if m.labelend[bs] == -1 {
				break
			}
			t := m.endpoint[m.labelend[bs]]
			bt := m.inblossom[t]
			s = m.endpoint[m.labelend[bt]]
			j := m.endpoint[m.labelend[bt]^1]
			if bt >= m.nvertex {
				m.augmentBlossom(bt, j)
			}
			m.mate[j] = m.labelend[bt]
			p = m.labelend[bt] ^ 1
		}
	}
}

func (m *matcher) run() {
	n := m.nvertex
	for stage := 0; stage < n; stage++ {
		for i := range m.label {
			m.label[i] = labelFree
			m.bestedge[i] = -1
		}
		for b := n; b < 2*n; b++ {
			m.blossombestedges[b] = nil
		}
		for k := range m.allowedge {
			m.allowedge[k] = false
		}
		m.queue = m.queue[:0]

		for v := 0; v < n; v++ {
			if m.mate[v] == -1 && m.label[m.inblossom[v]] == labelFree {
				m.assignLabel(v, labelS, -1)
			}
		}

		augmented := false
		for {
			for len(m.queue) > 0 && !augmented {
				v := m.queue[len(m.queue)-1]
				m.queue = m.queue[:len(m.queue)-1]

				for _, p := range m.neighbend[v] {
					k := p / 2
					w := m.endpoint[p]
					if m.inblossom[v] == m.inblossom[w] {
						continue
					}
					kslack := 0
					if !m.allowedge[k] {
						kslack = m.slack(k)
						if kslack <= 0 {
							m.allowedge[k] = true
						}
					}
					switch {
					case m.allowedge[k]:
						switch {
						case m.label[m.inblossom[w]] == labelFree:
							m.assignLabel(w, labelT, p^1)
						case m.label[m.inblossom[w]] == labelS:
							if base := m.scanBlossom(v, w); base >= 0 {
								m.addBlossom(base, k)
							} else {
								m.augmentMatching(k)
								augmented = true
							}
						case m.label[w] == labelFree:
							m.label[w] = labelT
							m.labelend[w] = p ^ 1
						}
					case m.label[m.inblossom[w]] == labelS:
						b := m.inblossom[v]
						if m.bestedge[b] == -1 || kslack < m.slack(m.bestedge[b]) {
							m.bestedge[b] = k
						}
					case m.label[w] == labelFree:
						if m.bestedge[w] == -1 || kslack < m.slack(m.bestedge[w]) {
							m.bestedge[w] = k
						}
					}
					if augmented {
						break
					}
				}
			}
			if augmented {
				break
			}

			// No augmenting path under the current duals; compute the
			// largest dual step that keeps every slack non-negative.
			deltatype := 1
			delta := m.dualvar[0]
			for v := 1; v < n; v++ {
				delta = min(delta, m.dualvar[v])
			}
			deltaedge, deltablossom := -1, -1

			for v := 0; v < n; v++ {
				if m.label[m.inblossom[v]] == labelFree && m.bestedge[v] != -1 {
					if d := m.slack(m.bestedge[v]); d < delta {
						delta = d
						deltatype = 2
						deltaedge = m.bestedge[v]
					}
				}
			}
			for b := 0; b < 2*n; b++ {
				if m.blossomparent[b] == -1 && m.label[b] == labelS && m.bestedge[b] != -1 {
					if d := m.slack(m.bestedge[b]) / 2; d < delta {
						delta = d
						deltatype = 3
						deltaedge = m.bestedge[b]
					}
				}
			}
			for b := n; b < 2*n; b++ {
				if m.blossombase[b] >= 0 && m.blossomparent[b] == -1 &&
					m.label[b] == labelT && m.dualvar[b] < delta {
					delta = m.dualvar[b]
					deltatype = 4
					deltablossom = b
				}
			}

			for v := 0; v < n; v++ {
				switch m.label[m.inblossom[v]] {
				case labelS:
					m.dualvar[v] -= delta
				case labelT:
					m.dualvar[v] += delta
				}
			}
			for b := n; b < 2*n; b++ {
				if m.blossombase[b] >= 0 && m.blossomparent[b] == -1 {
					switch m.label[b] {
					case labelS:
						m.dualvar[b] += delta
					case labelT:
						m.dualvar[b] -= delta
					}
				}
			}

			switch deltatype {
			case 1:
			case 2:
				m.allowedge[deltaedge] = true
				i, j := m.edges[deltaedge].U, m.edges[deltaedge].V
				if m.label[m.inblossom[i]] == labelFree {
					i = j
				}
				m.queue = append(m.queue, i)
			case 3:
				m.allowedge[deltaedge] = true
				m.queue = append(m.queue, m.edges[deltaedge].U)
			case 4:
				m.expandBlossom(deltablossom, false)
			}
			if deltatype == 1 {
				break
			}
		}

		if !augmented {
			break
		}

		for b := n; b < 2*n; b++ {
			if m.blossomparent[b] == -1 && m.blossombase[b] >= 0 &&
				m.label[b] == labelS && m.dualvar[b] == 0 {
				m.expandBlossom(b, true)
			}
		}
	}
}
