package pauli

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

const wordBits = 64

// Set is an ordered, bit-packed sequence of signed Pauli operators on a
// fixed number of qubits. The zero value is a usable set on zero qubits.
type Set struct {
	n          int
	rows       [][]uint64 // rows[q]: X bits of qubit q; rows[q+n]: Z bits
	phases     []uint64
	noperators int // columns in use, popped ones included
	start      int // first live column
}

// NewSet returns an empty set on n qubits.
func NewSet(n int) *Set {
	if n < 0 {
		panic(fmt.Sprintf("pauli: negative qubit count %d", n))
	}
	return &Set{n: n, rows: make([][]uint64, 2*n)}
}

// Qubits returns the number of qubits every operator acts on.
func (s *Set) Qubits() int { return s.n }

// Len returns the number of live operators.
func (s *Set) Len() int { return s.noperators - s.start }

func (s *Set) strides() int { return len(s.phases) }

func (s *Set) column(i int) (stride int, mask uint64) {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("pauli: operator index %d out of range [0, %d)", i, s.Len()))
	}
	col := s.start + i
	return col / wordBits, uint64(1) << (col % wordBits)
}

func (s *Set) grow() (stride int, mask uint64) {
	stride = s.noperators / wordBits
	if stride == s.strides() {
		for q := range s.rows {
			s.rows[q] = append(s.rows[q], 0)
		}
		s.phases = append(s.phases, 0)
	}
	mask = uint64(1) << (s.noperators % wordBits)
	s.noperators++
	return stride, mask
}

// Insert appends an operator given as a string over {I, X, Y, Z} of length
// Qubits. Characters outside X, Y and Z are stored as identity.
func (s *Set) Insert(op string, negative bool) {
	if len(op) != s.n {
		panic(fmt.Sprintf("pauli: operator %q has %d qubits, set has %d", op, len(op), s.n))
	}
	stride, mask := s.grow()
	for q := 0; q < s.n; q++ {
		switch op[q] {
		case 'X':
			s.rows[q][stride] |= mask
		case 'Z':
			s.rows[q+s.n][stride] |= mask
		case 'Y':
			s.rows[q][stride] |= mask
			s.rows[q+s.n][stride] |= mask
		}
	}
	if negative {
		s.phases[stride] |= mask
	}
}

// InsertBits appends an operator from its X and Z components.
func (s *Set) InsertBits(x, z []bool, negative bool) {
	if len(x) != s.n || len(z) != s.n {
		panic(fmt.Sprintf("pauli: bit vectors of length %d/%d, set has %d qubits", len(x), len(z), s.n))
	}
	stride, mask := s.grow()
	for q := 0; q < s.n; q++ {
		if x[q] {
			s.rows[q][stride] |= mask
		}
		if z[q] {
			s.rows[q+s.n][stride] |= mask
		}
	}
	if negative {
		s.phases[stride] |= mask
	}
}

// Get returns the sign and letter string of operator i.
func (s *Set) Get(i int) (negative bool, op string) {
	stride, mask := s.column(i)
	var sb strings.Builder
	sb.Grow(s.n)
	for q := 0; q < s.n; q++ {
		x := s.rows[q][stride]&mask != 0
		z := s.rows[q+s.n][stride]&mask != 0
		sb.WriteByte(letter(x, z))
	}
	return s.phases[stride]&mask != 0, sb.String()
}

// GetBits returns the sign and the X and Z components of operator i.
func (s *Set) GetBits(i int) (negative bool, x, z []bool) {
	stride, mask := s.column(i)
	x = make([]bool, s.n)
	z = make([]bool, s.n)
	for q := 0; q < s.n; q++ {
		x[q] = s.rows[q][stride]&mask != 0
		z[q] = s.rows[q+s.n][stride]&mask != 0
	}
	return s.phases[stride]&mask != 0, x, z
}

func letter(x, z bool) byte {
	switch {
	case x && z:
		return 'Y'
	case x:
		return 'X'
	case z:
		return 'Z'
	}
	return 'I'
}

// Pop removes the front operator. It panics on an empty set.
func (s *Set) Pop() {
	stride, mask := s.column(0)
	for q := range s.rows {
		s.rows[q][stride] &^= mask
	}
	s.phases[stride] &^= mask
	s.start++
}

// Clear removes every operator and releases popped columns.
func (s *Set) Clear() {
	for q := range s.rows {
		s.rows[q] = s.rows[q][:0]
	}
	s.phases = s.phases[:0]
	s.noperators = 0
	s.start = 0
}

// SupportSize returns the number of qubits on which operator i is not
// the identity.
func (s *Set) SupportSize(i int) int {
	stride, mask := s.column(i)
	size := 0
	for q := 0; q < s.n; q++ {
		if (s.rows[q][stride]|s.rows[q+s.n][stride])&mask != 0 {
			size++
		}
	}
	return size
}

// Support returns the ascending list of qubits on which operator i is not
// the identity.
func (s *Set) Support(i int) []int {
	stride, mask := s.column(i)
	var support []int
	for q := 0; q < s.n; q++ {
		if (s.rows[q][stride]|s.rows[q+s.n][stride])&mask != 0 {
			support = append(support, q)
		}
	}
	return support
}

// CountLeadingIdentity returns how many operators, from the front, are the
// identity on qubit q before the first one that is not.
func (s *Set) CountLeadingIdentity(q int) int {
	x, z := s.rows[q], s.rows[q+s.n]
	first := s.start / wordBits
	count := first * wordBits
	for k := first; k < s.strides(); k++ {
		w := x[k] | z[k]
		if w == 0 {
			count += wordBits
			continue
		}
		count += bits.TrailingZeros64(w)
		break
	}
	return min(count, s.noperators) - s.start
}

// Commute reports whether operators i and j commute.
func (s *Set) Commute(i, j int) bool {
	si, mi := s.column(i)
	sj, mj := s.column(j)
	anti := false
	for q := 0; q < s.n; q++ {
		xi := s.rows[q][si]&mi != 0
		zi := s.rows[q+s.n][si]&mi != 0
		xj := s.rows[q][sj]&mj != 0
		zj := s.rows[q+s.n][sj]&mj != 0
		if (xi && zj) != (zi && xj) {
			anti = !anti
		}
	}
	return !anti
}

type entry struct {
	negative bool
	x, z     []bool
	support  int
}

// SortBySupport stably reorders the operators by ascending support size and
// compacts storage.
func (s *Set) SortBySupport() {
	entries := make([]entry, s.Len())
	for i := range entries {
		neg, x, z := s.GetBits(i)
		entries[i] = entry{negative: neg, x: x, z: z, support: s.SupportSize(i)}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.support, b.support)
	})
	s.Clear()
	for _, e := range entries {
		s.InsertBits(e.x, e.z, e.negative)
	}
}

// SwapQubits exchanges the roles of qubits a and b in every operator.
func (s *Set) SwapQubits(a, b int) {
	s.rows[a], s.rows[b] = s.rows[b], s.rows[a]
	s.rows[a+s.n], s.rows[b+s.n] = s.rows[b+s.n], s.rows[a+s.n]
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	out := &Set{
		n:          s.n,
		rows:       make([][]uint64, len(s.rows)),
		phases:     slices.Clone(s.phases),
		noperators: s.noperators,
		start:      s.start,
	}
	for q, row := range s.rows {
		out.rows[q] = slices.Clone(row)
	}
	return out
}

// Strings returns every live operator as a letter string, dropping signs.
func (s *Set) Strings() []string {
	out := make([]string, s.Len())
	for i := range out {
		_, out[i] = s.Get(i)
	}
	return out
}

// String renders one signed operator per line.
func (s *Set) String() string {
	var sb strings.Builder
	for i := 0; i < s.Len(); i++ {
		neg, op := s.Get(i)
		if neg {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
		sb.WriteString(op)
		sb.WriteByte('\n')
	}
	return sb.String()
}
