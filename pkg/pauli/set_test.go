package pauli

import (
	"slices"
	"testing"

	"github.com/matzehuels/pauliflow/pkg/circuit"
)

type signed struct {
	negative bool
	op       string
}

func conjugated(t *testing.T, in string, apply func(*Set)) [2]signed {
	t.Helper()
	var out [2]signed
	for k, neg := range []bool{false, true} {
		s := NewSet(len(in))
		s.Insert(in, neg)
		apply(s)
		out[k].negative, out[k].op = s.Get(0)
	}
	return out
}

func checkTable(t *testing.T, apply func(*Set), table map[string]signed) {
	t.Helper()
	for in, want := range table {
		got := conjugated(t, in, apply)
		if got[0] != want {
			t.Errorf("%s: got %v, want %v", in, got[0], want)
		}
		flipped := signed{!want.negative, want.op}
		if got[1] != flipped {
			t.Errorf("-%s: got %v, want %v", in, got[1], flipped)
		}
	}
}

func TestSingleQubitGates(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Set)
		table map[string]signed
	}{
		{"H", func(s *Set) { s.H(0) }, map[string]signed{
			"X": {false, "Z"}, "Z": {false, "X"}, "Y": {true, "Y"}, "I": {false, "I"},
		}},
		{"S", func(s *Set) { s.S(0) }, map[string]signed{
			"X": {false, "Y"}, "Z": {false, "Z"}, "Y": {true, "X"}, "I": {false, "I"},
		}},
		{"Sd", func(s *Set) { s.Sd(0) }, map[string]signed{
			"X": {true, "Y"}, "Z": {false, "Z"}, "Y": {false, "X"}, "I": {false, "I"},
		}},
		{"SqrtX", func(s *Set) { s.SqrtX(0) }, map[string]signed{
			"X": {false, "X"}, "Z": {true, "Y"}, "Y": {false, "Z"}, "I": {false, "I"},
		}},
		{"SqrtXd", func(s *Set) { s.SqrtXd(0) }, map[string]signed{
			"X": {false, "X"}, "Z": {false, "Y"}, "Y": {true, "Z"}, "I": {false, "I"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTable(t, tt.apply, tt.table)
		})
	}
}

func TestCNOT(t *testing.T) {
	checkTable(t, func(s *Set) { s.CNOT(0, 1) }, map[string]signed{
		"II": {false, "II"}, "IX": {false, "IX"}, "IY": {false, "ZY"}, "IZ": {false, "ZZ"},
		"XI": {false, "XX"}, "XX": {false, "XI"}, "XY": {false, "YZ"}, "XZ": {true, "YY"},
		"YI": {false, "YX"}, "YX": {false, "YI"}, "YY": {true, "XZ"}, "YZ": {false, "XY"},
		"ZI": {false, "ZI"}, "ZX": {false, "ZX"}, "ZY": {false, "IY"}, "ZZ": {false, "IZ"},
	})
}

func TestCZ(t *testing.T) {
	checkTable(t, func(s *Set) { s.CZ(0, 1) }, map[string]signed{
		"II": {false, "II"}, "IX": {false, "ZX"}, "IY": {false, "ZY"}, "IZ": {false, "IZ"},
		"XI": {false, "XZ"}, "XX": {false, "YY"}, "XY": {true, "YX"}, "XZ": {false, "XI"},
		"YI": {false, "YZ"}, "YX": {true, "XY"}, "YY": {false, "XX"}, "YZ": {false, "YI"},
		"ZI": {false, "ZI"}, "ZX": {false, "IX"}, "ZY": {false, "IY"}, "ZZ": {false, "ZZ"},
	})
}

func TestInverses(t *testing.T) {
	pairs := []struct {
		name    string
		forward func(*Set)
		inverse func(*Set)
	}{
		{"S", func(s *Set) { s.S(1) }, func(s *Set) { s.Sd(1) }},
		{"SqrtX", func(s *Set) { s.SqrtX(0) }, func(s *Set) { s.SqrtXd(0) }},
		{"H", func(s *Set) { s.H(2) }, func(s *Set) { s.H(2) }},
		{"CNOT", func(s *Set) { s.CNOT(2, 0) }, func(s *Set) { s.CNOT(2, 0) }},
		{"CZ", func(s *Set) { s.CZ(0, 1) }, func(s *Set) { s.CZ(0, 1) }},
	}
	ops := []string{"XYZ", "YYI", "ZXY", "IZX", "YXZ"}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			s := NewSet(3)
			for i, op := range ops {
				s.Insert(op, i%2 == 1)
			}
			want := s.String()
			p.forward(s)
			p.inverse(s)
			if got := s.String(); got != want {
				t.Errorf("round trip = %q, want %q", got, want)
			}
		})
	}
}

func TestConjugateGate(t *testing.T) {
	c := &circuit.Circuit{Qubits: 2, Gates: []circuit.Gate{
		circuit.H(0), circuit.S(1), circuit.CNOT(0, 1), circuit.SqrtXd(0), circuit.CZ(1, 0),
	}}
	direct := MustFromStrings("XY", "ZZ", "YI")
	direct.H(0)
	direct.S(1)
	direct.CNOT(0, 1)
	direct.SqrtXd(0)
	direct.CZ(1, 0)

	viaCircuit := MustFromStrings("XY", "ZZ", "YI")
	viaCircuit.ConjugateCircuit(c)
	if direct.String() != viaCircuit.String() {
		t.Errorf("ConjugateCircuit() = %q, want %q", viaCircuit, direct)
	}

	undo := viaCircuit.Clone()
	undo.ConjugateCircuit(c.Dagger())
	if got, want := undo.String(), MustFromStrings("XY", "ZZ", "YI").String(); got != want {
		t.Errorf("circuit then dagger = %q, want %q", got, want)
	}
}

func TestSupportSize(t *testing.T) {
	s := MustFromStrings("XYIZ", "IIII", "XXXX", "IYII")
	for i, want := range []int{3, 0, 4, 1} {
		if got := s.SupportSize(i); got != want {
			t.Errorf("SupportSize(%d) = %d, want %d", i, got, want)
		}
	}
	if got := s.Support(0); !slices.Equal(got, []int{0, 1, 3}) {
		t.Errorf("Support(0) = %v", got)
	}
}

func TestCountLeadingIdentity(t *testing.T) {
	s := MustFromStrings("IIII", "XIII", "XXII", "XXXI", "XXXX")
	for q, want := range []int{1, 2, 3, 4} {
		if got := s.CountLeadingIdentity(q); got != want {
			t.Errorf("CountLeadingIdentity(%d) = %d, want %d", q, got, want)
		}
	}

	s.Pop()
	for q, want := range []int{0, 1, 2, 3} {
		if got := s.CountLeadingIdentity(q); got != want {
			t.Errorf("after Pop: CountLeadingIdentity(%d) = %d, want %d", q, got, want)
		}
	}
}

func TestCountLeadingIdentityAcrossWords(t *testing.T) {
	s := NewSet(2)
	for i := 0; i < 150; i++ {
		s.Insert("IZ", false)
	}
	s.Insert("XZ", false)
	if got := s.CountLeadingIdentity(0); got != 150 {
		t.Errorf("CountLeadingIdentity(0) = %d, want 150", got)
	}
	if got := s.CountLeadingIdentity(1); got != 0 {
		t.Errorf("CountLeadingIdentity(1) = %d, want 0", got)
	}

	for i := 0; i < 70; i++ {
		s.Pop()
	}
	if got := s.CountLeadingIdentity(0); got != 80 {
		t.Errorf("after pops: CountLeadingIdentity(0) = %d, want 80", got)
	}

	all := NewSet(1)
	for i := 0; i < 65; i++ {
		all.Insert("I", false)
	}
	if got := all.CountLeadingIdentity(0); got != 65 {
		t.Errorf("all identity: CountLeadingIdentity(0) = %d, want 65", got)
	}
}

func TestCommute(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"ZI", "ZZ", true},
		{"ZI", "XI", false},
		{"ZZ", "XX", true},
		{"ZZ", "YY", true},
		{"XX", "YY", true},
		{"XI", "XX", true},
		{"XY", "ZZ", true},
		{"XY", "ZI", false},
		{"III", "XYZ", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			s := MustFromStrings(tt.a, tt.b)
			if got := s.Commute(0, 1); got != tt.want {
				t.Errorf("Commute(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := s.Commute(1, 0); got != tt.want {
				t.Errorf("Commute(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestPop(t *testing.T) {
	s := MustFromStrings("XX", "YY", "ZZ")
	s.Pop()
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if _, op := s.Get(0); op != "YY" {
		t.Errorf("Get(0) = %s, want YY", op)
	}
	s.Insert("XZ", true)
	if neg, op := s.Get(2); op != "XZ" || !neg {
		t.Errorf("Get(2) = %v %s, want -XZ", neg, op)
	}
	s.Pop()
	s.Pop()
	s.Pop()
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pop() on empty set did not panic")
		}
	}()
	NewSet(2).Pop()
}

func TestSortBySupport(t *testing.T) {
	s := NewSet(3)
	s.Insert("XYZ", false)
	s.Insert("IXI", true)
	s.Insert("ZZI", false)
	s.Insert("IIY", false)
	s.Insert("XIX", true)
	s.Pop()
	s.SortBySupport()

	want := []signed{{true, "IXI"}, {false, "IIY"}, {false, "ZZI"}, {true, "XIX"}}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	for i, w := range want {
		var got signed
		got.negative, got.op = s.Get(i)
		if got != w {
			t.Errorf("Get(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestInsertPermissive(t *testing.T) {
	s := NewSet(3)
	s.Insert("XqZ", false)
	if _, op := s.Get(0); op != "XIZ" {
		t.Errorf("Get(0) = %s, want XIZ", op)
	}
}

func TestInsertBits(t *testing.T) {
	s := NewSet(3)
	s.InsertBits([]bool{true, false, true}, []bool{false, true, true}, true)
	neg, op := s.Get(0)
	if !neg || op != "XZY" {
		t.Errorf("Get(0) = %v %s, want -XZY", neg, op)
	}
	_, x, z := s.GetBits(0)
	if !slices.Equal(x, []bool{true, false, true}) || !slices.Equal(z, []bool{false, true, true}) {
		t.Errorf("GetBits(0) = %v %v", x, z)
	}
}

func TestSwapQubits(t *testing.T) {
	s := MustFromStrings("XYZ", "IIX")
	s.SwapQubits(0, 2)
	if got := s.Strings(); !slices.Equal(got, []string{"ZYX", "XII"}) {
		t.Errorf("Strings() = %v", got)
	}
}

func TestClone(t *testing.T) {
	s := MustFromStrings("XY", "ZZ")
	c := s.Clone()
	c.H(0)
	c.Pop()
	if got := s.Strings(); !slices.Equal(got, []string{"XY", "ZZ"}) {
		t.Errorf("original changed: %v", got)
	}
}

func TestClear(t *testing.T) {
	s := MustFromStrings("XY", "ZZ")
	s.Pop()
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
	s.Insert("YY", false)
	if _, op := s.Get(0); op != "YY" {
		t.Errorf("Get(0) = %s, want YY", op)
	}
}

func TestFromStrings(t *testing.T) {
	s, err := FromStrings(nil)
	if err != nil || s.Len() != 0 || s.Qubits() != 0 {
		t.Errorf("FromStrings(nil) = %v, %v", s, err)
	}
	if _, err := FromStrings([]string{"XX", "X"}); err == nil {
		t.Error("FromStrings() accepted ragged input")
	}
	if _, err := FromStrings([]string{"XQ"}); err == nil {
		t.Error("FromStrings() accepted unknown letter")
	}
}
