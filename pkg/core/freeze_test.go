package core

import (
	"math/rand"
	"testing"
)

func TestFreezeScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		same bool
	}{
		{"equal strings", String("x"), String("x"), true},
		{"different strings", String("x"), String("y"), false},
		{"int vs float", Int(1), Float(1), false},
		{"null vs false", Null(), Bool(false), false},
		{"equal bools", Bool(true), Bool(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Freeze(tt.a).Equal(Freeze(tt.b))
			if got != tt.same {
				t.Errorf("Freeze(%s) == Freeze(%s): got %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestFreezeOrderIndependence(t *testing.T) {
	seq := Seq(String("a"), Int(2), Seq(String("b"), String("c")), Map(map[string]Value{
		"k": String("v"),
	}))

	want := Freeze(seq).Key()
	elems := append([]Value(nil), seq.Items()...)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(elems), func(a, b int) { elems[a], elems[b] = elems[b], elems[a] })
		if got := Freeze(Seq(elems...)).Key(); got != want {
			t.Fatalf("permutation %d froze to %q, want %q", i, got, want)
		}
	}
}

func TestFreezeIdempotent(t *testing.T) {
	values := []Value{
		String("x"),
		Seq(Int(3), Int(1), Int(2), Int(1)),
		Map(map[string]Value{
			"a": Seq(String("z"), String("a")),
			"b": Map(map[string]Value{"n": Null()}),
		}),
	}

	for _, v := range values {
		f := Freeze(v)
		again := Freeze(f.Value())
		if !f.Equal(again) {
			t.Errorf("Freeze(Freeze(%s).Value()) = %q, want %q", v, again.Key(), f.Key())
		}
	}
}

func TestFreezePreservesMultiplicity(t *testing.T) {
	a := Seq(Int(1), Int(1), Int(2))
	b := Seq(Int(1), Int(2), Int(2))
	if Freeze(a).Equal(Freeze(b)) {
		t.Errorf("sequences with different multiplicities froze equal")
	}

	c := Seq(Int(2), Int(1), Int(1))
	if !Freeze(a).Equal(Freeze(c)) {
		t.Errorf("permuted sequences with equal multiplicities froze unequal")
	}
}

func TestFreezeKeyBoundaries(t *testing.T) {
	// Element boundaries must not be ambiguous: ["ab"] vs ["a","b"].
	a := Seq(String("ab"))
	b := Seq(String("a"), String("b"))
	if Freeze(a).Equal(Freeze(b)) {
		t.Errorf("[ab] and [a b] froze equal")
	}

	// A mapping and a sequence never freeze equal.
	m := Map(map[string]Value{"a": String("b")})
	s := Seq(String("a"), String("b"))
	if Freeze(m).Equal(Freeze(s)) {
		t.Errorf("mapping and sequence froze equal")
	}
}

func TestFreezeDoesNotMutate(t *testing.T) {
	seq := Seq(String("b"), String("a"))
	_ = Freeze(seq)
	if seq.Items()[0].Raw() != "b" || seq.Items()[1].Raw() != "a" {
		t.Errorf("Freeze reordered its input: %s", seq)
	}
}
