package sdd

import "testing"

func flipFlopUniverse(t *testing.T) *Universe {
	t.Helper()
	u, err := NewUniverse([]Assignment{
		{"p": 0},
		{"p": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error building universe: %v", err)
	}
	return u
}

func TestNewUniverseCanonicalVariableOrder(t *testing.T) {
	u, err := NewUniverse([]Assignment{
		{"b": 1, "a": 0},
		{"b": 0, "a": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := u.Variables()
	want := []string{"a", "b"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected canonical order %v, got %v", want, got)
	}
}

func TestNewUniverseInconsistentVariables(t *testing.T) {
	_, err := NewUniverse([]Assignment{
		{"p": 0},
		{"p": 0, "q": 1},
	})
	if err != ErrInconsistentVariables {
		t.Fatalf("expected ErrInconsistentVariables, got %v", err)
	}
}

func TestNewUniverseBadValue(t *testing.T) {
	_, err := NewUniverse([]Assignment{{"p": 2}})
	if err != ErrBadAssignment {
		t.Fatalf("expected ErrBadAssignment, got %v", err)
	}
}

func TestNewUniverseDeduplicates(t *testing.T) {
	u, err := NewUniverse([]Assignment{
		{"p": 0},
		{"p": 0},
		{"p": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.NumStates() != 2 {
		t.Fatalf("expected 2 distinct states, got %d", u.NumStates())
	}
}

func TestLookup(t *testing.T) {
	u := flipFlopUniverse(t)
	id, ok := u.Lookup(Assignment{"p": 1})
	if !ok {
		t.Fatalf("expected to find assignment p=1")
	}
	v, err := u.Value(id, "p")
	if err != nil || v != 1 {
		t.Fatalf("expected p=1 at %d, got %d (err=%v)", id, v, err)
	}
}
