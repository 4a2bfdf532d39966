package sdd

import "testing"

func threeStateUniverse(t *testing.T) *Universe {
	t.Helper()
	u, err := NewUniverse([]Assignment{
		{"p": 1, "q": 0},
		{"p": 0, "q": 1},
		{"p": 1, "q": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return u
}

func TestStateSetUnionIntersectDifference(t *testing.T) {
	u := threeStateUniverse(t)
	a := FromIDs(u, 0, 1)
	b := FromIDs(u, 1, 2)

	if got := a.Union(b); got.Len() != 3 {
		t.Fatalf("expected union of size 3, got %d", got.Len())
	}
	if got := a.Intersect(b); !got.Equal(FromIDs(u, 1)) {
		t.Fatalf("expected intersection {1}, got %v", got)
	}
	if got := a.Difference(b); !got.Equal(FromIDs(u, 0)) {
		t.Fatalf("expected difference {0}, got %v", got)
	}
}

func TestStateSetEqualIgnoresInsertionOrder(t *testing.T) {
	u := threeStateUniverse(t)
	a := FromIDs(u, 0, 1, 2)
	b := FromIDs(u, 2, 1, 0)
	if !a.Equal(b) {
		t.Fatalf("expected sets built in different orders to be equal")
	}
}

func TestAllAndEmpty(t *testing.T) {
	u := threeStateUniverse(t)
	if All(u).Len() != u.NumStates() {
		t.Fatalf("expected All() to have %d members", u.NumStates())
	}
	if !Empty(u).IsEmpty() {
		t.Fatalf("expected Empty() to be empty")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	u := threeStateUniverse(t)
	a := FromIDs(u, 0)
	clone := a.Clone()
	b := FromIDs(u, 1)
	merged := clone.Union(b)
	if a.Len() != 1 {
		t.Fatalf("expected original set untouched, got len %d", a.Len())
	}
	if merged.Len() != 2 {
		t.Fatalf("expected merged clone to have 2 members, got %d", merged.Len())
	}
}
