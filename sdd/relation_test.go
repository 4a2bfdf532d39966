package sdd

import "testing"

// flipFlopPred builds the precedence relation for a two-state flip-flop:
// s0 -> s1 -> s0.
func flipFlopPred(t *testing.T, u *Universe) *Relation {
	t.Helper()
	s0, _ := u.Lookup(Assignment{"p": 0})
	s1, _ := u.Lookup(Assignment{"p": 1})
	succ := map[StateID][]StateID{
		s0: {s1},
		s1: {s0},
	}
	return RelationFromSuccessors(u, succ)
}

func TestRelationApplyIsExistsNext(t *testing.T) {
	u := flipFlopUniverse(t)
	pred := flipFlopPred(t, u)
	s1, _ := u.Lookup(Assignment{"p": 1})

	got := pred.Apply(FromIDs(u, s1))
	s0, _ := u.Lookup(Assignment{"p": 0})
	if !got.Equal(FromIDs(u, s0)) {
		t.Fatalf("expected pred({s1}) = {s0}, got %v", got)
	}
}

func TestRelationUnion(t *testing.T) {
	u := flipFlopUniverse(t)
	empty := EmptyRelation(u)
	pred := flipFlopPred(t, u)
	union := empty.Union(pred)

	s1, _ := u.Lookup(Assignment{"p": 1})
	got := union.Apply(FromIDs(u, s1))
	s0, _ := u.Lookup(Assignment{"p": 0})
	if !got.Equal(FromIDs(u, s0)) {
		t.Fatalf("expected union with empty relation to equal pred, got %v", got)
	}
}

func TestEmptyRelationAlwaysEmpty(t *testing.T) {
	u := flipFlopUniverse(t)
	r := EmptyRelation(u)
	if !r.Apply(All(u)).IsEmpty() {
		t.Fatalf("expected empty relation to map everything to ∅")
	}
}
