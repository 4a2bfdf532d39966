package sdd

import "testing"

func TestNewActionTableRejectsEmpty(t *testing.T) {
	_, err := NewActionTable(map[*Relation][]string{}, TauLabel)
	if err != ErrEmptyActionTable {
		t.Fatalf("expected ErrEmptyActionTable, got %v", err)
	}
}

func TestActionTableLabelsAndTau(t *testing.T) {
	u := flipFlopUniverse(t)
	ra := RelationFromSuccessors(u, nil)
	rb := RelationFromSuccessors(u, nil)

	at, err := NewActionTable(map[*Relation][]string{
		ra: {"a"},
		rb: {TauLabel},
	}, TauLabel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !at.HasLabel("a") {
		t.Fatalf("expected label 'a' to be in L")
	}
	if !at.IsTau(rb) {
		t.Fatalf("expected rb to be recognised as a tau rule")
	}
	if at.IsTau(ra) {
		t.Fatalf("expected ra to not be a tau rule")
	}
}
